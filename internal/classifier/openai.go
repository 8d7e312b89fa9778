package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harrison/curator/internal/models"
)

// OpenAIOracle implements Oracle against any OpenAI-compatible chat
// completion API. One Classify call issues exactly one request.
type OpenAIOracle struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// OpenAIConfig configures the remote oracle client.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string        // optional, for OpenAI-compatible providers
	Timeout time.Duration // per-request timeout, 0 means 30s
}

// NewOpenAIOracle creates an oracle backed by an OpenAI-compatible API.
func NewOpenAIOracle(cfg OpenAIConfig) *OpenAIOracle {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIOracle{
		api:     openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: timeout,
	}
}

const oracleSystemPrompt = `You categorize file names for a file organizer.
Respond with a single JSON object mapping each input file name to exactly one
of these categories: Documents, Images, Videos, Archives, Installers, Code,
Audio, Unknown, Junk. Do not include any other keys or commentary.`

// Classify submits all names in one request and parses the JSON response
// into a name→category mapping. The caller validates and may discard
// individual entries; this method only guarantees a well-formed map or an
// error.
func (o *OpenAIOracle) Classify(ctx context.Context, names []string) (map[string]models.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: oracleSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: strings.Join(names, "\n")},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := o.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("oracle request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("oracle response contained no choices")
	}

	var raw map[string]string
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &raw); err != nil {
		return nil, fmt.Errorf("oracle response is not a JSON mapping: %w", err)
	}

	answers := make(map[string]models.Category, len(raw))
	for name, label := range raw {
		// Entries outside the closed category set are dropped here; the
		// classifier drops anything else it distrusts.
		category, err := models.ParseCategory(label)
		if err != nil {
			continue
		}
		answers[name] = category
	}
	return answers, nil
}
