package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/curator/internal/models"
)

// chatServer returns a test server that answers every chat completion
// request with the given message content.
func chatServer(t *testing.T, content string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOracle(srv *httptest.Server) *OpenAIOracle {
	return NewOpenAIOracle(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: srv.URL + "/v1",
		Timeout: 5 * time.Second,
	})
}

func TestOpenAIOracleClassify(t *testing.T) {
	srv := chatServer(t, `{"x.zip":"Archives","spam.tmp":"Junk"}`, http.StatusOK)

	answers, err := testOracle(srv).Classify(context.Background(), []string{"x.zip", "spam.tmp"})
	require.NoError(t, err)

	assert.Equal(t, map[string]models.Category{
		"x.zip":    models.CategoryArchives,
		"spam.tmp": models.CategoryJunk,
	}, answers)
}

func TestOpenAIOracleDropsInvalidCategories(t *testing.T) {
	srv := chatServer(t, `{"x.zip":"Archives","weird.bin":"Spreadsheets"}`, http.StatusOK)

	answers, err := testOracle(srv).Classify(context.Background(), []string{"x.zip", "weird.bin"})
	require.NoError(t, err)

	assert.Equal(t, map[string]models.Category{
		"x.zip": models.CategoryArchives,
	}, answers, "categories outside the closed set are dropped")
}

func TestOpenAIOracleMalformedResponse(t *testing.T) {
	srv := chatServer(t, `["not","a","mapping"]`, http.StatusOK)

	_, err := testOracle(srv).Classify(context.Background(), []string{"x.zip"})
	assert.Error(t, err, "classifier absorbs this error; the oracle just reports it")
}

func TestOpenAIOracleServerError(t *testing.T) {
	srv := chatServer(t, "", http.StatusInternalServerError)

	_, err := testOracle(srv).Classify(context.Background(), []string{"x.zip"})
	assert.Error(t, err)
}
