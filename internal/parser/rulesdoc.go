// Package parser reads curator input documents.
//
// A rules document is a Markdown file whose fenced yaml code blocks each
// hold an extension→category mapping. Blocks are applied in document order,
// last write wins per extension, which mirrors how the rule store itself
// resolves conflicting edits.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/harrison/curator/internal/models"
)

// RulesParser extracts custom rule mappings from Markdown documents.
type RulesParser struct {
	markdown goldmark.Markdown
}

// NewRulesParser creates a RulesParser.
func NewRulesParser() *RulesParser {
	return &RulesParser{
		markdown: goldmark.New(),
	}
}

// Parse reads a Markdown rules document and returns the merged
// extension→category mapping from its yaml code blocks. Extensions are
// normalized to lowercase without a leading dot. A category outside the
// closed set is an error: imports are explicit user edits and must not be
// silently dropped.
func (p *RulesParser) Parse(r io.Reader) (map[string]models.Category, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc := p.markdown.Parser().Parse(text.NewReader(content))

	merged := make(map[string]models.Category)
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := string(block.Language(content))
		if lang != "yaml" && lang != "yml" {
			return ast.WalkContinue, nil
		}

		mapping, err := parseRuleBlock(blockText(block, content))
		if err != nil {
			return ast.WalkStop, err
		}
		for ext, category := range mapping {
			merged[ext] = category
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	if len(merged) == 0 {
		return nil, fmt.Errorf("document contains no yaml rule blocks")
	}
	return merged, nil
}

// parseRuleBlock decodes one yaml block of extension→category pairs.
func parseRuleBlock(source string) (map[string]models.Category, error) {
	var raw map[string]string
	if err := yaml.Unmarshal([]byte(source), &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml rule block: %w", err)
	}

	mapping := make(map[string]models.Category, len(raw))
	for ext, label := range raw {
		category, err := models.ParseCategory(label)
		if err != nil {
			return nil, fmt.Errorf("rule for %q: %w", ext, err)
		}
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext == "" {
			return nil, fmt.Errorf("rule with empty extension")
		}
		mapping[ext] = category
	}
	return mapping, nil
}

// blockText reassembles the raw text of a fenced code block.
func blockText(block *ast.FencedCodeBlock, source []byte) string {
	var sb strings.Builder
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		sb.Write(line.Value(source))
	}
	return sb.String()
}
