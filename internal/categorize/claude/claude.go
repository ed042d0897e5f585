// Package claude implements categorize.Categorizer on the Anthropic Messages
// API via the go-anthropic client.
package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/checklister/internal/categorize"
)

type Client struct {
	client   *anthropic.Client
	model    string
	sentinel string
}

func NewClient(apiKey, model, sentinel string, opts ...anthropic.ClientOption) *Client {
	return &Client{
		client:   anthropic.NewClient(apiKey, opts...),
		model:    model,
		sentinel: sentinel,
	}
}

func buildUserMessage(req categorize.Request) string {
	var b strings.Builder
	b.WriteString("Categorize these grocery items:\n")
	b.WriteString(strings.Join(req.Items, "\n"))
	if len(req.URLs) > 0 {
		b.WriteString("\n\nAlso extract and categorize items from these recipe URLs:\n")
		b.WriteString(strings.Join(req.URLs, "\n"))
		b.WriteString("\nIf a URL contains no recipe, respond with {\"status\": \"no_recipe_found\", \"notice\": \"...\"}.")
	}
	return b.String()
}

func (c *Client) Categorize(ctx context.Context, req categorize.Request) (*categorize.Result, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    categorize.Prompt,
		MaxTokens: 2000,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(buildUserMessage(req)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if t := block.GetText(); t != "" {
			text = t
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("claude returned no text content")
	}

	return categorize.ParseResponse([]byte(extractJSON(text)), c.sentinel), nil
}

// extractJSON trims any prose the model wraps around the JSON object.
func extractJSON(content string) string {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
