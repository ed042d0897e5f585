// Package openai implements categorize.Categorizer against the OpenAI chat
// completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vbonduro/checklister/internal/categorize"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// request types mirror the chat completions API structure.
type request struct {
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Messages       []message       `json:"messages"`
	MaxTokens      int             `json:"max_completion_tokens,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	apiKey   string
	model    string
	sentinel string
	client   *http.Client
	baseURL  string
}

func NewClient(apiKey, model, sentinel string) *Client {
	return &Client{
		apiKey:   apiKey,
		model:    model,
		sentinel: sentinel,
		client:   &http.Client{},
		baseURL:  defaultAPIURL,
	}
}

// buildUserMessage lists the items (and any recipe URLs) for the model.
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
	body := request{
		Model:       c.model,
		Temperature: 0,
		// json_object keeps the model from wrapping the payload in prose.
		ResponseFormat: &responseFormat{Type: "json_object"},
		Messages: []message{
			{Role: "system", Content: categorize.Prompt},
			{Role: "user", Content: buildUserMessage(req)},
		},
		MaxTokens: 2000,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call openai: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("failed to close openai response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai returned status %d: %s", resp.StatusCode, errBody)
	}

	var respBody response
	if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(respBody.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	content := extractJSON(respBody.Choices[0].Message.Content)
	return categorize.ParseResponse([]byte(content), c.sentinel), nil
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
