package ocr

import (
	"context"
	"fmt"
	"io"

	"github.com/liushuangls/go-anthropic/v2"
)

// extractPrompt asks for a bare transcription; tokenization and quantity
// parsing happen downstream.
const extractPrompt = `Transcribe every line of text visible in this shopping-list photo.
Respond with the transcribed lines only, one item per line. Do not add
commentary, numbering, or translations.`

// ClaudeExtractor implements Extractor with the Anthropic vision API.
type ClaudeExtractor struct {
	client *anthropic.Client
	model  string
}

func NewClaudeExtractor(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeExtractor {
	return &ClaudeExtractor{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

// Extract sends the image for transcription. Progress is coarse: 0 before
// the request is issued and 1 once the response is parsed; the Messages API
// gives no mid-flight signal for a single completion.
func (e *ClaudeExtractor) Extract(ctx context.Context, r io.Reader, mimeType string, progress Progress) (string, error) {
	imageData, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	if progress != nil {
		progress(0)
	}

	resp, err := e.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(e.model),
		// 1024 tokens covers a long handwritten list with headroom.
		MaxTokens: 1024,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewImageMessageContent(
						anthropic.NewMessageContentSource(
							anthropic.MessagesContentSourceTypeBase64,
							normaliseMIME(mimeType),
							imageData,
						)),
					anthropic.NewTextMessageContent(extractPrompt),
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call claude vision: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if t := block.GetText(); t != "" {
			text = t
			break
		}
	}

	if progress != nil {
		progress(1)
	}
	return text, nil
}

// normaliseMIME maps browser MIME types to the values the Anthropic API
// accepts (jpeg, png, gif, webp). Unknown types are coerced to jpeg as the
// most universally supported lossy fallback.
func normaliseMIME(mimeType string) string {
	switch mimeType {
	case "image/png", "image/gif", "image/webp":
		return mimeType
	default:
		return "image/jpeg"
	}
}
