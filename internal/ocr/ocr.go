// Package ocr extracts shopping-list text from photos.
package ocr

import (
	"context"
	"io"
)

// Progress receives a 0-1 completion fraction. Implementations call it on a
// best-effort basis; callers must tolerate it never reaching 1 exactly once.
type Progress func(fraction float64)

// Extractor turns an image into plain text. The returned text feeds the line
// tokenizer; everything else about the image is discarded.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader, mimeType string, progress Progress) (string, error)
}
