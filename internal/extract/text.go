// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"os"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// TextExtractor returns a document that already holds text, such as a log
// exported as plain text or a previously generated Cabrillo file.
type TextExtractor struct{}

// NewTextExtractor creates the passthrough extractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

func (t *TextExtractor) Name() string { return string(types.BackendText) }

func (t *TextExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{Path: path, Backend: t.Name(), Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Backend: t.Name(), Err: err}
	}
	return string(data), nil
}
