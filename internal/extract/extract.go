// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a contest log document into a flat text blob with
// pluggable backends: the pure-Go PDF text layer, poppler's pdftotext, or a
// plain text passthrough. Page texts are concatenated, each followed by a
// newline.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// Extractor produces the textual content of a source document. Different
// backends (native, pdftotext, text) implement this interface.
type Extractor interface {
	// Name returns the backend name used in diagnostics.
	Name() string

	// Extract reads the document at path and returns its text.
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractionError reports a document that could not be opened or decoded.
// It is fatal for the run; source documents are not transient so nothing
// is retried.
type ExtractionError struct {
	Path    string
	Backend string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s with %s: %v", e.Path, e.Backend, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// textExtensions are treated as already-extracted text by the auto backend.
var textExtensions = map[string]bool{
	".txt": true,
	".log": true,
	".cbr": true,
}

// New returns the extractor for backend. BackendAuto (or empty) defers the
// choice to the input path's extension at Extract time.
func New(backend types.ExtractionBackend) (Extractor, error) {
	switch backend {
	case types.BackendAuto, "":
		return &autoExtractor{pdf: NewPDFExtractor(), text: NewTextExtractor()}, nil
	case types.BackendNative:
		return NewPDFExtractor(), nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor(), nil
	case types.BackendText:
		return NewTextExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown extraction backend %q", backend)
	}
}

// autoExtractor dispatches on file extension.
type autoExtractor struct {
	pdf  Extractor
	text Extractor
}

func (a *autoExtractor) Name() string { return string(types.BackendAuto) }

func (a *autoExtractor) Extract(ctx context.Context, path string) (string, error) {
	return a.pick(path).Extract(ctx, path)
}

func (a *autoExtractor) pick(path string) Extractor {
	if textExtensions[strings.ToLower(filepath.Ext(path))] {
		return a.text
	}
	return a.pdf
}

// joinPages concatenates page texts, each followed by a newline.
func joinPages(pages []string) string {
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return b.String()
}
