// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// PDFExtractor reads the embedded text layer of a PDF with the pure-Go
// github.com/ledongthuc/pdf reader. Scanned (image-only) logs yield no text.
type PDFExtractor struct{}

// NewPDFExtractor creates the native PDF extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (p *PDFExtractor) Name() string { return string(types.BackendNative) }

// Extract returns the text of every page in order. Null pages contribute an
// empty line so page boundaries stay visible in the output.
func (p *PDFExtractor) Extract(ctx context.Context, path string) (text string, err error) {
	fail := func(cause error) error {
		return &ExtractionError{Path: path, Backend: p.Name(), Err: cause}
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fail(err)
	}
	defer func() { _ = f.Close() }()

	// The reader panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fail(fmt.Errorf("decoding pdf: %v", rec))
		}
	}()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", fail(err)
		}

		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		pageText, pageErr := page.GetPlainText(fonts)
		if pageErr != nil {
			return "", fail(fmt.Errorf("reading page %d: %w", i, pageErr))
		}
		pages = append(pages, pageText)
	}

	return joinPages(pages), nil
}
