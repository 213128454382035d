// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// PdftotextExtractor runs poppler's pdftotext in layout mode. It copes with
// PDFs whose font encodings the native reader cannot decode.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor creates an extractor backed by the pdftotext binary on PATH.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{exec: &osExecutor{}}
}

func (p *PdftotextExtractor) Name() string { return string(types.BackendPdftotext) }

// Extract runs pdftotext on path. Pages in its output are separated by form
// feeds; they are rejoined with newlines like the native backend.
func (p *PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	fail := func(cause error) error {
		return &ExtractionError{Path: path, Backend: p.Name(), Err: cause}
	}

	if _, err := os.Stat(path); err != nil {
		return "", fail(err)
	}
	if _, err := p.exec.LookPath(binPdftotext); err != nil {
		return "", fail(fmt.Errorf("%s not found on PATH: %w", binPdftotext, err))
	}

	var out bytes.Buffer
	args := []string{"-layout", "-enc", "UTF-8", path, "-"}
	if err := p.exec.RunPiped(ctx, binPdftotext, args, &out); err != nil {
		return "", fail(fmt.Errorf("running %s: %w", binPdftotext, err))
	}

	pages := strings.Split(out.String(), "\f")
	// pdftotext terminates the last page with a form feed too.
	if n := len(pages); n > 1 && strings.TrimSpace(pages[n-1]) == "" {
		pages = pages[:n-1]
	}
	for i, page := range pages {
		pages[i] = strings.TrimRight(page, "\n")
	}
	return joinPages(pages), nil
}
