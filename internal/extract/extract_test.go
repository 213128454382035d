// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

const sampleLog = "NY QSO PARTY 2025\nQSO:21027CW202510181451K4GSX599GAWB2SIH599WAR\n"

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	onPath       bool
	runPipedFunc func(name string, args []string, stdout io.Writer) error
	gotArgs      []string
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.onPath {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunPiped(ctx context.Context, name string, args []string, stdout io.Writer) error {
	m.gotArgs = args
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdout)
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNew(t *testing.T) {
	tests := []struct {
		backend  types.ExtractionBackend
		wantName string
		wantErr  bool
	}{
		{backend: "", wantName: "auto"},
		{backend: types.BackendAuto, wantName: "auto"},
		{backend: types.BackendNative, wantName: "native"},
		{backend: types.BackendPdftotext, wantName: "pdftotext"},
		{backend: types.BackendText, wantName: "text"},
		{backend: "ocr", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			ex, err := New(tt.backend)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "ocr")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, ex.Name())
		})
	}
}

func TestTextExtractor(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "log.txt", sampleLog)

	text, err := NewTextExtractor().Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, sampleLog, text)
}

func TestExtract_MissingFileIsExtractionError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pdf")

	for _, ex := range []Extractor{NewTextExtractor(), NewPDFExtractor(), NewPdftotextExtractor()} {
		t.Run(ex.Name(), func(t *testing.T) {
			_, err := ex.Extract(context.Background(), missing)
			require.Error(t, err)

			var extErr *ExtractionError
			require.True(t, errors.As(err, &extErr), "want *ExtractionError, got %T", err)
			assert.Equal(t, missing, extErr.Path)
			assert.Equal(t, ex.Name(), extErr.Backend)
			assert.True(t, errors.Is(err, os.ErrNotExist))
		})
	}
}

func TestPDFExtractor_RejectsNonPDF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "log.pdf", "this is not a pdf")

	_, err := NewPDFExtractor().Extract(context.Background(), path)

	var extErr *ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "native", extErr.Backend)
}

func TestAutoExtractor_PicksByExtension(t *testing.T) {
	auto := &autoExtractor{pdf: NewPDFExtractor(), text: NewTextExtractor()}

	assert.Equal(t, "text", auto.pick("/logs/k4gsx.txt").Name())
	assert.Equal(t, "text", auto.pick("/logs/k4gsx.LOG").Name())
	assert.Equal(t, "text", auto.pick("/logs/k4gsx.cbr").Name())
	assert.Equal(t, "native", auto.pick("/logs/k4gsx.pdf").Name())
	assert.Equal(t, "native", auto.pick("/logs/k4gsx").Name())

	path := writeFile(t, t.TempDir(), "log.txt", sampleLog)
	text, err := auto.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, sampleLog, text)
}

func TestPdftotextExtractor(t *testing.T) {
	pdfPath := writeFile(t, t.TempDir(), "log.pdf", "%PDF-1.4 fake")

	tests := []struct {
		name    string
		exec    *mockExecutor
		want    string
		wantErr string
	}{
		{
			name: "pages joined with newlines",
			exec: &mockExecutor{
				onPath: true,
				runPipedFunc: func(name string, args []string, stdout io.Writer) error {
					_, _ = io.WriteString(stdout, "page one\n\fpage two\n\f")
					return nil
				},
			},
			want: "page one\npage two\n",
		},
		{
			name:    "binary missing",
			exec:    &mockExecutor{onPath: false},
			wantErr: "pdftotext not found",
		},
		{
			name: "command fails",
			exec: &mockExecutor{
				onPath: true,
				runPipedFunc: func(name string, args []string, stdout io.Writer) error {
					return errors.New("exit status 1: Syntax Error")
				},
			},
			wantErr: "Syntax Error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &PdftotextExtractor{exec: tt.exec}
			got, err := ex.Extract(context.Background(), pdfPath)
			if tt.wantErr != "" {
				var extErr *ExtractionError
				require.ErrorAs(t, err, &extErr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"-layout", "-enc", "UTF-8", pdfPath, "-"}, tt.exec.gotArgs)
		})
	}
}

func TestTextExtractor_CanceledContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "log.txt", sampleLog)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTextExtractor().Extract(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
