// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one contest log through every stage: extract text,
// parse QSO records, drop duplicates, sort, and write the Cabrillo file.
// Progress and the final report go to an injected writer; nothing is
// written to disk unless at least one record parsed.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/cabrillo-engine/internal/cabrillo"
	"github.com/pdiddy/cabrillo-engine/internal/extract"
	"github.com/pdiddy/cabrillo-engine/internal/history"
	"github.com/pdiddy/cabrillo-engine/internal/parse"
	"github.com/pdiddy/cabrillo-engine/internal/score"
	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// ErrNoRecords means the source text contained no parseable QSO record.
// It is terminal for the run and no output file is written.
var ErrNoRecords = errors.New("no QSOs found in log")

// sampleLines is how many QSO lines the diagnostics and report show.
const sampleLines = 5

// Recorder persists a successful run. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, run history.Run) (int64, error)
}

// Result holds the outcome of processing one source document.
type Result struct {
	Source     string
	OutputPath string
	Parsed     int
	Contacts   []types.Contact
	NearMisses []string
	Summary    score.Summary
	Log        cabrillo.Log
	RunID      int64
}

// Pipeline carries the run configuration into each stage.
type Pipeline struct {
	cfg       types.PipelineConfig
	extractor extract.Extractor
	parser    *parse.Parser
	createdBy string
	recorder  Recorder
	w         io.Writer
}

// New validates cfg and prepares the stages. createdBy fills the CREATED-BY
// header unless the config overrides it. Progress is written to w.
func New(cfg types.PipelineConfig, ex extract.Extractor, createdBy string, w io.Writer) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	parser, err := parse.New(cfg.Station)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = io.Discard
	}
	return &Pipeline{
		cfg:       cfg,
		extractor: ex,
		parser:    parser,
		createdBy: createdBy,
		w:         w,
	}, nil
}

// SetRecorder makes Generate record every written log.
func (p *Pipeline) SetRecorder(r Recorder) {
	p.recorder = r
}

// Process extracts, parses, deduplicates, and sorts the contacts of input
// without writing anything. Extraction failures are returned as
// *extract.ExtractionError; an input with no records returns ErrNoRecords
// after printing the QSO-looking lines it did find.
func (p *Pipeline) Process(ctx context.Context, input string) (*Result, error) {
	fmt.Fprintf(p.w, "Extracting QSO log from %s (%s)...\n", input, p.extractor.Name())
	text, err := p.extractor.Extract(ctx, input)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(p.w, "Parsing QSO data...")
	parsed := p.parser.Parse(text)
	fmt.Fprintf(p.w, "Found %d total QSOs\n", len(parsed.Contacts))
	if n := len(parsed.NearMisses); n > 0 {
		fmt.Fprintf(p.w, "Skipped %d QSO line(s) that did not match %s/%s/%s\n",
			n, p.cfg.Station.Callsign, p.cfg.Station.SentReport, p.cfg.Station.SentExchange)
	}

	if len(parsed.Contacts) == 0 {
		printNoRecords(p.w, text)
		return nil, fmt.Errorf("%s: %w", input, ErrNoRecords)
	}

	unique := score.Process(parsed.Contacts)
	fmt.Fprintf(p.w, "After removing duplicates: %d QSOs\n", len(unique))

	summary := score.Summarize(len(parsed.Contacts), unique)
	return &Result{
		Source:     input,
		Parsed:     len(parsed.Contacts),
		Contacts:   unique,
		NearMisses: parsed.NearMisses,
		Summary:    summary,
		Log: cabrillo.Log{
			Header:   cabrillo.NewHeader(p.cfg, summary.Score, p.createdBy),
			Contacts: unique,
		},
	}, nil
}

// Generate runs Process and writes the Cabrillo log to output, creating its
// directory if needed. On success it prints the report and, when a
// recorder is set, records the run.
func (p *Pipeline) Generate(ctx context.Context, input, output string) (*Result, error) {
	res, err := p.Process(ctx, input)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(p.w, "\nCreating Cabrillo file...")
	content := cabrillo.Format(res.Log)
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("writing cabrillo file %s: %w", output, err)
	}
	res.OutputPath = output

	PrintReport(p.w, res)

	if p.recorder != nil {
		id, err := p.recorder.Record(ctx, history.Run{
			Callsign:     p.cfg.Station.Callsign,
			Contest:      p.cfg.Contest.Name,
			SourcePath:   input,
			OutputPath:   output,
			Parsed:       res.Parsed,
			Duplicates:   res.Summary.Duplicates,
			ClaimedScore: res.Summary.Score,
			Contacts:     res.Contacts,
		})
		if err != nil {
			// History failures do not fail a written log.
			fmt.Fprintf(p.w, "warning: recording run history failed: %v\n", err)
		} else {
			res.RunID = id
			fmt.Fprintf(p.w, "Recorded as run #%d\n", id)
		}
	}

	return res, nil
}
