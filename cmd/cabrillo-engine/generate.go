// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cabrillo-engine/internal/extract"
	"github.com/pdiddy/cabrillo-engine/internal/history"
	"github.com/pdiddy/cabrillo-engine/internal/pipeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate [input]",
	Short: "Build a Cabrillo file from a contest log",
	Long: `Generate extracts the text of the input log, parses every QSO record sent
by the configured station, removes duplicates (same call, band, and mode),
sorts the contacts by time, and writes a Cabrillo 3.0 file with a claimed
score of one point per QSO.

No file is written when the log cannot be read or contains no QSO records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := requireInput(cfg); err != nil {
		return err
	}

	ex, err := extract.New(cfg.Extraction.Backend)
	if err != nil {
		return err
	}
	p, err := pipeline.New(cfg, ex, createdBy(), os.Stdout)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()
		p.SetRecorder(store)
	}

	if _, err := p.Generate(cmd.Context(), cfg.Extraction.InputPath, cfg.Output.Path); err != nil {
		return fmt.Errorf("no Cabrillo file written: %w", err)
	}
	return nil
}

func init() {
	addStationFlags(generateCmd)
	generateCmd.Flags().String("output", "", "path of the Cabrillo file to write")
	generateCmd.Flags().String("contest", "", "CONTEST header value")
	generateCmd.Flags().Bool("history", false, "record the run in the history database")
	generateCmd.Flags().String("history-db", "", "history database path")

	rootCmd.AddCommand(generateCmd)
}
