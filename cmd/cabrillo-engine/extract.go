package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cabrillo-engine/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [input]",
	Short: "Print the text extracted from a log document",
	Long: `Extract runs only the text extraction stage and prints the result. Use it
to check what a backend (native, pdftotext, text) makes of a PDF before
generating, for example when QSO records are not being found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		text, err := ex.Extract(cmd.Context(), cfg.Extraction.InputPath)
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, text)
		return nil
	},
}

func init() {
	extractCmd.Flags().String("input", "", "source log document (PDF or text)")
	extractCmd.Flags().String("backend", "", "extraction backend: auto, native, pdftotext, or text")

	rootCmd.AddCommand(extractCmd)
}
