package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cabrillo-engine/internal/extract"
	"github.com/pdiddy/cabrillo-engine/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [input]",
	Short: "Report contacts per band and counties worked without writing a file",
	Long: `Summary runs extraction, parsing, and duplicate removal, then reports
the claimed score, contacts per band, and the counties worked. Nothing is
written to disk. Use --format yaml or json for machine-readable output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "text", "yaml", "json":
		default:
			return fmt.Errorf("unsupported format %q: use text, yaml, or json", format)
		}

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

		// Progress goes to stderr so structured output stays parseable.
		p, err := pipeline.New(cfg, ex, createdBy(), os.Stderr)
		if err != nil {
			return err
		}
		res, err := p.Process(cmd.Context(), cfg.Extraction.InputPath)
		if err != nil {
			return err
		}

		switch format {
		case "yaml":
			data, err := yaml.Marshal(res.Summary)
			if err != nil {
				return fmt.Errorf("marshaling YAML: %w", err)
			}
			_, err = os.Stdout.Write(data)
			return err
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Summary)
		default:
			pipeline.PrintContacts(os.Stdout, res.Contacts)
			fmt.Fprintf(os.Stdout, "\nClaimed Score: %d\n", res.Summary.Score)
			pipeline.PrintSummary(os.Stdout, res.Summary)
			return nil
		}
	},
}

func init() {
	addStationFlags(summaryCmd)
	summaryCmd.Flags().String("format", "text", "output format: text, yaml, or json")

	rootCmd.AddCommand(summaryCmd)
}
