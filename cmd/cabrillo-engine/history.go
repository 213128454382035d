// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pdiddy/cabrillo-engine/internal/cabrillo"
	"github.com/pdiddy/cabrillo-engine/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect previously generated Cabrillo logs",
	Long: `History reads the SQLite run history written by "generate --history".
Use subcommands to list runs, show one run's contacts, or export a run.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-16s  %-10s  %-16s  %6s  %5s  %s\n",
		"ID", "Created", "Callsign", "Contest", "Parsed", "Score", "Output")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range runs {
		contest := r.Contest
		if len(contest) > 16 {
			contest = contest[:13] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-16s  %-10s  %-16s  %6d  %5d  %s\n",
			r.ID, humanize.Time(r.CreatedAt), r.Callsign, contest, r.Parsed, r.ClaimedScore, r.OutputPath)
	}
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and its QSO lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	id, err := runID(args[0])
	if err != nil {
		return err
	}
	store, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Printf("Run #%d  %s (%s)\n", run.ID, run.CreatedAt.Local().Format("2006-01-02 15:04"), humanize.Time(run.CreatedAt))
	fmt.Printf("Station: %s  Contest: %s\n", run.Callsign, run.Contest)
	fmt.Printf("Source:  %s\n", run.SourcePath)
	fmt.Printf("Output:  %s\n", run.OutputPath)
	fmt.Printf("Parsed %d, duplicates %d, claimed score %d\n\n", run.Parsed, run.Duplicates, run.ClaimedScore)
	for _, c := range run.Contacts {
		fmt.Println(cabrillo.FormatQSO(c))
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export one run with its contacts as YAML or JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	id, err := runID(args[0])
	if err != nil {
		return err
	}
	store, err := historyStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		return store.ExportYAML(cmd.Context(), id, os.Stdout)
	case "json":
		return store.ExportJSON(cmd.Context(), id, os.Stdout)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

// --- shared helpers ---

func historyStore(cmd *cobra.Command) (*history.Store, error) {
	cfg, err := pipelineConfig(cmd, nil)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.History.DBPath); err != nil {
		return nil, fmt.Errorf("no history at %s (run generate --history first): %w", cfg.History.DBPath, err)
	}
	return history.NewStore(cfg.History)
}

func runID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run id %q", arg)
	}
	return id, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("history-db", "", "history database path")

	historyListCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
