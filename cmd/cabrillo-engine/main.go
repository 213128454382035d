// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cabrillo-engine CLI, which turns a
// contest log export into a Cabrillo submission file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cabrillo-engine/internal/pipeline"
	"github.com/pdiddy/cabrillo-engine/internal/profile"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedProfile holds operator header fields loaded from the profile directory at startup.
var loadedProfile map[string]string

// rootCmd is the base command for the cabrillo-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "cabrillo-engine",
	Short: "Convert a contest log export into a Cabrillo submission",
	Long: `cabrillo-engine reads a contest log (a PDF export or plain text), extracts
the QSO records logged by your station, removes duplicate contacts on the same
band and mode, and writes a Cabrillo 3.0 file ready for submission.

Station identity, contest categories, and paths come from flags, the
CABRILLO_ENGINE_* environment, or cabrillo-engine.yaml. Personal header fields
(name, address, email) can be kept as one-file-per-field in .station/.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("profile-dir")
		p, err := profile.Load(dir, os.Stderr)
		if err != nil {
			return err
		}
		loadedProfile = p
		if len(p) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded profile fields from %s: %d\n", dir, len(p))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: cabrillo-engine.yaml in . or ~/.config/cabrillo-engine)")
	rootCmd.PersistentFlags().String("profile-dir", profile.DefaultDir, "directory of operator header fields (name, email, address, ...)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cabrillo-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cabrillo-engine"))
		}
	}

	viper.SetEnvPrefix("CABRILLO_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	registerDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err once. A log without records has already been
// reported by the pipeline together with sample lines.
func reportError(w io.Writer, err error) {
	if errors.Is(err, pipeline.ErrNoRecords) {
		return
	}
	fmt.Fprintln(w, "ERROR:", err)
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
