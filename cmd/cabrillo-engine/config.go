// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cabrillo-engine/internal/profile"
	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// flagKeys maps command-line flags to their configuration keys. Only flags
// defined on the running command are bound.
var flagKeys = map[string]string{
	"input":           "extraction.input_path",
	"backend":         "extraction.backend",
	"output":          "output.path",
	"callsign":        "station.callsign",
	"sent-report":     "station.sent_report",
	"sent-exchange":   "station.sent_exchange",
	"received-report": "station.received_report",
	"contest":         "contest.name",
	"history":         "history.enabled",
	"history-db":      "history.db_path",
}

// registerDefaults seeds v with every key of the default pipeline config so
// environment variables resolve for keys absent from the config file.
func registerDefaults(v *viper.Viper) {
	data, err := yaml.Marshal(types.DefaultPipelineConfig())
	if err != nil {
		return
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return
	}
	setDefaults(v, "", tree)
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if sub, ok := val.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}

// pipelineConfig resolves the run configuration for cmd: flags over
// environment over config file over defaults. A positional argument is the
// input document. Profile fields fill operator values left blank.
func pipelineConfig(cmd *cobra.Command, args []string) (types.PipelineConfig, error) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return types.PipelineConfig{}, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}
	if len(args) > 0 {
		cfg.Extraction.InputPath = args[0]
	}
	profile.Apply(&cfg.Operator, loadedProfile)

	if err := cfg.Validate(); err != nil {
		return types.PipelineConfig{}, err
	}
	return cfg, nil
}

// requireInput reports a missing source document.
func requireInput(cfg types.PipelineConfig) error {
	if cfg.Extraction.InputPath == "" {
		return fmt.Errorf("input document required: pass a path or set extraction.input_path")
	}
	return nil
}

// addStationFlags registers the flags shared by commands that parse a log.
func addStationFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "source log document (PDF or text)")
	cmd.Flags().String("backend", "", "extraction backend: auto, native, pdftotext, or text")
	cmd.Flags().String("callsign", "", "station callsign embedded in every QSO record")
	cmd.Flags().String("sent-report", "", "signal report sent with every QSO")
	cmd.Flags().String("sent-exchange", "", "location code sent with every QSO")
	cmd.Flags().String("received-report", "", "signal report logged for every received QSO")
}

func createdBy() string {
	return "cabrillo-engine " + version
}
