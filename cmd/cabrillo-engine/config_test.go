// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	registerDefaults(viper.GetViper())
	t.Cleanup(viper.Reset)
}

func TestRegisterDefaults(t *testing.T) {
	v := viper.New()
	registerDefaults(v)

	assert.Equal(t, "K4GSX", v.GetString("station.callsign"))
	assert.Equal(t, "599", v.GetString("station.sent_report"))
	assert.Equal(t, "NY-QSO-PARTY", v.GetString("contest.name"))
	assert.Equal(t, "auto", v.GetString("extraction.backend"))
	assert.Equal(t, "history/runs.db", v.GetString("history.db_path"))
	assert.False(t, v.GetBool("history.enabled"))
}

func TestPipelineConfigFlagsOverrideDefaults(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{Use: "generate"}
	addStationFlags(cmd)
	require.NoError(t, cmd.Flags().Set("callsign", "W1AW"))
	require.NoError(t, cmd.Flags().Set("sent-exchange", "CT"))

	cfg, err := pipelineConfig(cmd, []string{"log.pdf"})
	require.NoError(t, err)

	assert.Equal(t, "W1AW", cfg.Station.Callsign)
	assert.Equal(t, "CT", cfg.Station.SentExchange)
	assert.Equal(t, "599", cfg.Station.SentReport)
	assert.Equal(t, "log.pdf", cfg.Extraction.InputPath)
	assert.Equal(t, "NY-QSO-PARTY", cfg.Contest.Name)
}

func TestPipelineConfigEnvironment(t *testing.T) {
	resetViper(t)
	viper.SetEnvPrefix("CABRILLO_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	t.Setenv("CABRILLO_ENGINE_CONTEST_NAME", "GA-QSO-PARTY")

	cmd := &cobra.Command{Use: "summary"}
	addStationFlags(cmd)

	cfg, err := pipelineConfig(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "GA-QSO-PARTY", cfg.Contest.Name)
	assert.Empty(t, cfg.Extraction.InputPath)
	assert.Error(t, requireInput(cfg))
}

func TestPipelineConfigRejectsInvalidStation(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{Use: "generate"}
	addStationFlags(cmd)
	require.NoError(t, cmd.Flags().Set("sent-report", "5N9"))

	_, err := pipelineConfig(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be numeric")
}

func TestRunID(t *testing.T) {
	tests := []struct {
		arg     string
		want    int64
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: "42", want: 42},
		{arg: "0", wantErr: true},
		{arg: "-3", wantErr: true},
		{arg: "abc", wantErr: true},
	}
	for _, tt := range tests {
		got, err := runID(tt.arg)
		if tt.wantErr {
			assert.Error(t, err, tt.arg)
			continue
		}
		require.NoError(t, err, tt.arg)
		assert.Equal(t, tt.want, got)
	}
}
