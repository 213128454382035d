// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		freq int
		want Band
	}{
		{freq: 28025, want: Band15m},
		{freq: 21000, want: Band15m},
		{freq: 20999, want: Band20m},
		{freq: 14000, want: Band20m},
		{freq: 13999, want: Band40m},
		{freq: 7000, want: Band40m},
		{freq: 6999, want: BandOther},
		{freq: 3550, want: BandOther},
		{freq: 0, want: BandOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.freq), "freq %d", tt.freq)
	}
}

func TestModeValid(t *testing.T) {
	for _, m := range Modes {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, Mode("SSB").Valid())
	assert.False(t, Mode("").Valid())
}

func TestPipelineConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *PipelineConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *PipelineConfig) {}},
		{name: "missing callsign", mutate: func(c *PipelineConfig) { c.Station.Callsign = " " }, wantErr: "callsign is required"},
		{name: "callsign with space", mutate: func(c *PipelineConfig) { c.Station.Callsign = "K4 GSX" }, wantErr: "whitespace"},
		{name: "non-numeric sent report", mutate: func(c *PipelineConfig) { c.Station.SentReport = "59A" }, wantErr: "sent report"},
		{name: "empty received report", mutate: func(c *PipelineConfig) { c.Station.ReceivedReport = "" }, wantErr: "received report"},
		{name: "missing exchange", mutate: func(c *PipelineConfig) { c.Station.SentExchange = "" }, wantErr: "sent exchange"},
		{name: "unknown backend", mutate: func(c *PipelineConfig) { c.Extraction.Backend = "ocr" }, wantErr: "unknown extraction backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPipelineConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
