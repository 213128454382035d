// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

func testParser(t *testing.T) *Parser {
	t.Helper()
	p, err := New(types.DefaultPipelineConfig().Station)
	require.NoError(t, err)
	return p
}

func utc(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 1504", value)
	require.NoError(t, err)
	return ts
}

func TestParse_SingleRecord(t *testing.T) {
	res := testParser(t).Parse("QSO:21027CW202510181451K4GSX599GAWB2SIH599WAR")

	require.Len(t, res.Contacts, 1)
	assert.Empty(t, res.NearMisses)
	assert.Equal(t, types.Contact{
		FrequencyKHz:     21027,
		Mode:             types.ModeCW,
		Time:             utc(t, "2025-10-18 1451"),
		StationCall:      "K4GSX",
		SentReport:       "599",
		SentExchange:     "GA",
		ContactCall:      "WB2SIH",
		ReceivedReport:   "599",
		ReceivedExchange: "WAR",
	}, res.Contacts[0])
	assert.Equal(t, "2025-10-18", res.Contacts[0].Date())
	assert.Equal(t, "1451", res.Contacts[0].Clock())
}

func TestParse_DocumentOrder(t *testing.T) {
	text := strings.Join([]string{
		"NY QSO PARTY 2025 - K4GSX",
		"QSO:14035CW202510181602K4GSX599GAK2XX599ALB",
		"QSO:7030CW202510181500K4GSX599GAW2ABC/P599MON",
		"page 1 of 2",
		"QSO:21027PH202510190101K4GSX599GAN2YYY599NYC",
	}, "\n")

	res := testParser(t).Parse(text)

	require.Len(t, res.Contacts, 3)
	assert.Empty(t, res.NearMisses)

	calls := []string{res.Contacts[0].ContactCall, res.Contacts[1].ContactCall, res.Contacts[2].ContactCall}
	assert.Equal(t, []string{"K2XX", "W2ABC/P", "N2YYY"}, calls)
	assert.Equal(t, 7030, res.Contacts[1].FrequencyKHz)
	assert.Equal(t, types.ModePhone, res.Contacts[2].Mode)
	assert.Equal(t, "MON", res.Contacts[1].ReceivedExchange)
}

func TestParse_RecordSplitAcrossLines(t *testing.T) {
	text := "QSO:21027CW202510181451K4GSX599GA\nWB2SIH599WAR"

	res := testParser(t).Parse(text)

	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "WB2SIH", res.Contacts[0].ContactCall)
}

func TestParse_RecordDoesNotBorrowFromNextLine(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantCalls []string
		wantMiss  string
	}{
		{
			name:      "missing exchange before a record",
			text:      "QSO:21027CW202510181451K4GSX599GAWB2SIH599\nQSO:7040CW202510181500K4GSX599GAK2XX599ALB",
			wantCalls: []string{"K2XX"},
			wantMiss:  "QSO:21027CW202510181451K4GSX599GAWB2SIH599",
		},
		{
			name:     "missing exchange before a page footer",
			text:     "QSO:21027CW202510181451K4GSX599GAWB2SIH599\nPAGE 2 OF 3",
			wantMiss: "QSO:21027CW202510181451K4GSX599GAWB2SIH599",
		},
		{
			name:     "report wrapped onto the next line",
			text:     "QSO:21027CW202510181451K4GSX599GAWB2SIH\n599WAR",
			wantMiss: "QSO:21027CW202510181451K4GSX599GAWB2SIH",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testParser(t).Parse(tt.text)

			var calls []string
			for _, c := range res.Contacts {
				calls = append(calls, c.ContactCall)
			}
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, []string{tt.wantMiss}, res.NearMisses)
		})
	}
}

func TestParse_SkipsNearMisses(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "different sent exchange", line: "QSO:21027CW202510181451K4GSX599FLWB2SIH599WAR"},
		{name: "different station call", line: "QSO:21027CW202510181451W1AW599GAWB2SIH599WAR"},
		{name: "unknown mode", line: "QSO:21027SB202510181451K4GSX599GAWB2SIH599WAR"},
		{name: "two-letter exchange", line: "QSO:21027CW202510181451K4GSX599GAWB2SIH599WA"},
		{name: "impossible month", line: "QSO:21027CW202513181451K4GSX599GAWB2SIH599WAR"},
		{name: "impossible hour", line: "QSO:21027CW202510182551K4GSX599GAWB2SIH599WAR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testParser(t).Parse(tt.line + "\nQSO:7040CW202510181500K4GSX599GAK2XX599ALB")

			require.Len(t, res.Contacts, 1, "only the well-formed record parses")
			assert.Equal(t, "K2XX", res.Contacts[0].ContactCall)
			assert.Equal(t, []string{tt.line}, res.NearMisses)
		})
	}
}

func TestParse_CallContainingReportDigits(t *testing.T) {
	res := testParser(t).Parse("QSO:14040CW202510181700K4GSX599GAN599ABC599WAR")

	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "N599ABC", res.Contacts[0].ContactCall)
	assert.Equal(t, "WAR", res.Contacts[0].ReceivedExchange)
}

func TestParse_CabrilloLine(t *testing.T) {
	line := "QSO: 21027 CW 2025-10-18 1451 K4GSX         599 GA     WB2SIH        599 WAR   "

	res := testParser(t).Parse(line)

	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "WB2SIH", res.Contacts[0].ContactCall)
	assert.Equal(t, utc(t, "2025-10-18 1451"), res.Contacts[0].Time)
}

func TestParse_StationWithPortableCall(t *testing.T) {
	station := types.StationConfig{Callsign: "K4GSX/M", SentReport: "599", SentExchange: "GA", ReceivedReport: "599"}
	p, err := New(station)
	require.NoError(t, err)

	res := p.Parse("QSO:21027CW202510181451K4GSX/M599GAWB2SIH599WAR\nQSO:21027CW202510181451K4GSXXM599GAWB2SIH599WAR")

	require.Len(t, res.Contacts, 1)
	assert.Equal(t, "K4GSX/M", res.Contacts[0].StationCall)
	assert.Len(t, res.NearMisses, 1)
}

func TestParse_NoRecords(t *testing.T) {
	res := testParser(t).Parse("just a page header\nwith nothing useful")

	assert.Empty(t, res.Contacts)
	assert.Empty(t, res.NearMisses)
}

func TestNew_RequiresStation(t *testing.T) {
	_, err := New(types.StationConfig{Callsign: "K4GSX"})
	assert.Error(t, err)
}

func TestSample(t *testing.T) {
	long := "QSO:" + strings.Repeat("X", 150)
	text := "header\n  QSO:21027CW garbage  \nother\n" + long + "\nQSO:third"

	got := Sample(text, 2)

	require.Len(t, got, 2)
	assert.Equal(t, "QSO:21027CW garbage", got[0])
	assert.Equal(t, long[:100]+"...", got[1])
}
