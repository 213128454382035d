// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cabrillo renders a processed contest log as a Cabrillo 3.0
// submission: a fixed header block, one QSO line per contact, and the
// END-OF-LOG sentinel. Column widths are minimums; longer values widen
// their column rather than being truncated.
package cabrillo

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

const (
	// Version is the Cabrillo format version written in START-OF-LOG.
	Version = "3.0"

	// EndOfLog terminates every log.
	EndOfLog = "END-OF-LOG:"
)

// Header holds the values of the header block.
type Header struct {
	Callsign     string
	Contest      types.ContestConfig
	Operator     types.OperatorConfig
	ClaimedScore int
	CreatedBy    string
}

// NewHeader builds a header from the run configuration. An empty
// Operators field defaults to the station callsign.
func NewHeader(cfg types.PipelineConfig, claimedScore int, createdBy string) Header {
	op := cfg.Operator
	if op.Operators == "" {
		op.Operators = cfg.Station.Callsign
	}
	if cfg.Output.CreatedBy != "" {
		createdBy = cfg.Output.CreatedBy
	}
	return Header{
		Callsign:     cfg.Station.Callsign,
		Contest:      cfg.Contest,
		Operator:     op,
		ClaimedScore: claimedScore,
		CreatedBy:    createdBy,
	}
}

// Field is one "TAG: value" header line.
type Field struct {
	Tag   string
	Value string
}

// Fields returns the header lines in submission order.
func (h Header) Fields() []Field {
	return []Field{
		{"START-OF-LOG", Version},
		{"CALLSIGN", h.Callsign},
		{"CONTEST", h.Contest.Name},
		{"CATEGORY-OPERATOR", h.Contest.CategoryOperator},
		{"CATEGORY-ASSISTED", h.Contest.CategoryAssisted},
		{"CATEGORY-BAND", h.Contest.CategoryBand},
		{"CATEGORY-MODE", h.Contest.CategoryMode},
		{"CATEGORY-POWER", h.Contest.CategoryPower},
		{"CATEGORY-STATION", h.Contest.CategoryStation},
		{"CATEGORY-TRANSMITTER", h.Contest.CategoryTransmitter},
		{"CLAIMED-SCORE", fmt.Sprintf("%d", h.ClaimedScore)},
		{"CLUB", h.Operator.Club},
		{"OPERATORS", h.Operator.Operators},
		{"NAME", h.Operator.Name},
		{"ADDRESS", h.Operator.Address},
		{"ADDRESS-CITY", h.Operator.AddressCity},
		{"ADDRESS-STATE-PROVINCE", h.Operator.AddressStateProvince},
		{"ADDRESS-POSTALCODE", h.Operator.AddressPostalCode},
		{"ADDRESS-COUNTRY", h.Operator.AddressCountry},
		{"EMAIL", h.Operator.Email},
		{"CREATED-BY", h.CreatedBy},
	}
}

// Log is a complete submission: header plus contacts already deduplicated
// and sorted.
type Log struct {
	Header   Header
	Contacts []types.Contact
}

// FormatQSO renders one contact as a Cabrillo QSO line without a trailing
// newline.
func FormatQSO(c types.Contact) string {
	return fmt.Sprintf("QSO: %5d %2s %s %s %-13s %3s %-6s %-13s %3s %-6s",
		c.FrequencyKHz,
		c.Mode,
		c.Date(),
		c.Clock(),
		c.StationCall,
		c.SentReport,
		c.SentExchange,
		c.ContactCall,
		c.ReceivedReport,
		c.ReceivedExchange,
	)
}

// Write streams the log to w. The QSO lines follow CREATED-BY directly with
// no blank line between header and body. Every line, including the
// sentinel, ends in a newline.
func Write(w io.Writer, log Log) error {
	bw := bufio.NewWriter(w)
	for _, f := range log.Header.Fields() {
		fmt.Fprintf(bw, "%s: %s\n", f.Tag, f.Value)
	}
	for _, c := range log.Contacts {
		bw.WriteString(FormatQSO(c))
		bw.WriteByte('\n')
	}
	bw.WriteString(EndOfLog)
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing cabrillo log: %w", err)
	}
	return nil
}

// Format renders the log as a string.
func Format(log Log) string {
	var b strings.Builder
	_ = Write(&b, log)
	return b.String()
}
