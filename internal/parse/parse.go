// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse scans extracted log text for QSO records. A record is the
// concatenation
//
//	QSO:<freq><mode><YYYY><MM><DD><HHMM><STATION_CALL><SENT_RPT><SENT_EXCH><CONTACT_CALL><RCVD_RPT><RCVD_EXCH>
//
// where the station call, both reports, and the sent exchange are literals
// taken from the station configuration. Spaces between fields and dashes
// in the date are tolerated, so a generated Cabrillo QSO line parses back to
// the record it was formatted from. Text that does not fit the pattern is
// skipped without error.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// Marker introduces every QSO record.
const Marker = "QSO:"

const (
	// sampleWidth caps the length of diagnostic snippets.
	sampleWidth = 100

	recordLayout = "20060102 1504"
)

// Submatch indexes of the compiled record pattern.
const (
	groupFreq = iota + 1
	groupMode
	groupYear
	groupMonth
	groupDay
	groupClock
	groupCall
	groupExchange
)

// Parser extracts contacts for one station identity.
type Parser struct {
	station types.StationConfig
	pattern *regexp.Regexp
}

// Result holds the outcome of parsing one text blob.
type Result struct {
	// Contacts are the parsed records in document order.
	Contacts []types.Contact

	// NearMisses are the QSO markers that did not produce a record, each
	// trimmed to the rest of its line. They are reported, never fatal.
	NearMisses []string
}

// New compiles the record pattern for station. The station values are
// quoted, so callsigns with a portable designator are matched literally.
func New(station types.StationConfig) (*Parser, error) {
	if station.Callsign == "" || station.SentReport == "" || station.SentExchange == "" || station.ReceivedReport == "" {
		return nil, fmt.Errorf("station callsign, reports, and sent exchange are required")
	}

	modes := make([]string, len(types.Modes))
	for i, m := range types.Modes {
		modes[i] = string(m)
	}

	// Fields are separated by spaces or tabs only. The one line break a
	// record may contain falls between the sent exchange and the contact
	// call, where PDF text wraps long records.
	const (
		sep  = `[ \t]*`
		wrap = `[ \t]*(?:\r?\n[ \t]*)?`
	)
	expr := regexp.QuoteMeta(Marker) + sep +
		`(\d+)` + sep +
		`(` + strings.Join(modes, "|") + `)` + sep +
		`(\d{4})-?(\d{2})-?(\d{2})` + sep +
		`(\d{4})` + sep +
		regexp.QuoteMeta(station.Callsign) + sep +
		regexp.QuoteMeta(station.SentReport) + sep +
		regexp.QuoteMeta(station.SentExchange) + wrap +
		`([A-Z0-9/]+)` + sep +
		regexp.QuoteMeta(station.ReceivedReport) + sep +
		`([A-Z]{3})`

	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling record pattern: %w", err)
	}
	return &Parser{station: station, pattern: pattern}, nil
}

// Parse returns every record in text in document order. A match either
// yields a fully populated contact or nothing: records with an impossible
// date or time are dropped like any other near miss.
func (p *Parser) Parse(text string) Result {
	var res Result
	starts := make(map[int]bool)

	for _, m := range p.pattern.FindAllStringSubmatchIndex(text, -1) {
		group := func(g int) string { return text[m[2*g]:m[2*g+1]] }

		c, ok := p.contact(group)
		if !ok {
			continue
		}
		starts[m[0]] = true
		res.Contacts = append(res.Contacts, c)
	}

	for _, at := range markerOffsets(text) {
		if !starts[at] {
			res.NearMisses = append(res.NearMisses, snippet(text[at:]))
		}
	}
	return res
}

func (p *Parser) contact(group func(int) string) (types.Contact, bool) {
	freq, err := strconv.Atoi(group(groupFreq))
	if err != nil {
		return types.Contact{}, false
	}

	stamp := group(groupYear) + group(groupMonth) + group(groupDay) + " " + group(groupClock)
	ts, err := time.ParseInLocation(recordLayout, stamp, time.UTC)
	if err != nil {
		return types.Contact{}, false
	}

	return types.Contact{
		FrequencyKHz:     freq,
		Mode:             types.Mode(group(groupMode)),
		Time:             ts,
		StationCall:      p.station.Callsign,
		SentReport:       p.station.SentReport,
		SentExchange:     p.station.SentExchange,
		ContactCall:      group(groupCall),
		ReceivedReport:   p.station.ReceivedReport,
		ReceivedExchange: group(groupExchange),
	}, true
}

// Sample returns up to n lines of text that contain a QSO marker, trimmed
// to a readable width. It backs the diagnostic shown when nothing parsed.
func Sample(text string, n int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len(out) >= n {
			break
		}
		if strings.Contains(line, Marker) {
			out = append(out, snippet(strings.TrimSpace(line)))
		}
	}
	return out
}

func markerOffsets(text string) []int {
	var offsets []int
	for from := 0; ; {
		i := strings.Index(text[from:], Marker)
		if i < 0 {
			return offsets
		}
		offsets = append(offsets, from+i)
		from += i + len(Marker)
	}
}

func snippet(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimRight(s, " \t\r")
	if len(s) > sampleWidth {
		return s[:sampleWidth] + "..."
	}
	return s
}
