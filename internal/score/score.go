// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score removes duplicate contacts, orders the survivors by time,
// and computes the claimed score. Every surviving contact is worth one
// point; there are no multipliers.
package score

import (
	"fmt"
	"sort"

	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// Dedupe returns the first occurrence of each (call, band, mode) key in
// input order. The input slice is not modified. Running Dedupe on its own
// output removes nothing.
func Dedupe(contacts []types.Contact) []types.Contact {
	seen := make(map[types.DupeKey]bool, len(contacts))
	unique := make([]types.Contact, 0, len(contacts))
	for _, c := range contacts {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, c)
	}
	return unique
}

// SortChronological orders contacts by date and time in place. Contacts
// logged in the same minute keep their relative order.
func SortChronological(contacts []types.Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Time.Before(contacts[j].Time)
	})
}

// Process deduplicates contacts and sorts the survivors chronologically.
func Process(contacts []types.Contact) []types.Contact {
	unique := Dedupe(contacts)
	SortChronological(unique)
	return unique
}

// Score returns the claimed score: one point per contact.
func Score(contacts []types.Contact) int {
	return len(contacts)
}

// BandCount is the number of contacts on one band.
type BandCount struct {
	Band  string `json:"band" yaml:"band"`
	Count int    `json:"count" yaml:"count"`
}

// Summary describes a processed log for the console report and exports.
type Summary struct {
	Parsed     int         `json:"parsed" yaml:"parsed"`
	Duplicates int         `json:"duplicates" yaml:"duplicates"`
	Contacts   int         `json:"contacts" yaml:"contacts"`
	Score      int         `json:"claimed_score" yaml:"claimed_score"`
	Bands      []BandCount `json:"bands" yaml:"bands"`
	Exchanges  []string    `json:"exchanges_worked" yaml:"exchanges_worked"`
}

// Summarize reports the unique contacts per band and the distinct received
// exchanges (counties worked). parsed is the record count before
// deduplication. Contacts outside the named contest bands are grouped by
// their exact frequency, e.g. "3550kHz".
func Summarize(parsed int, unique []types.Contact) Summary {
	counts := make(map[string]int)
	exchanges := make(map[string]bool)
	for _, c := range unique {
		counts[bandLabel(c)]++
		exchanges[c.ReceivedExchange] = true
	}

	s := Summary{
		Parsed:     parsed,
		Duplicates: parsed - len(unique),
		Contacts:   len(unique),
		Score:      Score(unique),
		Bands:      make([]BandCount, 0, len(counts)),
		Exchanges:  make([]string, 0, len(exchanges)),
	}
	for band, n := range counts {
		s.Bands = append(s.Bands, BandCount{Band: band, Count: n})
	}
	sort.Slice(s.Bands, func(i, j int) bool { return s.Bands[i].Band < s.Bands[j].Band })
	for ex := range exchanges {
		s.Exchanges = append(s.Exchanges, ex)
	}
	sort.Strings(s.Exchanges)
	return s
}

func bandLabel(c types.Contact) string {
	if b := c.Band(); b != types.BandOther {
		return string(b)
	}
	return fmt.Sprintf("%dkHz", c.FrequencyKHz)
}
