// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cabrillo-engine pipeline:
// the Contact record produced by parsing, the Band classification used for
// duplicate detection, and the run configuration passed to every stage.
package types

import (
	"strings"
	"time"
)

// Mode is a Cabrillo operating mode code.
type Mode string

const (
	ModeCW    Mode = "CW"
	ModePhone Mode = "PH"
	ModeFM    Mode = "FM"
	ModeRTTY  Mode = "RY"
	ModeData  Mode = "DG"
)

// Modes lists every mode code the parser recognizes, in pattern order.
var Modes = []Mode{ModeCW, ModePhone, ModeFM, ModeRTTY, ModeData}

// Valid reports whether m is one of the recognized mode codes.
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

const (
	// DateLayout renders the contest day in Cabrillo QSO lines.
	DateLayout = "2006-01-02"
	// ClockLayout renders the UTC time of a contact in Cabrillo QSO lines.
	ClockLayout = "1504"
)

// Contact is a single logged QSO. Contacts are created by the parser and
// are not modified afterwards.
type Contact struct {
	// FrequencyKHz is the operating frequency in kHz (e.g. 21027).
	FrequencyKHz int `json:"frequency_khz" yaml:"frequency_khz"`

	// Mode is the Cabrillo mode code.
	Mode Mode `json:"mode" yaml:"mode"`

	// Time is the UTC date and time of the contact at minute resolution.
	Time time.Time `json:"time" yaml:"time"`

	// StationCall is the logging station's own callsign.
	StationCall string `json:"station_call" yaml:"station_call"`

	// SentReport is the signal report sent (e.g. "599").
	SentReport string `json:"sent_report" yaml:"sent_report"`

	// SentExchange is the location code sent (e.g. "GA").
	SentExchange string `json:"sent_exchange" yaml:"sent_exchange"`

	// ContactCall is the other station's callsign, including any
	// portable designator such as "/P".
	ContactCall string `json:"contact_call" yaml:"contact_call"`

	// ReceivedReport is the signal report received.
	ReceivedReport string `json:"received_report" yaml:"received_report"`

	// ReceivedExchange is the other station's location code (county abbreviation).
	ReceivedExchange string `json:"received_exchange" yaml:"received_exchange"`
}

// Band returns the contest band derived from the contact's frequency.
func (c Contact) Band() Band {
	return BandFor(c.FrequencyKHz)
}

// Date returns the contact date formatted as YYYY-MM-DD.
func (c Contact) Date() string {
	return c.Time.UTC().Format(DateLayout)
}

// Clock returns the contact time formatted as HHMM.
func (c Contact) Clock() string {
	return c.Time.UTC().Format(ClockLayout)
}

// DupeKey identifies a contact for duplicate detection: the same station
// worked again on the same band and mode is a duplicate.
type DupeKey struct {
	Call string
	Band Band
	Mode Mode
}

// Key returns the duplicate-detection key for c.
func (c Contact) Key() DupeKey {
	return DupeKey{
		Call: strings.ToUpper(c.ContactCall),
		Band: c.Band(),
		Mode: c.Mode,
	}
}
