// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Band is a contest band label such as "20m".
type Band string

const (
	Band15m   Band = "15m"
	Band20m   Band = "20m"
	Band40m   Band = "40m"
	BandOther Band = "other"
)

// bandThreshold maps the lowest frequency of a band to its label.
type bandThreshold struct {
	Band   Band
	MinKHz int
}

// bandTable is ordered from the highest threshold down so the first match
// wins. A frequency exactly on a threshold belongs to that band.
var bandTable = []bandThreshold{
	{Band: Band15m, MinKHz: 21000},
	{Band: Band20m, MinKHz: 14000},
	{Band: Band40m, MinKHz: 7000},
}

// BandFor classifies a frequency in kHz into a contest band. Frequencies
// below the lowest threshold classify as BandOther.
func BandFor(freqKHz int) Band {
	for _, entry := range bandTable {
		if freqKHz >= entry.MinKHz {
			return entry.Band
		}
	}
	return BandOther
}

