// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/pdiddy/cabrillo-engine/internal/cabrillo"
	"github.com/pdiddy/cabrillo-engine/internal/parse"
	"github.com/pdiddy/cabrillo-engine/internal/score"
	"github.com/pdiddy/cabrillo-engine/pkg/types"
)

// PrintReport writes the post-run report: first and last contacts, totals,
// contacts per band, exchanges worked, and sample Cabrillo lines. It is
// purely observational.
func PrintReport(w io.Writer, res *Result) {
	PrintContacts(w, res.Contacts)

	if res.OutputPath != "" {
		fmt.Fprintf(w, "\nCabrillo file created: %s\n", res.OutputPath)
	}
	fmt.Fprintf(w, "Total QSOs: %s\n", humanize.Comma(int64(len(res.Contacts))))
	fmt.Fprintf(w, "Claimed Score: %s\n", humanize.Comma(int64(res.Summary.Score)))

	PrintSummary(w, res.Summary)

	fmt.Fprintln(w, "\nSample QSO lines from Cabrillo file:")
	for i, c := range res.Contacts {
		if i == 3 {
			break
		}
		fmt.Fprintf(w, "  %s\n", cabrillo.FormatQSO(c))
	}
}

// PrintContacts lists the first and, for longer logs, the last few contacts.
func PrintContacts(w io.Writer, contacts []types.Contact) {
	n := len(contacts)
	fmt.Fprintf(w, "\nFirst %d QSOs:\n", min(n, sampleLines))
	for i := 0; i < n && i < sampleLines; i++ {
		printContact(w, i+1, contacts[i])
	}
	if n > sampleLines {
		fmt.Fprintf(w, "\nLast %d QSOs:\n", sampleLines)
		for i := n - sampleLines; i < n; i++ {
			printContact(w, i+1, contacts[i])
		}
	}
}

func printContact(w io.Writer, num int, c types.Contact) {
	fmt.Fprintf(w, "%3d: %s %s %5d %s %-12s RST:%s %s\n",
		num, c.Date(), c.Clock(), c.FrequencyKHz, c.Mode, c.ContactCall, c.ReceivedReport, c.ReceivedExchange)
}

// PrintSummary writes contacts per band and the exchanges worked.
func PrintSummary(w io.Writer, s score.Summary) {
	if s.Duplicates > 0 {
		fmt.Fprintf(w, "Duplicates removed: %d of %d\n", s.Duplicates, s.Parsed)
	}

	fmt.Fprintln(w, "\nQSOs by band:")
	for _, b := range s.Bands {
		fmt.Fprintf(w, "  %s: %d\n", b.Band, b.Count)
	}

	fmt.Fprintf(w, "\nCounties worked: %d\n", len(s.Exchanges))
	fmt.Fprintf(w, "Counties: %s\n", strings.Join(s.Exchanges, ", "))
}

func printNoRecords(w io.Writer, text string) {
	fmt.Fprintln(w, "ERROR: No QSOs found in log")
	samples := parse.Sample(text, sampleLines)
	if len(samples) == 0 {
		fmt.Fprintln(w, "No QSO: lines found in the extracted text.")
		return
	}
	fmt.Fprintln(w, "\nSample text from log:")
	for _, line := range samples {
		fmt.Fprintf(w, "Sample QSO line: %s\n", line)
	}
}
