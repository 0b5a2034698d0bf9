package metrics

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// trimPrefix returns s unchanged if len(s) ≤ max; otherwise returns
// "…" + the last max-1 bytes, preserving the suffix.
func trimPrefix(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "…" + s[len(s)-max+1:]
}

// TermWidth returns the width of the terminal behind f, or 80 as a fallback.
func TermWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// PrintSummary writes one row per input and a totals row. width is the
// number of columns available; the key column shrinks to fit, trimming
// paths from the front.
func PrintSummary(w io.Writer, m *Collector, width int) error {
	const (
		numW = 7 // per count column
		gapW = 2
		cols = 5
	)

	m.Wait()

	keyW := width - cols*(numW+gapW)
	if keyW < 8 {
		keyW = 8
	}

	entries := m.Entries()
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No inputs processed")
		return err
	}

	row := func(key string, it MetricItem) error {
		_, err := fmt.Fprintf(w, "%-*s  %*d  %*d  %*d  %*d  %*d\n",
			keyW, trimPrefix(key, keyW),
			numW, it.LineComments,
			numW, it.BlockComments,
			numW, it.TrailingCommas,
			numW, it.BytesIn,
			numW, it.BytesOut,
		)
		return err
	}

	if _, err := fmt.Fprintf(w, "%-*s  %*s  %*s  %*s  %*s  %*s\n",
		keyW, "INPUT", numW, "LINE", numW, "BLOCK", numW, "COMMAS", numW, "IN", numW, "OUT"); err != nil {
		return err
	}

	var changed int
	for _, e := range entries {
		if err := row(e.Key.Key, e.MetricItem); err != nil {
			return err
		}
		if e.LineComments+e.BlockComments+e.TrailingCommas > 0 {
			changed++
		}
	}

	if err := row("TOTAL", m.Total()); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nSummary: %d inputs, %d changed\n", len(entries), changed)
	return err
}
