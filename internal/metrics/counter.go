package metrics

import (
	"bytes"
)

// Counter measures a piece of text.
type Counter interface {
	// Count returns the number of bytes and lines in the given text
	Count(text []byte) (bytes, lines int)
}

// LineCounter counts bytes and newline-separated lines. A trailing newline
// does not start a new line.
type LineCounter struct{}

// Count returns bytes and lines for the given text
func (LineCounter) Count(text []byte) (int, int) {
	if len(text) == 0 {
		return 0, 0
	}
	lines := bytes.Count(text, []byte{'\n'})
	if text[len(text)-1] != '\n' {
		lines++
	}
	return len(text), lines
}
