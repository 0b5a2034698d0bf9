// Package stripjson turns JSON with comments into plain JSON.
//
// Line comments (//) and block comments (/* */) are removed or, by default,
// blanked out with spaces so that byte offsets, lines and columns of the
// remaining document match the source. Trailing commas before } or ] can be
// stripped too. The package does not parse JSON: anything that is not a
// comment or a trailing comma is copied through untouched.
package stripjson

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when the input is not valid UTF-8 text.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// InputError reports input rejected before it reached the scanner.
type InputError struct {
	Path   string // empty for in-memory input
	Offset int    // byte offset of the first invalid sequence
	Err    error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v (at byte %d)", e.Err, e.Offset)
	}
	return fmt.Sprintf("%s: %v (at byte %d)", e.Path, e.Err, e.Offset)
}

func (e *InputError) Unwrap() error { return e.Err }

// Options controls what gets stripped.
type Options struct {
	// TrailingCommas also strips commas that directly precede a closing } or ],
	// ignoring whitespace and comments in between.
	TrailingCommas bool

	// NoWhitespace deletes removed bytes instead of replacing them with
	// spaces. By default comments are blanked (space, tab, CR and LF inside
	// them are kept) and a stripped trailing comma becomes one space, so
	// output length equals input length.
	NoWhitespace bool
}

// DefaultOptions returns the options used when nil is passed: comments are
// blanked with whitespace and trailing commas are left alone. It is the zero
// Options.
func DefaultOptions() *Options {
	return &Options{}
}

// Stats counts what a single call removed.
type Stats struct {
	LineComments   int `json:"line_comments"`
	BlockComments  int `json:"block_comments"`
	TrailingCommas int `json:"trailing_commas"`
	BytesIn        int `json:"bytes_in"`
	BytesOut       int `json:"bytes_out"`
}

// Changed reports whether anything was stripped.
func (s Stats) Changed() bool {
	return s.LineComments+s.BlockComments+s.TrailingCommas > 0
}

// Strip removes comments (and optionally trailing commas) from text.
func Strip(text string, opts *Options) (string, error) {
	out, _, err := StripWithStats([]byte(text), opts)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// StripBytes is like Strip but works on a byte slice. The input is never
// modified; the result is a new slice.
func StripBytes(data []byte, opts *Options) ([]byte, error) {
	out, _, err := StripWithStats(data, opts)
	return out, err
}

// StripWithStats is like StripBytes and also reports what was removed.
func StripWithStats(data []byte, opts *Options) ([]byte, Stats, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	if off := invalidUTF8Offset(data); off >= 0 {
		return nil, Stats{}, &InputError{Offset: off, Err: ErrInvalidUTF8}
	}

	p := newProcessor(data, opts)
	out := p.run()
	return out, p.stats, nil
}

// Transform reads all of r, strips it and writes the result to w.
func Transform(w io.Writer, r io.Reader, opts *Options) (Stats, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read input: %w", err)
	}

	out, stats, err := StripWithStats(data, opts)
	if err != nil {
		return Stats{}, err
	}

	if _, err := w.Write(out); err != nil {
		return Stats{}, fmt.Errorf("failed to write output: %w", err)
	}

	return stats, nil
}

// invalidUTF8Offset returns the offset of the first invalid UTF-8 sequence
// in data, or -1 if data is valid.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
