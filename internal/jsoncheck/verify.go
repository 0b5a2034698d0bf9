package jsoncheck

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/tidwall/pretty"
)

// MismatchError reports stripped output that disagrees with HuJSON's reading
// of the original document.
type MismatchError struct {
	Offset int // first differing byte in the compacted forms
	Want   []byte
	Got    []byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("output differs from standardized input at compacted byte %d", e.Offset)
}

// Standardize parses src as HuJSON and returns it as standard JSON, with
// comments and trailing commas blanked in place.
func Standardize(src []byte) ([]byte, error) {
	v, err := hujson.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse as HuJSON: %w", err)
	}
	v.Standardize()
	return v.Pack(), nil
}

// Verify checks that stripped is the same document HuJSON reads from
// original. Both sides are compacted first, so blanking and deleting modes
// compare equal.
func Verify(original, stripped []byte) error {
	std, err := Standardize(original)
	if err != nil {
		return err
	}

	want := pretty.Ugly(std)
	got := pretty.Ugly(stripped)
	if bytes.Equal(want, got) {
		return nil
	}

	return &MismatchError{Offset: firstDiff(want, got), Want: want, Got: got}
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
