package jsoncheck

import (
	"fmt"

	"github.com/tidwall/pretty"
)

// Layout selects how output is re-laid out after stripping.
type Layout string

const (
	// Keep leaves the stripped bytes as they are, preserving positions.
	Keep Layout = "keep"
	// Pretty re-indents the document.
	Pretty Layout = "pretty"
	// Ugly removes all insignificant whitespace.
	Ugly Layout = "ugly"
)

// ParseLayout maps a flag value to a Layout. The empty string means Keep.
func ParseLayout(s string) (Layout, error) {
	switch Layout(s) {
	case "", Keep:
		return Keep, nil
	case Pretty, Ugly:
		return Layout(s), nil
	default:
		return "", fmt.Errorf("invalid format %q, expected keep, pretty or ugly", s)
	}
}

// Format applies the layout. Pretty uses indent for each level.
func Format(data []byte, layout Layout, indent string) []byte {
	switch layout {
	case Pretty:
		if indent == "" {
			indent = "  "
		}
		return pretty.PrettyOptions(data, &pretty.Options{
			Width:  80,
			Indent: indent,
		})
	case Ugly:
		return pretty.Ugly(data)
	default:
		return data
	}
}
