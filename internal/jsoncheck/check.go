// Package jsoncheck validates, reformats and cross-checks stripped output.
// None of it feeds back into stripping; it only inspects the result.
package jsoncheck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// SyntaxError locates the first JSON syntax error in a document.
type SyntaxError struct {
	Offset int64 // byte offset, as reported by encoding/json
	Line   int   // 1-based
	Column int   // 1-based, in bytes
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Check returns nil if data is a valid JSON document, otherwise a
// *SyntaxError pointing at the problem.
func Check(data []byte) error {
	if gjson.ValidBytes(data) {
		return nil
	}

	// gjson has no error positions, so take the slow path for the report.
	var raw json.RawMessage
	err := json.Unmarshal(data, &raw)

	var synErr *json.SyntaxError
	switch {
	case errors.As(err, &synErr):
		line, col := Position(data, synErr.Offset)
		return &SyntaxError{Offset: synErr.Offset, Line: line, Column: col, Msg: synErr.Error()}
	case err != nil:
		line, col := Position(data, int64(len(data)))
		return &SyntaxError{Offset: int64(len(data)), Line: line, Column: col, Msg: err.Error()}
	default:
		// encoding/json and gjson disagree; trust the stricter one.
		return &SyntaxError{Line: 1, Column: 1, Msg: "rejected by validator"}
	}
}

// Position converts a byte offset to a 1-based line and column. encoding/json
// reports the offset just past the offending byte, so the column points at it.
func Position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}

	before := data[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1)
	if col < 1 {
		col = 1
	}
	return line, col
}
