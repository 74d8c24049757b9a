package ras

import (
	"errors"
	"fmt"
)

// Sentinel errors. Parse and lookup failures wrap exactly one of these, so
// callers can branch with errors.Is.
var (
	// ErrStructure marks malformed list nesting: an unmatched opener or
	// closer, content outside a list, an unterminated list, or an empty or
	// duplicate list name.
	ErrStructure = errors.New("structural error")

	// ErrFormat marks malformed quoting inside a record line.
	ErrFormat = errors.New("format error")

	ErrUnknownList            = errors.New("unknown list")
	ErrItemIndexOutOfRange    = errors.New("item index out of range")
	ErrSubItemIndexOutOfRange = errors.New("sub-item index out of range")

	// ErrType is returned by the As* conversions and by struct decoding when
	// a value's variant does not fit the requested type.
	ErrType = errors.New("type mismatch")
)

// SyntaxError describes a parse failure at a source position.
type SyntaxError struct {
	Line   int   // 1-based line, 0 when decoding a detached line
	Column int   // 1-based byte column, 0 when the whole line is at fault
	Kind   error // ErrStructure or ErrFormat
	Msg    string
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("line %d, column %d: %v: %s", e.Line, e.Column, e.Kind, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Kind, e.Msg)
	case e.Column > 0:
		return fmt.Sprintf("column %d: %v: %s", e.Column, e.Kind, e.Msg)
	default:
		return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
	}
}

func (e *SyntaxError) Unwrap() error { return e.Kind }

func structuralError(line int, format string, args ...any) error {
	return &SyntaxError{Line: line, Kind: ErrStructure, Msg: fmt.Sprintf(format, args...)}
}

func formatError(col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Column: col, Kind: ErrFormat, Msg: fmt.Sprintf(format, args...)}
}

// LookupError describes a failed Get. Err is the sentinel for the index
// level that failed.
type LookupError struct {
	List    string
	Item    int
	SubItem int
	Len     int // length of the sequence the failing index was checked against
	Err     error
}

func (e *LookupError) Error() string {
	switch e.Err {
	case ErrUnknownList:
		return fmt.Sprintf("list %q: %v", e.List, e.Err)
	case ErrItemIndexOutOfRange:
		return fmt.Sprintf("list %q: %v: %d not in [0, %d)", e.List, e.Err, e.Item, e.Len)
	default:
		return fmt.Sprintf("list %q item %d: %v: %d not in [0, %d)", e.List, e.Item, e.Err, e.SubItem, e.Len)
	}
}

func (e *LookupError) Unwrap() error { return e.Err }
