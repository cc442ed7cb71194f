package inflammation

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError via errors.Is.
	ErrParse = errors.New("inflammation: parse error")
	// ErrRaggedRow indicates a row whose length differs from the first row.
	ErrRaggedRow = errors.New("inflammation: row length differs from first row")
	// ErrNotNumeric indicates a token that does not parse as a float.
	ErrNotNumeric = errors.New("inflammation: value is not numeric")
	// ErrEmptyInput is returned by the daily aggregates when the table has no patients.
	ErrEmptyInput = errors.New("inflammation: table has no patients")
	// ErrIndexOutOfRange matches every *IndexOutOfRangeError via errors.Is.
	ErrIndexOutOfRange = errors.New("inflammation: index out of range")
)

// ParseError describes why a data file could not be turned into a Table.
// Line and Column are 1-based; zero means unknown.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "parse error"
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse %s: line %d, field %d: %v", e.Path, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("parse %s: line %d: %v", e.Path, e.Line, e.Err)
	default:
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// IndexOutOfRangeError reports a patient or day index outside [0, Len).
type IndexOutOfRangeError struct {
	Axis  string // "patient" or "day"
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0, %d)", e.Axis, e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }
