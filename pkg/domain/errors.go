package domain

import (
	"errors"
	"fmt"
)

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrMalformedMachine is returned when a machine description cannot be parsed.
var ErrMalformedMachine = errors.New("malformed machine description")

// ErrMalformedParams is returned when a parameter file cannot be parsed.
var ErrMalformedParams = errors.New("malformed run parameters")

// ErrEmptyInputs is returned when a batch has no input strings.
var ErrEmptyInputs = errors.New("no input strings")

// ParseError locates a loader failure in its source file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
