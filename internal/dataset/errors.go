package dataset

import (
	"fmt"
	"strings"
)

// DataLoadError indicates the source could not be read or left no usable rows.
type DataLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DataLoadError) Error() string {
	msg := "load dataset"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// SchemaError indicates a required column is absent from the source.
type SchemaError struct {
	Column    string
	Available []string
}

func (e *SchemaError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("required column %q not found", e.Column)
	}
	return fmt.Sprintf("required column %q not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}
