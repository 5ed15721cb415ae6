package core

import (
	"fmt"
	"strings"
)

// LoadError reports a dataset that could not be turned into a Table: the
// source is missing or unreadable, required columns are absent, or a row
// could not be parsed. It is fatal for the dashboard.
type LoadError struct {
	Source  string   // file path or relation the data came from
	Missing []string // required columns absent from the header
	Row     int      // 1-based data row, 0 when not row specific
	Err     error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Source)
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, ": row %d", e.Row)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError reports a stage that references a column or dimension the
// table does not have. It indicates a programming error, not bad input data.
type SchemaError struct {
	Name   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("schema: unknown column %q", e.Name)
	}
	return fmt.Sprintf("schema: column %q: %s", e.Name, e.Reason)
}
