package delim

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedStructure reports a missing open delimiter or a nesting
	// that never balances.
	ErrMalformedStructure = errors.New("malformed delimiter structure")
	// ErrEmptyDelimiter reports an empty open or close delimiter.
	ErrEmptyDelimiter = errors.New("empty delimiter")
)

// StructureError describes why a balanced span could not be resolved.
type StructureError struct {
	Open   string
	Close  string
	Offset int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %s (open %q, close %q, offset %d)", ErrMalformedStructure, e.Reason, e.Open, e.Close, e.Offset)
	}
	return fmt.Sprintf("%s: %s (open %q, close %q)", ErrMalformedStructure, e.Reason, e.Open, e.Close)
}

func (e *StructureError) Unwrap() error {
	return ErrMalformedStructure
}
