package dataset

import (
	"errors"
	"fmt"
)

// ErrMalformedInput indicates text that lacks the mandatory header rows.
var ErrMalformedInput = errors.New("dataset: malformed input")

// MalformedError describes why a document was rejected.
type MalformedError struct {
	Rows   int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%v: %s (%d rows)", ErrMalformedInput, e.Reason, e.Rows)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedInput
}
