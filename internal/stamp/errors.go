package stamp

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTimestampFound is returned when a filename carries no recognisable timestamp.
	ErrNoTimestampFound = errors.New("no timestamp found in filename")

	// ErrUnsupportedTarget is returned when a transfer targets a view that cannot be written.
	ErrUnsupportedTarget = errors.New("view does not accept transfers")

	// ErrConversionInconsistency marks a failed round-trip self-check.
	// It must abort the current operation.
	ErrConversionInconsistency = errors.New("timestamp conversion inconsistency")

	// ErrInvalidPath is returned when a visit targets something that is not a directory.
	ErrInvalidPath = errors.New("not a directory")

	// ErrMalformedRecord marks an override file line that could not be parsed.
	ErrMalformedRecord = errors.New("malformed override record")

	// ErrPrecondition is returned when a batch operation's inputs are incomplete.
	ErrPrecondition = errors.New("operation preconditions not met")
)

// ConversionError describes which self-check failed and with what values.
type ConversionError struct {
	Check string
	Want  CanonicalTime
	Got   CanonicalTime
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s became %s", e.Check, e.Want, e.Got)
}

func (e *ConversionError) Unwrap() error { return ErrConversionInconsistency }

// RecordError points at a malformed line of an override file.
type RecordError struct {
	Line   int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrMalformedRecord }

// verify returns a ConversionError when got does not show the same wall time as want.
func verify(check string, want, got CanonicalTime) error {
	if want.SameWall(got) {
		return nil
	}
	return &ConversionError{Check: check, Want: want, Got: got}
}
