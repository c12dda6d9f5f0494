package app

import (
	"timestamper/internal/stamp"
)

// Operation tracks one CLI invocation. Its ID tags every log line the
// invocation writes.
type Operation struct {
	ID         string
	Name       string
	Parameters string
	Status     string // "success" or "error"
}

// NewOperation creates an operation with a fresh ID.
func NewOperation(idgen stamp.IDGenerator, name, parameters string) *Operation {
	return &Operation{
		ID:         idgen.New(),
		Name:       name,
		Parameters: parameters,
		Status:     "success",
	}
}

// Fail records that the operation ended in an error.
func (op *Operation) Fail() {
	op.Status = "error"
}

// Failed reports whether Fail was called.
func (op *Operation) Failed() bool {
	return op.Status == "error"
}
