package deer

import (
	"errors"
	"fmt"
)

// Configuration errors, reported before the loop starts.
var (
	// ErrNilCollaborator indicates a System with a missing Func, InvLin,
	// or Shifter.
	ErrNilCollaborator = errors.New("deer: system collaborator is nil")

	// ErrShiftCount indicates Shifts is below one.
	ErrShiftCount = errors.New("deer: shift count must be at least 1")

	// ErrMissingInit indicates no initial guess was supplied.
	ErrMissingInit = errors.New("deer: initial guess is required")

	// ErrShiftArity indicates the shifter produced a different number of
	// sequences than the system's shift count.
	ErrShiftArity = errors.New("deer: shifter arity mismatch")

	// ErrDimension indicates mismatched sample counts or state widths.
	ErrDimension = errors.New("deer: dimension mismatch")
)

// IterationError wraps a failure inside the loop body with the iteration it
// occurred on, typically a singular system reported by the inverse linear
// operator.
type IterationError struct {
	Iter    int
	Wrapped error
}

func (e *IterationError) Error() string {
	return fmt.Sprintf("deer: iteration %d: %s", e.Iter, e.Wrapped)
}

func (e *IterationError) Unwrap() error {
	return e.Wrapped
}
