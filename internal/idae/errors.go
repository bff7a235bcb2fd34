package idae

import (
	"errors"
	"fmt"
)

var (
	// ErrNilResidual indicates Solve was called without a system.
	ErrNilResidual = errors.New("idae: residual is nil")

	// ErrTooFewPoints indicates fewer than two time points.
	ErrTooFewPoints = errors.New("idae: need at least two time points")

	// ErrDimension indicates mismatched vector widths or sample counts.
	ErrDimension = errors.New("idae: dimension mismatch")

	// ErrNewtonStalled indicates a per-step Newton solve ran out of
	// iterations before meeting its tolerance.
	ErrNewtonStalled = errors.New("idae: newton iteration stalled")

	// ErrTangentUnsupported indicates SolveJVP was called with a method
	// that has no registered tangent rule.
	ErrTangentUnsupported = errors.New("idae: tangents require the DEER method")
)

// StepError wraps a failure during sequential marching with the step and
// time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("idae: step %d (t=%.4g): %s", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
