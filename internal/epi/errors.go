package epi

import (
	"errors"
	"fmt"
)

// Domain errors for model construction and solving.
var (
	// ErrInvalidParameter indicates a negative rate or malformed initial state.
	ErrInvalidParameter = errors.New("epi: invalid parameter")

	// ErrInvalidTimeGrid indicates an empty or non-increasing time sequence.
	ErrInvalidTimeGrid = errors.New("epi: invalid time grid")

	// ErrIntegration indicates solver failure: a non-finite derivative or
	// state, or the adaptive step shrinking below its minimum.
	ErrIntegration = errors.New("epi: integration failed")
)

// SolveError wraps an error with the step and time it occurred at.
type SolveError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
