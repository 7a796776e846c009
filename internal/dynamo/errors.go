package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidRequest indicates a caller contract violation (bad horizon,
	// sample count or kind). It is never transient.
	ErrInvalidRequest = errors.New("dynamo: invalid request")

	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrStepRejected is returned by adaptive integrators when the local
	// error estimate exceeds the tolerance. The state was not advanced; retry
	// with the returned step size.
	ErrStepRejected = errors.New("dynamo: step rejected, error above tolerance")

	// ErrStepLimit indicates an adaptive integration needed more steps than
	// allowed to reach the next sample.
	ErrStepLimit = errors.New("dynamo: adaptive step limit exceeded")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return e.Wrapped.Error()
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
