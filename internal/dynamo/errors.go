package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameters indicates a physical parameter outside its valid range.
	ErrInvalidParameters = errors.New("dynamo: invalid parameters")

	// ErrNumericalInstability indicates a singular or ill-conditioned mass
	// matrix, or a derivative that is no longer finite.
	ErrNumericalInstability = errors.New("dynamo: numerical instability")

	// ErrIntegrationFailure indicates the adaptive solver could not meet its
	// tolerances within the step budget.
	ErrIntegrationFailure = errors.New("dynamo: integration failure")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrDimensionMismatch indicates a state vector of the wrong length.
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
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
