package sim

import (
	"fmt"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/physics"
)

// Metric accumulates a scalar over the samples of a trajectory.
type Metric interface {
	Name() string
	Observe(x dynamo.State, p physics.Params, t float64)
	Value() float64
	Reset()
}

// RunError is returned by Run when integration stops before SimTime.
// Partial holds the samples up to Reached so a caller may still show them.
type RunError struct {
	Reached float64
	Partial *Trajectory
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run stopped at t=%.4f: %v", e.Reached, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
