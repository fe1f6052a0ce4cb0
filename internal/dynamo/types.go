package dynamo

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is a time-invariant or time-varying first-order ODE.
type System interface {
	Derive(x State, t float64) (State, error)
	StateDim() int
}

type Integrator interface {
	Step(dyn System, x State, t, dt float64) (State, error)
}

// StepResult is one trial step of an embedded pair. Err is the RMS norm of
// the local error scaled by the tolerances; the step is acceptable when it
// does not exceed 1.
type StepResult struct {
	X     State
	Deriv State
	Err   float64
}

// AdaptiveIntegrator is an embedded pair. StepAdaptive takes dx = f(x, t)
// from the caller so the last stage of an accepted step can be reused.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x, dx State, t, dt, atol, rtol float64) (StepResult, float64, error)
	Order() int
}

type Config struct {
	Atol       float64
	Rtol       float64
	FirstStep  float64
	MaxDt      float64
	MaxSteps   int
	SampleRate float64
}

func DefaultConfig() Config {
	return Config{
		Atol:       1e-8,
		Rtol:       1e-8,
		MaxDt:      math.Inf(1),
		MaxSteps:   500000,
		SampleRate: 50,
	}
}
