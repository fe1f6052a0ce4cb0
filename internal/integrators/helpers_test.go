package integrators

import (
	"errors"

	"github.com/san-kum/tripend/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) StateDim() int { return 2 }

func (h *harmonicOscillator) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	return dynamo.State{x[1], -x[0]}, nil
}

func (h *harmonicOscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[0]*x[0] + x[1]*x[1])
}

type exponentialDecay struct{ rate float64 }

func (e *exponentialDecay) StateDim() int { return 1 }

func (e *exponentialDecay) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	return dynamo.State{-e.rate * x[0]}, nil
}

var errBlowUp = errors.New("blow up")

// failingSystem behaves like the oscillator until t passes after.
type failingSystem struct {
	after float64
}

func (f *failingSystem) StateDim() int { return 2 }

func (f *failingSystem) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	if t > f.after {
		return nil, errBlowUp
	}
	return dynamo.State{x[1], -x[0]}, nil
}

// blowUp is y' = y^2, whose solution 1/(1-t) has a pole at t = 1.
type blowUp struct{}

func (b *blowUp) StateDim() int { return 1 }

func (b *blowUp) Derive(x dynamo.State, t float64) (dynamo.State, error) {
	return dynamo.State{x[0] * x[0]}, nil
}
