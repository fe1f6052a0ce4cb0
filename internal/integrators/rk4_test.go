package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
)

func TestRK4_ExponentialDecay(t *testing.T) {
	integrator := NewRK4()
	dyn := &exponentialDecay{rate: 1}
	x := dynamo.State{1.0}
	dt := 0.01

	for i := 0; i < 100; i++ {
		x, _ = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-9 {
		t.Errorf("expected %.10f, got %.10f", expected, x[0])
	}
}

func TestRK4_PropagatesDerivativeError(t *testing.T) {
	integrator := NewRK4()

	_, err := integrator.Step(&failingSystem{after: 0.01}, dynamo.State{1, 0}, 0, 0.1)
	if err != errBlowUp {
		t.Errorf("expected errBlowUp, got %v", err)
	}
}
