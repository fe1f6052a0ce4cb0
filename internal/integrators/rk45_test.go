package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
)

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{1.0, 0.0}
	dt := 0.01

	var err error
	for i := 0; i < 1000; i++ {
		x, err = integrator.Step(dyn, x, float64(i)*dt, dt)
		if err != nil {
			t.Fatalf("Step failed: %v", err)
		}
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
	if math.Abs(x[0]-math.Cos(10)) > 1e-9 {
		t.Errorf("expected x ~%.10f, got %.10f", math.Cos(10), x[0])
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	initialEnergy := dyn.Energy(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x, _ = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	finalEnergy := dyn.Energy(x)
	drift := math.Abs(finalEnergy-initialEnergy) / initialEnergy

	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_StepAdaptive(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}
	dx0, _ := dyn.Derive(x0, 0)

	res, newDt, err := integrator.StepAdaptive(dyn, x0, dx0, 0, 0.1, 1e-8, 1e-8)
	if err != nil {
		t.Fatalf("StepAdaptive returned error: %v", err)
	}
	if !res.X.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}

	// FSAL: the last stage is the derivative at the new point.
	want, _ := dyn.Derive(res.X, 0.1)
	if res.Deriv[0] != want[0] || res.Deriv[1] != want[1] {
		t.Errorf("expected derivative %v at new point, got %v", want, res.Deriv)
	}
}

func TestRK45_ErrorEstimateShrinksWithStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}
	dx0, _ := dyn.Derive(x0, 0)

	big, dtBig, _ := integrator.StepAdaptive(dyn, x0, dx0, 0, 1.0, 1e-8, 1e-8)
	small, dtSmall, _ := integrator.StepAdaptive(dyn, x0, dx0, 0, 0.01, 1e-8, 1e-8)

	if big.Err <= 1 {
		t.Errorf("expected a unit step to be rejected at 1e-8, err=%g", big.Err)
	}
	if small.Err >= 1 {
		t.Errorf("expected a 0.01 step to be accepted at 1e-8, err=%g", small.Err)
	}
	if dtBig >= 1.0 {
		t.Errorf("expected rejected step to shrink, got %f", dtBig)
	}
	if dtSmall <= 0.01 {
		t.Errorf("expected accepted step to grow, got %f", dtSmall)
	}
	if dtBig < 0.2 {
		t.Errorf("expected shrink limited to 0.2x, got %f", dtBig)
	}
	if dtSmall > 0.1+1e-15 {
		t.Errorf("expected growth limited to 10x, got %f", dtSmall)
	}
}

func TestRK45_PropagatesDerivativeError(t *testing.T) {
	integrator := NewRK45()
	dyn := &failingSystem{after: 0.05}
	x0 := dynamo.State{1.0, 0.0}

	_, err := integrator.Step(dyn, x0, 0, 0.1)
	if err != errBlowUp {
		t.Errorf("expected errBlowUp, got %v", err)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{1.0, 0.0}

	x4 := x0.Clone()
	x45 := x0.Clone()
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4, _ = rk4.Step(dyn, x4, float64(i)*dt, dt)
		x45, _ = rk45.Step(dyn, x45, float64(i)*dt, dt)
	}

	exact := dynamo.State{math.Cos(10), -math.Sin(10)}
	e4 := x4.Sub(exact).Norm()
	e45 := x45.Sub(exact).Norm()

	t.Logf("RK4 error: %e, RK45 error: %e", e4, e45)
	if e45 >= e4 {
		t.Errorf("expected fifth order step to beat RK4: %e vs %e", e45, e4)
	}
}
