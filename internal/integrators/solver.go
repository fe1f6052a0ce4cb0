package integrators

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Solver drives an adaptive integrator across a time span with error
// control on every step.
type Solver struct {
	integ dynamo.AdaptiveIntegrator
	cfg   dynamo.Config
}

func NewSolver(integ dynamo.AdaptiveIntegrator, cfg dynamo.Config) *Solver {
	return &Solver{integ: integ, cfg: cfg}
}

func (s *Solver) validateConfig(t0, t1 float64) error {
	if s.cfg.Atol <= 0 || s.cfg.Rtol <= 0 {
		return fmt.Errorf("tolerances must be positive, got atol=%g rtol=%g", s.cfg.Atol, s.cfg.Rtol)
	}
	if s.cfg.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", s.cfg.MaxSteps)
	}
	if !(t1 > t0) {
		return fmt.Errorf("time span must be increasing, got [%g, %g]", t0, t1)
	}
	return nil
}

// Solve integrates dyn from (t0, x0) to t1. On failure it returns the
// solution accepted so far together with a *dynamo.SimulationError.
func (s *Solver) Solve(ctx context.Context, dyn dynamo.System, x0 dynamo.State, t0, t1 float64) (*Solution, error) {
	if err := s.validateConfig(t0, t1); err != nil {
		return nil, err
	}

	sol := &Solution{}
	x := x0.Clone()
	t := t0

	dx, err := dyn.Derive(x, t)
	sol.Stats.Evaluations++
	if err != nil {
		return sol, &dynamo.SimulationError{Step: 0, Time: t, State: x, Wrapped: err}
	}
	sol.append(t, x, dx)

	dt := s.cfg.FirstStep
	if dt <= 0 {
		dt, err = s.initialStep(dyn, x, dx, t, t1-t0)
		sol.Stats.Evaluations++
		if err != nil {
			return sol, &dynamo.SimulationError{Step: 0, Time: t, State: x, Wrapped: err}
		}
	}

	maxDt := s.cfg.MaxDt
	if maxDt <= 0 {
		maxDt = math.Inf(1)
	}

	for t < t1 {
		select {
		case <-ctx.Done():
			return sol, &dynamo.SimulationError{
				Step: sol.Stats.Steps, Time: t, State: x,
				Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		if sol.Stats.Steps >= s.cfg.MaxSteps {
			return sol, &dynamo.SimulationError{
				Step: sol.Stats.Steps, Time: t, State: x,
				Wrapped: fmt.Errorf("%w: step budget of %d exhausted", dynamo.ErrIntegrationFailure, s.cfg.MaxSteps),
			}
		}

		minDt := 10 * (math.Nextafter(t, math.Inf(1)) - t)
		dt = math.Min(math.Max(dt, minDt), maxDt)

		var res dynamo.StepResult
		rejected := false
		for {
			if dt < minDt {
				return sol, &dynamo.SimulationError{
					Step: sol.Stats.Steps, Time: t, State: x,
					Wrapped: fmt.Errorf("%w: step size %g below minimum %g", dynamo.ErrIntegrationFailure, dt, minDt),
				}
			}

			tNew := t + dt
			if tNew > t1 {
				tNew = t1
			}
			h := tNew - t

			var next float64
			res, next, err = s.integ.StepAdaptive(dyn, x, dx, t, h, s.cfg.Atol, s.cfg.Rtol)
			sol.Stats.Evaluations += 6
			if err != nil {
				return sol, &dynamo.SimulationError{Step: sol.Stats.Steps, Time: t, State: x, Wrapped: err}
			}

			if res.Err <= 1 && !math.IsNaN(res.Err) {
				if rejected {
					next = math.Min(next, h)
				}
				t = tNew
				sol.Stats.LastDt = h
				dt = next
				break
			}

			if math.IsNaN(res.Err) {
				next = h * 0.2
			}
			dt = next
			rejected = true
			sol.Stats.Rejected++
		}

		x, dx = res.X, res.Deriv
		sol.Stats.Steps++
		sol.append(t, x, dx)
	}

	return sol, nil
}

// initialStep estimates a first step size from the scaled norms of the state
// and its derivative (Hairer, Norsett & Wanner, II.4).
func (s *Solver) initialStep(dyn dynamo.System, x, dx dynamo.State, t, span float64) (float64, error) {
	n := len(x)
	scale := make([]float64, n)
	for i := range x {
		scale[i] = s.cfg.Atol + math.Abs(x[i])*s.cfg.Rtol
	}

	d0 := rmsScaled(x, scale)
	d1 := rmsScaled(dx, scale)

	h0 := 1e-6
	if d0 >= 1e-5 && d1 >= 1e-5 {
		h0 = 0.01 * d0 / d1
	}
	h0 = math.Min(h0, span)

	x1 := make(dynamo.State, n)
	for i := range x {
		x1[i] = x[i] + h0*dx[i]
	}
	dx1, err := dyn.Derive(x1, t+h0)
	if err != nil {
		return 0, err
	}

	diff := make(dynamo.State, n)
	for i := range dx {
		diff[i] = dx1[i] - dx[i]
	}
	d2 := rmsScaled(diff, scale) / h0

	var h1 float64
	if d1 <= 1e-15 && d2 <= 1e-15 {
		h1 = math.Max(1e-6, h0*1e-3)
	} else {
		h1 = math.Pow(0.01/math.Max(d1, d2), 1/float64(s.integ.Order()+1))
	}

	return math.Min(math.Min(100*h0, h1), span), nil
}

func rmsScaled(v dynamo.State, scale []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for i := range v {
		e := v[i] / scale[i]
		sum += e * e
	}
	return math.Sqrt(sum / float64(len(v)))
}
