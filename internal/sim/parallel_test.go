package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/metrics"
	"github.com/san-kum/tripend/internal/physics"
)

func sweepParams(n int) []physics.Params {
	params := make([]physics.Params, n)
	for i := range params {
		p := physics.DefaultParams()
		p.SimTime = 1
		p.Theta1 = 0.1 * float64(i+1)
		params[i] = p
	}
	return params
}

func TestEnsembleMatchesSequential(t *testing.T) {
	params := sweepParams(4)

	newSim := func() *Simulator {
		s := NewDefault()
		s.AddMetric(metrics.NewMaxAngle())
		return s
	}
	results, err := NewEnsemble(newSim, 2).Run(context.Background(), params)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != len(params) {
		t.Fatalf("expected %d results, got %d", len(params), len(results))
	}

	for i, p := range params {
		want, err := Run(context.Background(), p)
		if err != nil {
			t.Fatalf("sequential run %d failed: %v", i, err)
		}
		got := results[i]
		if got.Params != p {
			t.Errorf("result %d out of order", i)
		}
		last := got.Len() - 1
		for j := range want.States[last] {
			if got.States[last][j] != want.States[last][j] {
				t.Errorf("result %d component %d: expected %g, got %g", i, j, want.States[last][j], got.States[last][j])
			}
		}
		if got.Metrics["max_angle"] < p.Theta1 {
			t.Errorf("result %d: max angle %g below initial %g", i, got.Metrics["max_angle"], p.Theta1)
		}
	}
}

func TestEnsembleFailure(t *testing.T) {
	params := sweepParams(3)
	params[1].M2 = 0

	_, err := NewEnsemble(NewDefault, 0).Run(context.Background(), params)
	if !errors.Is(err, dynamo.ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
}
