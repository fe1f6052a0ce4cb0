package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/tripend/internal/physics"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent parameter sets concurrently. Every run gets its
// own Simulator from newSim, so metrics are never shared between goroutines.
type Ensemble struct {
	newSim func() *Simulator
	limit  int
}

// NewEnsemble limits concurrency to limit runs at a time; limit <= 0 means
// no limit.
func NewEnsemble(newSim func() *Simulator, limit int) *Ensemble {
	return &Ensemble{newSim: newSim, limit: limit}
}

// Run returns trajectories in the order of params. The first failure
// cancels the remaining runs.
func (e *Ensemble) Run(ctx context.Context, params []physics.Params) ([]*Trajectory, error) {
	results := make([]*Trajectory, len(params))

	g, ctx := errgroup.WithContext(ctx)
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}

	for i, p := range params {
		g.Go(func() error {
			tr, err := e.newSim().Run(ctx, p)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = tr
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
