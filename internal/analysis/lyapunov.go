package analysis

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/tripend/internal/physics"
	"github.com/san-kum/tripend/internal/sim"
)

// SaturationDistance caps the separation used for the growth fit. Beyond
// it the two trajectories are no longer close and growth stops being
// exponential.
const SaturationDistance = 0.1

// LyapunovExponent estimates the largest Lyapunov exponent of p by running
// it alongside a copy with theta1 shifted by perturbation and fitting the
// growth rate of ln|dx(t)| while the separation stays below
// SaturationDistance. A positive value indicates chaos.
func LyapunovExponent(ctx context.Context, newSim func() *sim.Simulator, p physics.Params, perturbation float64) (float64, error) {
	if !(perturbation > 0) {
		return 0, fmt.Errorf("perturbation must be positive, got %g", perturbation)
	}

	shifted := p
	shifted.Theta1 += perturbation

	runs, err := sim.NewEnsemble(newSim, 2).Run(ctx, []physics.Params{p, shifted})
	if err != nil {
		return 0, err
	}
	a, b := runs[0], runs[1]

	times := make([]float64, 0, a.Len())
	logSep := make([]float64, 0, a.Len())
	for i := range a.States {
		sep := a.States[i].Sub(b.States[i]).Norm()
		if sep >= SaturationDistance {
			break
		}
		if sep > 0 {
			times = append(times, a.Times[i])
			logSep = append(logSep, math.Log(sep))
		}
	}

	if len(times) < 2 {
		return 0, nil
	}
	_, slope := stat.LinearRegression(times, logSep, nil, false)
	return slope, nil
}
