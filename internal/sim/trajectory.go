package sim

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/integrators"
	"github.com/san-kum/tripend/internal/physics"
)

// Trajectory is the uniformly sampled record of one run. It is never
// modified after Run returns; a new run produces a new Trajectory.
type Trajectory struct {
	Params  physics.Params
	Times   []float64
	States  []dynamo.State
	Stats   integrators.Stats
	Metrics map[string]float64
}

// SampleTimes returns floor(simTime*rate) evenly spaced times covering
// [0, simTime] inclusive, never fewer than two.
func SampleTimes(simTime, rate float64) []float64 {
	n := int(math.Floor(simTime * rate))
	if n < 2 {
		n = 2
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = simTime * float64(i) / float64(n-1)
	}
	return times
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

// Rate is the number of samples per simulated second implied by the grid
// spacing.
func (tr *Trajectory) Rate() float64 {
	n := len(tr.Times)
	if n < 2 {
		return 0
	}
	return float64(n-1) / (tr.Times[n-1] - tr.Times[0])
}

// Frame derives positions and energies for sample i.
func (tr *Trajectory) Frame(i int) physics.Frame {
	return physics.NewFrame(tr.Times[i], tr.States[i], tr.Params)
}

// Energy returns kinetic, potential and total energy for the first n
// samples. n is clamped to the trajectory length.
func (tr *Trajectory) Energy(n int) (kinetic, potential, total []float64) {
	if n > len(tr.States) {
		n = len(tr.States)
	}
	if n < 0 {
		n = 0
	}
	return physics.Energy(tr.States[:n], tr.Params)
}

// Series extracts one state component over the whole trajectory, e.g.
// Series(1) for omega1.
func (tr *Trajectory) Series(component int) []float64 {
	out := make([]float64, len(tr.States))
	for i, x := range tr.States {
		out[i] = x[component]
	}
	return out
}

// MaxEnergyDrift is the largest relative deviation of mechanical energy
// from its initial value. Zero initial energy yields the absolute drift.
func (tr *Trajectory) MaxEnergyDrift() float64 {
	if len(tr.States) == 0 {
		return 0
	}
	e0 := physics.MechanicalEnergy(tr.States[0], tr.Params)
	maxDrift := 0.0
	for _, x := range tr.States[1:] {
		d := math.Abs(physics.MechanicalEnergy(x, tr.Params) - e0)
		if e0 != 0 {
			d /= math.Abs(e0)
		}
		maxDrift = math.Max(maxDrift, d)
	}
	return maxDrift
}
