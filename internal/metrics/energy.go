package metrics

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/physics"
)

// Energy reports the mean total energy per sample, using the additive
// kinetic energy of physics.Energy.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, p physics.Params, t float64) {
	_, _, total := physics.Energy([]dynamo.State{x}, p)
	e.totalEnergy += total[0]
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift tracks the largest relative departure of the exact mechanical
// energy from its first observed value. With zero damping it measures
// integration error.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, p physics.Params, t float64) {
	energy := physics.MechanicalEnergy(x, p)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	drift := math.Abs(energy - e.initialEnergy)
	if e.initialEnergy != 0 {
		drift /= math.Abs(e.initialEnergy)
	}
	e.maxDrift = math.Max(e.maxDrift, drift)
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Dissipation integrates the damping power b*(w1^2+w2^2+w3^2) over the
// observed samples with the trapezoidal rule.
type Dissipation struct {
	name      string
	sum       float64
	lastPower float64
	lastT     float64
	samples   int
}

func NewDissipation() *Dissipation {
	return &Dissipation{name: "dissipated"}
}

func (d *Dissipation) Name() string { return d.name }

func (d *Dissipation) Observe(x dynamo.State, p physics.Params, t float64) {
	power := p.Damping * (x[1]*x[1] + x[3]*x[3] + x[5]*x[5])
	if d.samples > 0 {
		d.sum += 0.5 * (power + d.lastPower) * (t - d.lastT)
	}
	d.lastPower = power
	d.lastT = t
	d.samples++
}

func (d *Dissipation) Value() float64 {
	return d.sum
}

func (d *Dissipation) Reset() {
	d.sum = 0
	d.lastPower = 0
	d.lastT = 0
	d.samples = 0
}
