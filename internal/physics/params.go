package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

const (
	DefaultMass    = 1.0
	DefaultLength  = 1.0
	DefaultDamping = 0.01
	DefaultGravity = 9.8
	DefaultSimTime = 30.0
)

// DefaultTheta is the initial displacement of every joint, 35 degrees.
var DefaultTheta = 35 * math.Pi / 180

// Params holds the physical description of one simulation run. It is a
// value type; a run never modifies the Params it was given.
type Params struct {
	M1, M2, M3             float64
	L1, L2, L3             float64
	Damping                float64
	Gravity                float64
	Theta1, Theta2, Theta3 float64
	SimTime                float64
}

func DefaultParams() Params {
	return Params{
		M1: DefaultMass, M2: DefaultMass, M3: DefaultMass,
		L1: DefaultLength, L2: DefaultLength, L3: DefaultLength,
		Damping: DefaultDamping,
		Gravity: DefaultGravity,
		Theta1:  DefaultTheta, Theta2: DefaultTheta, Theta3: DefaultTheta,
		SimTime: DefaultSimTime,
	}
}

// NewParams builds and validates a parameter set.
func NewParams(masses, lengths [3]float64, damping, gravity float64, thetas [3]float64, simTime float64) (Params, error) {
	p := Params{
		M1: masses[0], M2: masses[1], M3: masses[2],
		L1: lengths[0], L2: lengths[1], L3: lengths[2],
		Damping: damping,
		Gravity: gravity,
		Theta1:  thetas[0], Theta2: thetas[1], Theta3: thetas[2],
		SimTime: simTime,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate reports the first out-of-range field wrapped in
// dynamo.ErrInvalidParameters.
func (p Params) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"m1", p.M1}, {"m2", p.M2}, {"m3", p.M3},
		{"L1", p.L1}, {"L2", p.L2}, {"L3", p.L3},
		{"g", p.Gravity},
		{"sim_time", p.SimTime},
	}
	for _, f := range positive {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be positive and finite, got %v", dynamo.ErrInvalidParameters, f.name, f.value)
		}
	}
	if !(p.Damping >= 0) || math.IsInf(p.Damping, 0) {
		return fmt.Errorf("%w: b must be non-negative and finite, got %v", dynamo.ErrInvalidParameters, p.Damping)
	}
	for i, th := range []float64{p.Theta1, p.Theta2, p.Theta3} {
		if math.IsNaN(th) || math.IsInf(th, 0) {
			return fmt.Errorf("%w: theta%d must be finite, got %v", dynamo.ErrInvalidParameters, i+1, th)
		}
	}
	return nil
}

// InitialState returns the t=0 state: the configured angles at rest.
func (p Params) InitialState() dynamo.State {
	return dynamo.State{p.Theta1, 0, p.Theta2, 0, p.Theta3, 0}
}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"m1": p.M1, "m2": p.M2, "m3": p.M3,
		"L1": p.L1, "L2": p.L2, "L3": p.L3,
		"b":        p.Damping,
		"g":        p.Gravity,
		"theta1":   p.Theta1,
		"theta2":   p.Theta2,
		"theta3":   p.Theta3,
		"sim_time": p.SimTime,
	}
}
