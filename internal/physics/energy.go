package physics

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Energy returns per-sample kinetic, potential and total energy.
//
// Kinetic energy sums the squared joint speed contributions down the chain
// (L_i*omega_i)^2 for each mass, without the cross terms of the true vector
// velocity. Potential energy is measured from the hanging configuration.
func Energy(states []dynamo.State, p Params) (kinetic, potential, total []float64) {
	kinetic = make([]float64, len(states))
	potential = make([]float64, len(states))
	total = make([]float64, len(states))

	for i, x := range states {
		kinetic[i] = kineticEnergy(x, p)
		potential[i] = potentialEnergy(x, p)
		total[i] = kinetic[i] + potential[i]
	}
	return kinetic, potential, total
}

func kineticEnergy(x dynamo.State, p Params) float64 {
	v1 := p.L1 * x[1]
	v2 := p.L2 * x[3]
	v3 := p.L3 * x[5]
	v1sq, v2sq, v3sq := v1*v1, v2*v2, v3*v3

	return 0.5 * (p.M1*v1sq +
		p.M2*(v1sq+v2sq) +
		p.M3*(v1sq+v2sq+v3sq))
}

func potentialEnergy(x dynamo.State, p Params) float64 {
	h1 := p.L1 * (1 - math.Cos(x[0]))
	h2 := p.L2 * (1 - math.Cos(x[2]))
	h3 := p.L3 * (1 - math.Cos(x[4]))

	return p.Gravity * (p.M1*h1 +
		p.M2*(h1+h2) +
		p.M3*(h1+h2+h3))
}

// MechanicalEnergy is the exact Hamiltonian of the chain: kinetic energy
// from the composed vector velocity of each mass plus the same potential
// as Energy. It is conserved by the undamped equations of motion.
func MechanicalEnergy(x dynamo.State, p Params) float64 {
	th1, w1, th2, w2, th3, w3 := x[0], x[1], x[2], x[3], x[4], x[5]

	vx1 := p.L1 * w1 * math.Cos(th1)
	vy1 := p.L1 * w1 * math.Sin(th1)
	vx2 := vx1 + p.L2*w2*math.Cos(th2)
	vy2 := vy1 + p.L2*w2*math.Sin(th2)
	vx3 := vx2 + p.L3*w3*math.Cos(th3)
	vy3 := vy2 + p.L3*w3*math.Sin(th3)

	ke := 0.5 * (p.M1*(vx1*vx1+vy1*vy1) +
		p.M2*(vx2*vx2+vy2*vy2) +
		p.M3*(vx3*vx3+vy3*vy3))

	return ke + potentialEnergy(x, p)
}

// Frame is everything a renderer needs to draw one state.
type Frame struct {
	Time                   float64
	X1, Y1, X2, Y2, X3, Y3 float64
	Kinetic                float64
	Potential              float64
	Total                  float64
}

func NewFrame(t float64, x dynamo.State, p Params) Frame {
	f := Frame{Time: t}
	f.X1, f.Y1, f.X2, f.Y2, f.X3, f.Y3 = Positions(x, p)
	f.Kinetic = kineticEnergy(x, p)
	f.Potential = potentialEnergy(x, p)
	f.Total = f.Kinetic + f.Potential
	return f
}
