package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

const (
	StateDim = 6

	// MaxConditionNumber bounds the mass matrix condition number accepted
	// by Derive.
	MaxConditionNumber = 1e12
)

// TriplePendulum is a chain of three point masses on massless rods.
// State: [theta1, omega1, theta2, omega2, theta3, omega3]
type TriplePendulum struct {
	p Params
}

func NewTriplePendulum(p Params) *TriplePendulum {
	return &TriplePendulum{p: p}
}

func (tp *TriplePendulum) StateDim() int  { return StateDim }
func (tp *TriplePendulum) Params() Params { return tp.p }

// Derive returns (omega1, alpha1, omega2, alpha2, omega3, alpha3). The system
// is time-invariant; t is accepted for integrator compatibility.
func (tp *TriplePendulum) Derive(x dynamo.State, _ float64) (dynamo.State, error) {
	if len(x) != StateDim {
		return nil, fmt.Errorf("%w: got %d components, want %d", dynamo.ErrDimensionMismatch, len(x), StateDim)
	}
	if !x.IsValid() {
		return nil, fmt.Errorf("%w: non-finite state %v", dynamo.ErrNumericalInstability, x)
	}

	th1, w1, th2, w2, th3, w3 := x[0], x[1], x[2], x[3], x[4], x[5]
	m1, m2, m3 := tp.p.M1, tp.p.M2, tp.p.M3
	l1, l2, l3 := tp.p.L1, tp.p.L2, tp.p.L3
	g, b := tp.p.Gravity, tp.p.Damping

	m123 := m1 + m2 + m3
	m23 := m2 + m3

	s12, c12 := math.Sincos(th1 - th2)
	s13, c13 := math.Sincos(th1 - th3)
	s23, c23 := math.Sincos(th2 - th3)

	mass := mat.NewDense(3, 3, []float64{
		m123 * l1 * l1, m23 * l1 * l2 * c12, m3 * l1 * l3 * c13,
		m23 * l1 * l2 * c12, m23 * l2 * l2, m3 * l2 * l3 * c23,
		m3 * l1 * l3 * c13, m3 * l2 * l3 * c23, m3 * l3 * l3,
	})

	// Gravity and damping.
	f1 := -m123*g*l1*math.Sin(th1) - b*w1
	f2 := -m23*g*l2*math.Sin(th2) - b*w2
	f3 := -m3*g*l3*math.Sin(th3) - b*w3

	// Velocity-squared coupling moved to the right-hand side. Signs follow
	// the cos(thi-thj) coupling of the mass matrix, so the undamped flow
	// conserves MechanicalEnergy.
	cor1 := -m23*l1*l2*w2*w2*s12 - m3*l1*l3*w3*w3*s13
	cor2 := m23*l1*l2*w1*w1*s12 - m3*l2*l3*w3*w3*s23
	cor3 := m3*l1*l3*w1*w1*s13 + m3*l2*l3*w2*w2*s23

	rhs := mat.NewVecDense(3, []float64{f1 + cor1, f2 + cor2, f3 + cor3})

	alpha, err := solve(mass, rhs)
	if err != nil {
		return nil, err
	}

	return dynamo.State{w1, alpha[0], w2, alpha[1], w3, alpha[2]}, nil
}

// solve computes a from m·a = rhs by LU factorization with partial pivoting.
func solve(m *mat.Dense, rhs *mat.VecDense) ([]float64, error) {
	var lu mat.LU
	lu.Factorize(m)

	cond := lu.Cond()
	if math.IsNaN(cond) || cond > MaxConditionNumber {
		return nil, fmt.Errorf("%w: mass matrix condition number %g", dynamo.ErrNumericalInstability, cond)
	}

	var a mat.VecDense
	if err := lu.SolveVecTo(&a, false, rhs); err != nil {
		return nil, fmt.Errorf("%w: %v", dynamo.ErrNumericalInstability, err)
	}

	out := []float64{a.AtVec(0), a.AtVec(1), a.AtVec(2)}
	if !dynamo.State(out).IsValid() {
		return nil, fmt.Errorf("%w: non-finite acceleration %v", dynamo.ErrNumericalInstability, out)
	}
	return out, nil
}
