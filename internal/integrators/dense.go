package integrators

import (
	"sort"

	"github.com/san-kum/tripend/internal/dynamo"
)

// Stats counts the work done by one Solve call.
type Stats struct {
	Steps       int
	Rejected    int
	Evaluations int
	LastDt      float64
}

// Solution is the continuous output of an adaptive run: the accepted step
// points with their derivatives, interpolated by cubic Hermite polynomials.
type Solution struct {
	Times  []float64
	States []dynamo.State
	Derivs []dynamo.State
	Stats  Stats
}

func (s *Solution) append(t float64, x, dx dynamo.State) {
	s.Times = append(s.Times, t)
	s.States = append(s.States, x)
	s.Derivs = append(s.Derivs, dx)
}

// Reached is the furthest accepted time.
func (s *Solution) Reached() float64 {
	if len(s.Times) == 0 {
		return 0
	}
	return s.Times[len(s.Times)-1]
}

// At evaluates the interpolant at t. Times outside the accepted range are
// clamped to its ends.
func (s *Solution) At(t float64) dynamo.State {
	n := len(s.Times)
	if n == 0 {
		return nil
	}
	if t <= s.Times[0] {
		return s.States[0].Clone()
	}
	if t >= s.Times[n-1] {
		return s.States[n-1].Clone()
	}

	// First index with Times[i] >= t; the interval is [i-1, i].
	i := sort.SearchFloat64s(s.Times, t)
	if s.Times[i] == t {
		return s.States[i].Clone()
	}

	t0, t1 := s.Times[i-1], s.Times[i]
	x0, x1 := s.States[i-1], s.States[i]
	f0, f1 := s.Derivs[i-1], s.Derivs[i]

	h := t1 - t0
	u := (t - t0) / h
	u2 := u * u
	u3 := u2 * u

	h00 := 2*u3 - 3*u2 + 1
	h10 := u3 - 2*u2 + u
	h01 := -2*u3 + 3*u2
	h11 := u3 - u2

	out := make(dynamo.State, len(x0))
	for k := range out {
		out[k] = h00*x0[k] + h10*h*f0[k] + h01*x1[k] + h11*h*f1[k]
	}
	return out
}

// Sample evaluates the interpolant at each of times.
func (s *Solution) Sample(times []float64) []dynamo.State {
	out := make([]dynamo.State, len(times))
	for i, t := range times {
		out[i] = s.At(t)
	}
	return out
}
