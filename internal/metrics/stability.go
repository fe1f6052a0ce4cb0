package metrics

import (
	"math"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/physics"
)

// MaxAngle is the largest absolute joint angle seen, in radians.
type MaxAngle struct {
	name string
	max  float64
}

func NewMaxAngle() *MaxAngle {
	return &MaxAngle{name: "max_angle"}
}

func (m *MaxAngle) Name() string { return m.name }

func (m *MaxAngle) Observe(x dynamo.State, p physics.Params, t float64) {
	for i := 0; i < len(x); i += 2 {
		m.max = math.Max(m.max, math.Abs(x[i]))
	}
}

func (m *MaxAngle) Value() float64 { return m.max }

func (m *MaxAngle) Reset() { m.max = 0 }

// Stability is the fraction of samples in which every joint angle stays
// within threshold radians of the hanging position. A flipped link counts
// as a violation.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, p physics.Params, t float64) {
	s.samples++
	for i := 0; i < len(x); i += 2 {
		if math.Abs(x[i]) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
