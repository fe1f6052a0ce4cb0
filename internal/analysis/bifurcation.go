package analysis

import (
	"context"
	"strings"

	"github.com/san-kum/tripend/internal/physics"
	"github.com/san-kum/tripend/internal/sim"
)

// BifurcationPoint holds the section values recorded for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
	Run    *sim.Trajectory
}

// Sweep describes a one-parameter family of runs.
type Sweep struct {
	Base  physics.Params
	Set   func(p *physics.Params, v float64)
	Min   float64
	Max   float64
	Steps int
	// Transient samples are discarded before recording.
	Transient float64
	// Values of component Record are taken each time theta1 crosses zero
	// upward.
	Record int
}

// Params lists the parameter sets of the sweep in order.
func (s Sweep) Params() []physics.Params {
	steps := s.Steps
	if steps <= 1 {
		steps = 2
	}
	step := (s.Max - s.Min) / float64(steps-1)

	out := make([]physics.Params, steps)
	for i := range out {
		p := s.Base
		s.Set(&p, s.Min+float64(i)*step)
		out[i] = p
	}
	return out
}

// BifurcationDiagram runs every parameter value of s on ens and collects
// the section values after the transient.
func BifurcationDiagram(ctx context.Context, ens *sim.Ensemble, s Sweep) ([]BifurcationPoint, error) {
	params := s.Params()
	runs, err := ens.Run(ctx, params)
	if err != nil {
		return nil, err
	}

	steps := len(params)
	step := (s.Max - s.Min) / float64(steps-1)
	results := make([]BifurcationPoint, 0, steps)

	for i, tr := range runs {
		start := 0
		for start < tr.Len() && tr.Times[start] < s.Transient {
			start++
		}

		section := NewPoincareSection(tr.States[start:], 0, 0, s.Record, s.Record)
		values := make([]float64, 0)
		if section != nil {
			for _, pt := range section.Points {
				values = append(values, pt.X)
			}
		}

		results = append(results, BifurcationPoint{
			Param:  s.Min + float64(i)*step,
			Values: values,
			Run:    tr,
		})
	}
	return results, nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
