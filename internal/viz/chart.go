package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tripend/internal/sim"
)

// window returns the last width samples ending at frame, inclusive.
func window(series []float64, frame, width int) []float64 {
	end := min(frame+1, len(series))
	start := max(0, end-width)
	return series[start:end]
}

// EnergyChart plots kinetic, potential and total energy up to frame.
func EnergyChart(tr *sim.Trajectory, frame, width, height int) string {
	k, p, total := tr.Energy(frame + 1)
	if len(total) < 2 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{window(k, frame, width*4), window(p, frame, width*4), window(total, frame, width*4)},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue, asciigraph.White),
		asciigraph.Caption("energy J (kinetic red, potential blue, total white)"),
	)
}

// VelocityChart plots the three angular velocities up to frame.
func VelocityChart(tr *sim.Trajectory, frame, width, height int) string {
	if frame < 1 || tr.Len() < 2 {
		return ""
	}
	series := make([][]float64, 0, 3)
	for _, c := range []int{1, 3, 5} {
		series = append(series, window(tr.Series(c), frame, width*4))
	}
	return asciigraph.PlotMany(
		series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("angular velocity rad/s (w1 red, w2 green, w3 blue)"),
	)
}
