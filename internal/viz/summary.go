package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/tripend/internal/sim"
)

func deg(rad float64) float64 { return rad * 180 / math.Pi }

// Summary renders the parameters, solver work and metrics of a run, plus
// one dominant frequency per joint when freqs is non-nil.
func Summary(tr *sim.Trajectory, freqs []float64) string {
	p := tr.Params
	var s strings.Builder

	s.WriteString(HeaderStyle.Render("TRIPLE PENDULUM") + "\n\n")
	s.WriteString(Row("masses", fmt.Sprintf("%.2f %.2f %.2f kg", p.M1, p.M2, p.M3)) + "\n")
	s.WriteString(Row("lengths", fmt.Sprintf("%.2f %.2f %.2f m", p.L1, p.L2, p.L3)) + "\n")
	s.WriteString(Row("angles", fmt.Sprintf("%.1f %.1f %.1f deg", deg(p.Theta1), deg(p.Theta2), deg(p.Theta3))) + "\n")
	s.WriteString(Row("damping", fmt.Sprintf("%.3f Ns/m", p.Damping)) + "\n")
	s.WriteString(Row("gravity", fmt.Sprintf("%.2f m/s²", p.Gravity)) + "\n")
	s.WriteString(Row("sim time", fmt.Sprintf("%.2f s", p.SimTime)) + "\n")

	s.WriteString("\n" + Separator(40) + "\n\n")
	s.WriteString(Row("samples", fmt.Sprintf("%d", tr.Len())) + "\n")
	s.WriteString(Row("steps", fmt.Sprintf("%d (%d rejected)", tr.Stats.Steps, tr.Stats.Rejected)) + "\n")
	s.WriteString(Row("evaluations", fmt.Sprintf("%d", tr.Stats.Evaluations)) + "\n")

	if tr.Len() > 0 {
		last := tr.Frame(tr.Len() - 1)
		first := tr.Frame(0)
		s.WriteString(Row("energy", fmt.Sprintf("%.4f → %.4f J", first.Total, last.Total)) + "\n")
	}

	names := make([]string, 0, len(tr.Metrics))
	for name := range tr.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.WriteString(Row(name, fmt.Sprintf("%.6g", tr.Metrics[name])) + "\n")
	}

	if freqs != nil {
		parts := make([]string, len(freqs))
		for i, f := range freqs {
			parts[i] = fmt.Sprintf("%.3f", f)
		}
		s.WriteString(Row("frequencies", strings.Join(parts, " ")+" Hz") + "\n")
	}

	return GlassPanel.Render(s.String())
}

// SweepRow is one line of a parameter sweep report.
type SweepRow struct {
	Param     float64
	MaxAngle  float64
	Drift     float64
	Frequency float64
	Crossings int
}

// SweepTable renders sweep rows as aligned columns.
func SweepTable(label string, rows []SweepRow) string {
	cell := lipgloss.NewStyle().Width(14)
	head := cell.Foreground(lipgloss.Color("#00ffff")).Bold(true)

	var s strings.Builder
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		head.Render(label),
		head.Render("max angle"),
		head.Render("drift"),
		head.Render("freq Hz"),
		head.Render("crossings"),
	) + "\n")

	for _, r := range rows {
		s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			cell.Render(fmt.Sprintf("%.4g", r.Param)),
			cell.Render(fmt.Sprintf("%.1f°", deg(r.MaxAngle))),
			cell.Render(fmt.Sprintf("%.2e", r.Drift)),
			cell.Render(fmt.Sprintf("%.3f", r.Frequency)),
			cell.Render(fmt.Sprintf("%d", r.Crossings)),
		) + "\n")
	}
	return s.String()
}
