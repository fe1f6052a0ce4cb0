package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/tripend/internal/analysis"
	"github.com/san-kum/tripend/internal/config"
	"github.com/san-kum/tripend/internal/physics"
	"github.com/san-kum/tripend/internal/sim"
	"github.com/san-kum/tripend/internal/viz"
)

var (
	showChart    bool
	showLyapunov bool
	writeCSV     bool

	joint     int
	themeName string

	sweepParam     string
	sweepFrom      float64
	sweepTo        float64
	sweepSteps     int
	sweepJobs      int
	sweepTransient float64
)

func frequencies(tr *sim.Trajectory) []float64 {
	freqs := make([]float64, 3)
	for i := range freqs {
		freqs[i] = analysis.DominantFrequency(tr.Series(2*i), tr.Rate())
	}
	return freqs
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, tr, err := simulate(cmd)
	if tr == nil {
		return err
	}
	if err != nil {
		fmt.Println(viz.StatusFailed.Render(err.Error()))
	}

	if writeCSV {
		if werr := exportCSV(tr); werr != nil {
			return werr
		}
		return err
	}

	fmt.Println(viz.Summary(tr, frequencies(tr)))

	if showChart && tr.Len() > 1 {
		fmt.Println(viz.EnergyChart(tr, tr.Len()-1, 60, 10))
		fmt.Println()
		fmt.Println(viz.VelocityChart(tr, tr.Len()-1, 60, 10))
	}

	if showLyapunov && err == nil {
		lambda, lerr := analysis.LyapunovExponent(cmd.Context(), func() *sim.Simulator { return newSimulator(cfg) }, tr.Params, 1e-6)
		if lerr != nil {
			return lerr
		}
		fmt.Println(viz.Row("lyapunov", fmt.Sprintf("%.4f 1/s", lambda)))
	}
	return err
}

func exportCSV(tr *sim.Trajectory) error {
	w := csv.NewWriter(os.Stdout)
	header := []string{"t", "theta1", "omega1", "theta2", "omega2", "theta3", "omega3",
		"x1", "y1", "x2", "y2", "x3", "y3", "kinetic", "potential", "total"}
	if err := w.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i, x := range tr.States {
		f := tr.Frame(i)
		row[0] = format(f.Time)
		for j, v := range x {
			row[1+j] = format(v)
		}
		for j, v := range []float64{f.X1, f.Y1, f.X2, f.Y2, f.X3, f.Y3, f.Kinetic, f.Potential, f.Total} {
			row[7+j] = format(v)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func resolveTheme(name string) (viz.Theme, error) {
	if !slices.Contains(viz.ThemeNames(), name) {
		return viz.Theme{}, fmt.Errorf("unknown theme: %s (available: %v)", name, viz.ThemeNames())
	}
	return viz.GetTheme(name), nil
}

func playSimulation(cmd *cobra.Command, args []string) error {
	theme, err := resolveTheme(themeName)
	if err != nil {
		return err
	}

	_, tr, err := simulate(cmd)
	if tr == nil || tr.Len() == 0 {
		return err
	}

	player := viz.NewPlayer(tr).WithTheme(theme)
	var runErr *sim.RunError
	if errors.As(err, &runErr) {
		player = player.WithWarning(fmt.Sprintf("stopped at t=%.2f s", runErr.Reached))
	}

	if _, perr := tea.NewProgram(player, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); perr != nil {
		return perr
	}
	return err
}

func phasePlot(cmd *cobra.Command, args []string) error {
	if joint < 1 || joint > 3 {
		return fmt.Errorf("joint must be 1, 2 or 3, got %d", joint)
	}
	_, tr, err := simulate(cmd)
	if tr == nil {
		return err
	}

	idx := 2 * (joint - 1)
	portrait := analysis.NewPhasePortrait(tr.States, idx, idx+1)
	fmt.Println(viz.Title.Render(fmt.Sprintf("phase portrait: theta%d vs omega%d", joint, joint)))
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))

	// Section on theta1 = 0 going up, recording the chosen joint.
	section := analysis.NewPoincareSection(tr.States, 0, 0, idx, idx+1)
	fmt.Println(viz.Title.Render(fmt.Sprintf("poincaré section at theta1 = 0: theta%d vs omega%d", joint, joint)))
	fmt.Println(analysis.PoincareSectionToASCII(section, 70, 20))
	return err
}

func sweepSetter(name string) (func(p *physics.Params, v float64), error) {
	rad := math.Pi / 180
	switch strings.ToLower(name) {
	case "theta1":
		return func(p *physics.Params, v float64) { p.Theta1 = v * rad }, nil
	case "theta2":
		return func(p *physics.Params, v float64) { p.Theta2 = v * rad }, nil
	case "theta3":
		return func(p *physics.Params, v float64) { p.Theta3 = v * rad }, nil
	case "m1":
		return func(p *physics.Params, v float64) { p.M1 = v }, nil
	case "m2":
		return func(p *physics.Params, v float64) { p.M2 = v }, nil
	case "m3":
		return func(p *physics.Params, v float64) { p.M3 = v }, nil
	case "l1":
		return func(p *physics.Params, v float64) { p.L1 = v }, nil
	case "l2":
		return func(p *physics.Params, v float64) { p.L2 = v }, nil
	case "l3":
		return func(p *physics.Params, v float64) { p.L3 = v }, nil
	case "damping", "b":
		return func(p *physics.Params, v float64) { p.Damping = v }, nil
	case "gravity", "g":
		return func(p *physics.Params, v float64) { p.Gravity = v }, nil
	}
	return nil, fmt.Errorf("unknown sweep parameter: %s", name)
}

func runSweep(cmd *cobra.Command, args []string) error {
	set, err := sweepSetter(sweepParam)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	base, err := cfg.Params()
	if err != nil {
		return err
	}

	s := analysis.Sweep{
		Base:      base,
		Set:       set,
		Min:       sweepFrom,
		Max:       sweepTo,
		Steps:     sweepSteps,
		Transient: sweepTransient,
		Record:    1,
	}
	ens := sim.NewEnsemble(func() *sim.Simulator { return newSimulator(cfg) }, sweepJobs)

	log.Info(cmd.Context(), "sweep started", "param", sweepParam, "steps", sweepSteps, "jobs", sweepJobs)
	points, err := analysis.BifurcationDiagram(cmd.Context(), ens, s)
	if err != nil {
		return err
	}

	rows := make([]viz.SweepRow, len(points))
	for i, pt := range points {
		rows[i] = viz.SweepRow{
			Param:     pt.Param,
			MaxAngle:  pt.Run.Metrics["max_angle"],
			Drift:     pt.Run.Metrics["energy_drift"],
			Frequency: analysis.DominantFrequency(pt.Run.Series(0), pt.Run.Rate()),
			Crossings: len(pt.Values),
		}
	}

	fmt.Println(viz.SweepTable(sweepParam, rows))
	if plot := analysis.BifurcationToASCII(points, 70, 20); plot != "" {
		fmt.Println(viz.Title.Render("omega1 at upward theta1 = 0 crossings"))
		fmt.Println(plot)
	}
	return nil
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("presets:")
		for _, name := range config.ListPresets() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
