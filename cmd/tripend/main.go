package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/tripend/internal/config"
	"github.com/san-kum/tripend/internal/integrators"
	"github.com/san-kum/tripend/internal/logging"
	"github.com/san-kum/tripend/internal/metrics"
	"github.com/san-kum/tripend/internal/sim"
	"github.com/san-kum/tripend/internal/viz"
)

var (
	configFile string
	preset     string
	verbose    bool

	masses    []float64
	lengths   []float64
	anglesDeg []float64
	damping   float64
	gravity   float64
	simTime   float64
	atol      float64
	rtol      float64
	maxSteps  int
	randomize bool
	seed      int64

	log *logging.Logger
)

// main registers the commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "tripend",
		Short:         "triple pendulum simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log = logging.New(os.Stderr, slog.LevelDebug)
			} else {
				log = logging.NewLogger()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to playback of the default configuration
			return playSimulation(cmd, args)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addParamFlags(rootCmd)
	addThemeFlag(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().BoolVar(&showChart, "chart", false, "print energy and velocity charts")
	runCmd.Flags().BoolVar(&showLyapunov, "lyapunov", false, "estimate the largest Lyapunov exponent")
	runCmd.Flags().BoolVar(&writeCSV, "csv", false, "write samples as CSV to stdout")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "run a simulation and play it back in the terminal",
		Args:  cobra.NoArgs,
		RunE:  playSimulation,
	}
	addParamFlags(playCmd)
	addThemeFlag(playCmd)

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "phase portrait and Poincaré section of a run",
		Args:  cobra.NoArgs,
		RunE:  phasePlot,
	}
	addParamFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&joint, "joint", 1, "joint for the phase portrait (1-3)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one parameter across concurrent runs",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "theta1", "parameter to sweep (theta1-3 in degrees, m1-3, L1-3, damping, gravity)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 10, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 90, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 9, "number of values")
	sweepCmd.Flags().IntVar(&sweepJobs, "jobs", 0, "concurrent runs (0 = unlimited)")
	sweepCmd.Flags().Float64Var(&sweepTransient, "transient", 5, "seconds discarded before recording crossings")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	rootCmd.AddCommand(runCmd, playCmd, phaseCmd, sweepCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64SliceVar(&masses, "masses", nil, "masses m1,m2,m3 in kg")
	f.Float64SliceVar(&lengths, "lengths", nil, "lengths L1,L2,L3 in m")
	f.Float64SliceVar(&anglesDeg, "angles", nil, "initial angles in degrees from vertical")
	f.Float64Var(&damping, "damping", config.DefaultDamping, "viscous damping b in Ns/m")
	f.Float64Var(&gravity, "gravity", config.DefaultGravity, "gravitational acceleration in m/s^2")
	f.Float64Var(&simTime, "time", config.DefaultSimTime, "simulated seconds")
	f.Float64Var(&atol, "atol", config.DefaultTolerance, "absolute tolerance")
	f.Float64Var(&rtol, "rtol", config.DefaultTolerance, "relative tolerance")
	f.IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "step budget")
	f.BoolVar(&randomize, "random", false, "randomize the physical parameters")
	f.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for --random")
}

func addThemeFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&themeName, "theme", viz.Themes[0].Name, fmt.Sprintf("playback theme %v", viz.ThemeNames()))
}

// loadConfig layers defaults, preset, config file, randomization and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if randomize {
		cfg.Randomize(seed)
		log.Info(cmd.Context(), "randomized parameters", "seed", seed)
	}

	flags := cmd.Flags()
	triple := func(name string, v []float64, dst *[3]float64) error {
		if !flags.Changed(name) {
			return nil
		}
		if len(v) != 3 {
			return fmt.Errorf("--%s needs 3 values, got %d", name, len(v))
		}
		copy(dst[:], v)
		return nil
	}
	if err := triple("masses", masses, &cfg.Masses); err != nil {
		return nil, err
	}
	if err := triple("lengths", lengths, &cfg.Lengths); err != nil {
		return nil, err
	}
	if err := triple("angles", anglesDeg, &cfg.AnglesDeg); err != nil {
		return nil, err
	}
	if flags.Changed("damping") {
		cfg.Damping = damping
	}
	if flags.Changed("gravity") {
		cfg.Gravity = gravity
	}
	if flags.Changed("time") {
		cfg.SimTime = simTime
	}
	if flags.Changed("atol") {
		cfg.Solver.Atol = atol
	}
	if flags.Changed("rtol") {
		cfg.Solver.Rtol = rtol
	}
	if flags.Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) *sim.Simulator {
	s := sim.New(integrators.NewRK45(), cfg.GetSolverConfig())
	s.SetLogger(log)
	s.AddMetric(metrics.NewEnergy())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewMaxAngle())
	s.AddMetric(metrics.NewDissipation())
	s.AddMetric(metrics.NewStability(math.Pi / 2))
	return s
}

// simulate resolves the configuration and runs it. A *sim.RunError is
// returned together with its partial trajectory.
func simulate(cmd *cobra.Command) (*config.Config, *sim.Trajectory, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	p, err := cfg.Params()
	if err != nil {
		return cfg, nil, err
	}

	log.Debug(cmd.Context(), "simulating", "sim_time", p.SimTime, "atol", cfg.Solver.Atol, "rtol", cfg.Solver.Rtol)
	start := time.Now()

	tr, err := newSimulator(cfg).Run(cmd.Context(), p)
	if err != nil {
		var runErr *sim.RunError
		if errors.As(err, &runErr) {
			log.Error(cmd.Context(), "simulation failed", err, "reached", runErr.Reached)
			return cfg, runErr.Partial, err
		}
		return cfg, nil, err
	}

	log.Info(cmd.Context(), "simulation finished", "samples", tr.Len(), "elapsed", time.Since(start))
	return cfg, tr, nil
}
