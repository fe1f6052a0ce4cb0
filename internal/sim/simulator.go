package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/integrators"
	"github.com/san-kum/tripend/internal/logging"
	"github.com/san-kum/tripend/internal/physics"
)

type Simulator struct {
	integrator dynamo.AdaptiveIntegrator
	cfg        dynamo.Config
	log        *logging.Logger
	metrics    []Metric
}

func New(integrator dynamo.AdaptiveIntegrator, cfg dynamo.Config) *Simulator {
	return &Simulator{
		integrator: integrator,
		cfg:        cfg,
		log:        logging.Discard(),
		metrics:    make([]Metric, 0),
	}
}

// NewDefault uses the Dormand-Prince pair at atol = rtol = 1e-8 and 50
// samples per simulated second.
func NewDefault() *Simulator {
	return New(integrators.NewRK45(), dynamo.DefaultConfig())
}

// Run integrates p with a fresh default simulator.
func Run(ctx context.Context, p physics.Params) (*Trajectory, error) {
	return NewDefault().Run(ctx, p)
}

func (s *Simulator) SetLogger(l *logging.Logger) { s.log = l }
func (s *Simulator) AddMetric(m Metric)          { s.metrics = append(s.metrics, m) }

func (s *Simulator) validateConfig() error {
	if s.cfg.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %f", s.cfg.SampleRate)
	}
	return nil
}

// Run integrates the chain from rest at p's angles to p.SimTime and
// resamples the solution on the uniform output grid. Any failure after
// integration has started is reported as a *RunError.
func (s *Simulator) Run(ctx context.Context, p physics.Params) (*Trajectory, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.validateConfig(); err != nil {
		return nil, err
	}

	dyn := physics.NewTriplePendulum(p)
	solver := integrators.NewSolver(s.integrator, s.cfg)
	times := SampleTimes(p.SimTime, s.cfg.SampleRate)

	s.log.Debug(ctx, "run started", "sim_time", p.SimTime, "samples", len(times))
	start := time.Now()

	sol, err := solver.Solve(ctx, dyn, p.InitialState(), 0, p.SimTime)
	if err != nil {
		if sol == nil {
			return nil, err
		}
		reached := sol.Reached()
		// Grid points at or before the furthest accepted time.
		n := sort.Search(len(times), func(i int) bool { return times[i] > reached })
		if len(sol.Times) == 0 {
			n = 0
		}
		partial := resample(p, sol, times[:n])

		s.log.Warn(ctx, "run stopped early", "reached", reached, "samples", n, "error", err.Error())
		return nil, &RunError{Reached: reached, Partial: partial, Wrapped: err}
	}

	tr := resample(p, sol, times)

	for _, m := range s.metrics {
		m.Reset()
	}
	for i, x := range tr.States {
		for _, m := range s.metrics {
			m.Observe(x, p, tr.Times[i])
		}
	}
	for _, m := range s.metrics {
		tr.Metrics[m.Name()] = m.Value()
	}

	s.log.Debug(ctx, "run finished",
		"steps", sol.Stats.Steps,
		"rejected", sol.Stats.Rejected,
		"evaluations", sol.Stats.Evaluations,
		"elapsed", time.Since(start),
	)

	return tr, nil
}

func resample(p physics.Params, sol *integrators.Solution, times []float64) *Trajectory {
	return &Trajectory{
		Params:  p,
		Times:   times,
		States:  sol.Sample(times),
		Stats:   sol.Stats,
		Metrics: make(map[string]float64),
	}
}
