package config

import (
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/tripend/internal/dynamo"
	"github.com/san-kum/tripend/internal/physics"
)

const (
	DefaultMass      = physics.DefaultMass
	DefaultLength    = physics.DefaultLength
	DefaultDamping   = physics.DefaultDamping
	DefaultGravity   = physics.DefaultGravity
	DefaultAngleDeg  = 35.0
	DefaultSimTime   = physics.DefaultSimTime
	DefaultTolerance = 1e-8
	DefaultMaxSteps  = 500000
)

// Config is the user-facing description of a run. Angles are in degrees;
// Params converts them for the physics core.
type Config struct {
	Masses    [3]float64   `yaml:"masses"`
	Lengths   [3]float64   `yaml:"lengths"`
	Damping   float64      `yaml:"damping"`
	Gravity   float64      `yaml:"gravity"`
	AnglesDeg [3]float64   `yaml:"angles_deg"`
	SimTime   float64      `yaml:"sim_time"`
	Solver    SolverConfig `yaml:"solver"`
}

type SolverConfig struct {
	Atol     float64 `yaml:"atol"`
	Rtol     float64 `yaml:"rtol"`
	MaxSteps int     `yaml:"max_steps"`
}

func DefaultConfig() *Config {
	return &Config{
		Masses:    [3]float64{DefaultMass, DefaultMass, DefaultMass},
		Lengths:   [3]float64{DefaultLength, DefaultLength, DefaultLength},
		Damping:   DefaultDamping,
		Gravity:   DefaultGravity,
		AnglesDeg: [3]float64{DefaultAngleDeg, DefaultAngleDeg, DefaultAngleDeg},
		SimTime:   DefaultSimTime,
		Solver: SolverConfig{
			Atol:     DefaultTolerance,
			Rtol:     DefaultTolerance,
			MaxSteps: DefaultMaxSteps,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys
// it changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Params converts to radians and validates.
func (c *Config) Params() (physics.Params, error) {
	var thetas [3]float64
	for i, deg := range c.AnglesDeg {
		thetas[i] = deg * math.Pi / 180
	}
	return physics.NewParams(c.Masses, c.Lengths, c.Damping, c.Gravity, thetas, c.SimTime)
}

// GetSolverConfig fills the integration settings, keeping the 50 Hz output
// grid.
func (c *Config) GetSolverConfig() dynamo.Config {
	cfg := dynamo.DefaultConfig()
	if c.Solver.Atol > 0 {
		cfg.Atol = c.Solver.Atol
	}
	if c.Solver.Rtol > 0 {
		cfg.Rtol = c.Solver.Rtol
	}
	if c.Solver.MaxSteps > 0 {
		cfg.MaxSteps = c.Solver.MaxSteps
	}
	return cfg
}

// Slider ranges of the parameter panel: each value is an integer position
// 0..100 mapped linearly onto the physical range.
var (
	massRange    = [2]float64{0, 2}
	lengthRange  = [2]float64{0, 2}
	dampingRange = [2]float64{0, 0.2}
	gravityRange = [2]float64{0, 10}
	angleRange   = [2]float64{-50, 50}
	simTimeRange = [2]float64{0, 50}
)

func sliderValue(r [2]float64, pos int) float64 {
	return r[0] + (r[1]-r[0])*float64(pos)/100
}

// Randomize draws every parameter from the 5-95% band of its slider and
// snaps it to a slider position. The solver settings are kept.
func (c *Config) Randomize(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	pick := func(r [2]float64) float64 {
		pos := int(5 + 90*rng.Float64())
		return sliderValue(r, pos)
	}

	for i := range c.Masses {
		c.Masses[i] = pick(massRange)
	}
	for i := range c.Lengths {
		c.Lengths[i] = pick(lengthRange)
	}
	c.Damping = pick(dampingRange)
	c.Gravity = pick(gravityRange)
	for i := range c.AnglesDeg {
		c.AnglesDeg[i] = pick(angleRange)
	}
	c.SimTime = pick(simTimeRange)
}
