package config

import "sort"

// Presets are complete configurations selectable by name.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	// 0.5 rad, 0, -0.5 rad.
	"scenario": {
		Masses: [3]float64{1, 1, 1}, Lengths: [3]float64{1, 1, 1},
		Damping: 0, Gravity: 9.8,
		AnglesDeg: [3]float64{28.64788975654116, 0, -28.64788975654116}, SimTime: 5,
	},
	"drop": {
		Masses: [3]float64{1, 1, 1}, Lengths: [3]float64{1, 1, 1},
		Damping: 0, Gravity: 9.8,
		AnglesDeg: [3]float64{90, 0, 0}, SimTime: 5,
	},
	"equilibrium": {
		Masses: [3]float64{1, 1, 1}, Lengths: [3]float64{1, 1, 1},
		Damping: 0.01, Gravity: 9.8,
		AnglesDeg: [3]float64{0, 0, 0}, SimTime: 10,
	},
	"chaos": {
		Masses: [3]float64{1, 1, 1}, Lengths: [3]float64{1, 1, 1},
		Damping: 0, Gravity: 9.8,
		AnglesDeg: [3]float64{120, 150, 170}, SimTime: 30,
	},
	"damped": {
		Masses: [3]float64{1, 1, 1}, Lengths: [3]float64{1, 1, 1},
		Damping: 0.2, Gravity: 9.8,
		AnglesDeg: [3]float64{45, 45, 45}, SimTime: 30,
	},
	"heavy_tip": {
		Masses: [3]float64{0.5, 0.5, 2}, Lengths: [3]float64{1, 0.8, 0.6},
		Damping: 0.01, Gravity: 9.8,
		AnglesDeg: [3]float64{60, -30, 20}, SimTime: 20,
	},
}

// GetPreset returns a copy so callers may modify it freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	if c.Solver == (SolverConfig{}) {
		c.Solver = DefaultConfig().Solver
	}
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
