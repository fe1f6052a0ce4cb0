package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/tripend/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Masses != [3]float64{1, 1, 1} {
		t.Errorf("expected unit masses, got %v", cfg.Masses)
	}
	if cfg.Damping != 0.01 {
		t.Errorf("expected damping 0.01, got %f", cfg.Damping)
	}
	if cfg.Gravity != 9.8 {
		t.Errorf("expected gravity 9.8, got %f", cfg.Gravity)
	}
	if cfg.SimTime != 30 {
		t.Errorf("expected sim time 30, got %f", cfg.SimTime)
	}
}

func TestParamsConvertsDegrees(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnglesDeg = [3]float64{90, -45, 180}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []float64{math.Pi / 2, -math.Pi / 4, math.Pi}
	got := []float64{p.Theta1, p.Theta2, p.Theta3}
	for i := range expected {
		if math.Abs(got[i]-expected[i]) > 1e-15 {
			t.Errorf("theta%d: expected %f, got %f", i+1, expected[i], got[i])
		}
	}
}

func TestParamsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero mass", func(c *Config) { c.Masses[0] = 0 }},
		{"negative length", func(c *Config) { c.Lengths[1] = -1 }},
		{"zero gravity", func(c *Config) { c.Gravity = 0 }},
		{"zero sim time", func(c *Config) { c.SimTime = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if _, err := cfg.Params(); !errors.Is(err, dynamo.ErrInvalidParameters) {
				t.Errorf("expected ErrInvalidParameters, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte("angles_deg: [10, 20, 30]\nsim_time: 5\nsolver:\n  max_steps: 1000\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.AnglesDeg != [3]float64{10, 20, 30} {
		t.Errorf("expected angles [10 20 30], got %v", cfg.AnglesDeg)
	}
	if cfg.SimTime != 5 {
		t.Errorf("expected sim time 5, got %f", cfg.SimTime)
	}
	if cfg.Masses != [3]float64{1, 1, 1} {
		t.Errorf("expected default masses to survive, got %v", cfg.Masses)
	}
	if cfg.Solver.MaxSteps != 1000 || cfg.Solver.Atol != DefaultTolerance {
		t.Errorf("unexpected solver config %+v", cfg.Solver)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("masses: [a, b"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := GetPreset("heavy_tip")
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestSolverConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = SolverConfig{Atol: 1e-6, MaxSteps: 10}

	sc := cfg.GetSolverConfig()
	if sc.Atol != 1e-6 {
		t.Errorf("expected atol 1e-6, got %g", sc.Atol)
	}
	if sc.Rtol != dynamo.DefaultConfig().Rtol {
		t.Errorf("expected default rtol, got %g", sc.Rtol)
	}
	if sc.MaxSteps != 10 {
		t.Errorf("expected 10 max steps, got %d", sc.MaxSteps)
	}
	if sc.SampleRate != 50 {
		t.Errorf("expected 50 Hz output, got %g", sc.SampleRate)
	}
}

func TestRandomize(t *testing.T) {
	a := DefaultConfig()
	a.Randomize(42)
	b := DefaultConfig()
	b.Randomize(42)

	if *a != *b {
		t.Error("same seed should give the same parameters")
	}

	for seed := int64(0); seed < 50; seed++ {
		cfg := DefaultConfig()
		cfg.Randomize(seed)

		for i := 0; i < 3; i++ {
			if cfg.Masses[i] < 0.1 || cfg.Masses[i] > 1.9 {
				t.Errorf("seed %d: mass %f outside band", seed, cfg.Masses[i])
			}
			if cfg.AnglesDeg[i] < -45 || cfg.AnglesDeg[i] > 45 {
				t.Errorf("seed %d: angle %f outside band", seed, cfg.AnglesDeg[i])
			}
		}
		if cfg.Damping < 0.01 || cfg.Damping > 0.19 {
			t.Errorf("seed %d: damping %f outside band", seed, cfg.Damping)
		}
		if cfg.Solver.MaxSteps != DefaultMaxSteps {
			t.Errorf("seed %d: solver settings changed", seed)
		}
		if _, err := cfg.Params(); err != nil {
			t.Errorf("seed %d: randomized config invalid: %v", seed, err)
		}
	}
}
