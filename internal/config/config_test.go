package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GeorgeHategan/position-sizing-calculator/internal/core"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
simulation:
  win_probability: 0.55
  trades: 250
  trials: 100
  initial_capital: 5000
  risk_reward: 1.5
  sizes: [1, 2, 5, 10]
  seed: 7

report:
  format: markdown
  table_step: 1
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Simulation.WinProbability != 0.55 {
		t.Errorf("expected win_probability 0.55, got %g", cfg.Simulation.WinProbability)
	}
	if cfg.Simulation.Trades != 250 {
		t.Errorf("expected 250 trades, got %d", cfg.Simulation.Trades)
	}
	if len(cfg.Simulation.Sizes) != 4 {
		t.Errorf("expected 4 sizes, got %d", len(cfg.Simulation.Sizes))
	}
	if cfg.Report.Format != "markdown" {
		t.Errorf("expected markdown format, got %s", cfg.Report.Format)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Simulation.WinProbability != 0.57 {
		t.Errorf("expected default win_probability 0.57, got %g", cfg.Simulation.WinProbability)
	}
	if cfg.Simulation.Trades != 500 || cfg.Simulation.Trials != 500 {
		t.Errorf("expected 500 trades and trials, got %d/%d", cfg.Simulation.Trades, cfg.Simulation.Trials)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultSizes(t *testing.T) {
	sizes := DefaultSizes()

	if len(sizes) != 79 {
		t.Fatalf("expected 79 sizes, got %d", len(sizes))
	}
	if sizes[0] != 1 || sizes[len(sizes)-1] != 40 {
		t.Errorf("expected sizes from 1 to 40, got %g to %g", sizes[0], sizes[len(sizes)-1])
	}
	if sizes[1]-sizes[0] != 0.5 {
		t.Errorf("expected half-percent steps, got %g", sizes[1]-sizes[0])
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config { return Defaults() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"probability zero", func(c *Config) { c.Simulation.WinProbability = 0 }, "win_probability"},
		{"probability one", func(c *Config) { c.Simulation.WinProbability = 1 }, "win_probability"},
		{"no trades", func(c *Config) { c.Simulation.Trades = 0 }, "trades"},
		{"no trials", func(c *Config) { c.Simulation.Trials = 0 }, "trials"},
		{"zero capital", func(c *Config) { c.Simulation.InitialCapital = 0 }, "initial_capital"},
		{"negative risk reward", func(c *Config) { c.Simulation.RiskReward = -1 }, "risk_reward"},
		{"no sizes", func(c *Config) { c.Simulation.Sizes = nil }, "sizes"},
		{"size too large", func(c *Config) { c.Simulation.Sizes = []float64{5, 150} }, "sizes"},
		{"size zero", func(c *Config) { c.Simulation.Sizes = []float64{0} }, "sizes"},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -2 }, "workers"},
		{"bad report format", func(c *Config) { c.Report.Format = "pdf" }, "format"},
		{"negative table step", func(c *Config) { c.Report.TableStep = -1 }, "table_step"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, core.ErrConfigInvalid) && !errors.Is(err, core.ErrConfigMissing) {
				t.Errorf("expected a config error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should name parameter %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestSimulationConfig_Params(t *testing.T) {
	cfg := Defaults()
	cfg.Simulation.Seed = 99
	cfg.Simulation.Workers = 3

	p := cfg.Simulation.Params()

	if p.WinProbability != cfg.Simulation.WinProbability {
		t.Error("win probability not carried over")
	}
	if p.Seed != 99 || p.Workers != 3 {
		t.Errorf("seed/workers = %d/%d, want 99/3", p.Seed, p.Workers)
	}
	if len(p.Sizes) != len(cfg.Simulation.Sizes) {
		t.Error("sizes not carried over")
	}
}
