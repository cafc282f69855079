package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/GeorgeHategan/position-sizing-calculator/internal/core"
	"github.com/GeorgeHategan/position-sizing-calculator/internal/montecarlo"
	"github.com/spf13/viper"
)

type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Report     ReportConfig     `mapstructure:"report"`
}

// SimulationConfig holds every parameter the engine needs. Sizes are
// percentages of current capital risked per trade.
type SimulationConfig struct {
	WinProbability float64   `mapstructure:"win_probability"`
	Trades         int       `mapstructure:"trades"`
	Trials         int       `mapstructure:"trials"`
	InitialCapital float64   `mapstructure:"initial_capital"`
	RiskReward     float64   `mapstructure:"risk_reward"`
	Sizes          []float64 `mapstructure:"sizes"`
	Seed           int64     `mapstructure:"seed"`
	Workers        int       `mapstructure:"workers"`
	KeepCurves     bool      `mapstructure:"keep_curves"`
}

type ReportConfig struct {
	Format    string  `mapstructure:"format"`     // "text" or "markdown"
	TableStep float64 `mapstructure:"table_step"` // size increment between table rows; 0 shows all
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns the canonical simulation setup: a 57% win rate at 1:1
// risk/reward, 500 trades per trial, 500 trials, candidate sizes from 1%
// to 40% in half-percent steps.
func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			WinProbability: 0.57,
			Trades:         500,
			Trials:         500,
			InitialCapital: 10000,
			RiskReward:     1.0,
			Sizes:          DefaultSizes(),
			Seed:           42,
		},
		Report: ReportConfig{
			Format:    "text",
			TableStep: 1.0,
		},
	}
}

// DefaultSizes returns 1%, 1.5%, 2%, ... 40%.
func DefaultSizes() []float64 {
	sizes := make([]float64, 0, 79)
	for i := 2; i <= 80; i++ {
		sizes = append(sizes, float64(i)/2)
	}
	return sizes
}

// Validate checks the configuration for errors. Every violation is
// reported before any simulation work begins, naming the offending
// parameter.
func (c *Config) Validate() error {
	s := c.Simulation

	if s.WinProbability <= 0 || s.WinProbability >= 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("win_probability must be in (0, 1), got %g", s.WinProbability))
	}
	if s.Trades < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("trades must be at least 1, got %d", s.Trades))
	}
	if s.Trials < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("trials must be at least 1, got %d", s.Trials))
	}
	if s.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial_capital must be positive, got %g", s.InitialCapital))
	}
	if s.RiskReward <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("risk_reward must be positive, got %g", s.RiskReward))
	}
	if len(s.Sizes) == 0 {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("sizes: at least one candidate position size is required"))
	}
	for _, size := range s.Sizes {
		if size <= 0 || size > 100 {
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("sizes: each size must be in (0, 100] percent, got %g", size))
		}
	}
	if s.Workers < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("workers cannot be negative, got %d", s.Workers))
	}

	switch c.Report.Format {
	case "text", "markdown":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("report format must be text or markdown, got %q", c.Report.Format))
	}
	if c.Report.TableStep < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("table_step cannot be negative, got %g", c.Report.TableStep))
	}

	return nil
}

// Params converts the simulation section into engine parameters.
func (s SimulationConfig) Params() montecarlo.Params {
	return montecarlo.Params{
		WinProbability: s.WinProbability,
		Trades:         s.Trades,
		Trials:         s.Trials,
		InitialCapital: s.InitialCapital,
		RiskReward:     s.RiskReward,
		Sizes:          s.Sizes,
		Seed:           s.Seed,
		Workers:        s.Workers,
		KeepCurves:     s.KeepCurves,
	}
}
