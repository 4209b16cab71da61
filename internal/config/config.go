// Package config provides unified configuration loading for duopop.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/duopop/duopop/internal/model"
	"gopkg.in/yaml.v3"
)

// Config contains all duopop configuration settings.
type Config struct {
	// Model holds the ten chain coefficients.
	Model model.Parameters `json:"model" yaml:"model"`

	// Simulation contains defaults for simulation runs.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and trace logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures default simulation run settings. Command
// line flags override these per invocation.
type SimulationConfig struct {
	// TotalTime is the simulated duration collected after burn-in.
	TotalTime float64 `json:"total_time" yaml:"total_time"`

	// BurnInTime is the initial duration discarded before sampling.
	BurnInTime float64 `json:"burn_in_time" yaml:"burn_in_time"`

	// MaxStates is the reflecting ceiling on each population.
	MaxStates int `json:"max_states" yaml:"max_states"`

	// Seed seeds the simulator's randomness source. Zero means a fresh
	// seed per run (non-reproducible).
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LoggingConfig configures duopop's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables event tracing to duopop-events.jsonl.
	// "trace" additionally records every applied transition.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with a balanced reference parameter set and
// moderate simulation settings.
func Default() *Config {
	return &Config{
		Model: model.Parameters{
			Alpha1:   1.5,
			Alpha2:   1.2,
			Beta1:    0.8,
			Beta2:    0.8,
			Gamma:    1.5,
			Delta1:   0.9,
			Delta2:   0.7,
			BetaHat1: 1.2,
			BetaHat2: 1.2,
			GammaHat: 0.8,
		},
		Simulation: SimulationConfig{
			TotalTime:  200,
			BurnInTime: 50,
			MaxStates:  12,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from path if it is non-empty, otherwise the
// defaults, and applies environment variable overrides on top.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. Fields not
// present in the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Model.Validate(); err != nil {
		return err
	}

	if c.Simulation.TotalTime <= 0 {
		return fmt.Errorf("total_time must be positive, got %g", c.Simulation.TotalTime)
	}
	if c.Simulation.BurnInTime < 0 {
		return fmt.Errorf("burn_in_time must be non-negative, got %g", c.Simulation.BurnInTime)
	}
	if c.Simulation.MaxStates <= 0 {
		return fmt.Errorf("max_states must be positive, got %d", c.Simulation.MaxStates)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DUOPOP_TOTAL_TIME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.TotalTime = f
		}
	}

	if v := os.Getenv("DUOPOP_BURN_IN_TIME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.BurnInTime = f
		}
	}

	if v := os.Getenv("DUOPOP_MAX_STATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.MaxStates = n
		}
	}

	if v := os.Getenv("DUOPOP_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Simulation.Seed = n
		}
	}

	if v := os.Getenv("DUOPOP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
