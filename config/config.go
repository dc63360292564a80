// Package config holds the runtime settings of the simulation commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read by the commands when none is given
const DefaultPath = "sweep.yaml"

// MaxTickRate bounds simulation.tick_rate, one step per microsecond
const MaxTickRate = 1e6

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Simulation Simulation `yaml:"simulation"`
	Server     Server     `yaml:"server"`
	Audio      Audio      `yaml:"audio"`
}

type Simulation struct {
	// TickRate is the number of steps per second, dt = 1/TickRate
	TickRate     float64    `yaml:"tick_rate"`
	Gravity      [3]float64 `yaml:"gravity"`
	Workers      int        `yaml:"workers"`
	MaxSubsteps  int        `yaml:"max_substeps"`
	CheckOverlap bool       `yaml:"check_overlap"`
	// Scene is an optional YAML scene file, empty means the built-in cube and floor
	Scene string `yaml:"scene,omitempty"`
}

type Server struct {
	Addr string `yaml:"addr"`
	// BroadcastRate is the number of snapshots sent per second
	BroadcastRate float64 `yaml:"broadcast_rate"`
}

type Audio struct {
	Enabled    bool    `yaml:"enabled"`
	Frequency  float64 `yaml:"frequency"`
	DurationMs int     `yaml:"duration_ms"`
}

// Default returns the settings of the original falling cube demo
func Default() Config {
	return Config{
		Simulation: Simulation{
			TickRate:    60,
			Gravity:     [3]float64{0, -9.8, 0},
			Workers:     1,
			MaxSubsteps: 64,
		},
		Server: Server{
			Addr:          ":8080",
			BroadcastRate: 30,
		},
		Audio: Audio{
			Enabled:    false,
			Frequency:  440,
			DurationMs: 60,
		},
	}
}

// Load reads a YAML config file over the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Simulation.TickRate <= 0 || c.Simulation.TickRate > MaxTickRate {
		return fmt.Errorf("simulation.tick_rate must be in (0, %v], got %v: %w", MaxTickRate, c.Simulation.TickRate, ErrInvalid)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must not be negative, got %d: %w", c.Simulation.Workers, ErrInvalid)
	}
	if c.Simulation.MaxSubsteps < 0 {
		return fmt.Errorf("simulation.max_substeps must not be negative, got %d: %w", c.Simulation.MaxSubsteps, ErrInvalid)
	}
	if c.Server.BroadcastRate <= 0 {
		return fmt.Errorf("server.broadcast_rate must be positive, got %v: %w", c.Server.BroadcastRate, ErrInvalid)
	}
	if c.Audio.Enabled && (c.Audio.Frequency <= 0 || c.Audio.DurationMs <= 0) {
		return fmt.Errorf("audio needs a positive frequency and duration: %w", ErrInvalid)
	}
	return nil
}

// Dt is the fixed step duration in seconds
func (s Simulation) Dt() float64 {
	return 1.0 / s.TickRate
}
