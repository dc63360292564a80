package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	data := []byte(`
simulation:
  tick_rate: 120
  check_overlap: true
server:
  addr: "127.0.0.1:9000"
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Simulation.TickRate != 120 {
		t.Errorf("TickRate = %v, want 120", cfg.Simulation.TickRate)
	}
	if !cfg.Simulation.CheckOverlap {
		t.Error("CheckOverlap should be set")
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	// untouched keys keep their default
	if cfg.Simulation.Gravity != [3]float64{0, -9.8, 0} {
		t.Errorf("Gravity = %v, want default", cfg.Simulation.Gravity)
	}
	if cfg.Server.BroadcastRate != 30 {
		t.Errorf("BroadcastRate = %v, want 30", cfg.Server.BroadcastRate)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	if err := os.WriteFile(path, []byte("simulation:\n  tick_rate: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero tick rate", func(c *Config) { c.Simulation.TickRate = 0 }, true},
		{"tick rate too high", func(c *Config) { c.Simulation.TickRate = 1e12 }, true},
		{"highest tick rate", func(c *Config) { c.Simulation.TickRate = MaxTickRate }, false},
		{"negative workers", func(c *Config) { c.Simulation.Workers = -1 }, true},
		{"negative substeps", func(c *Config) { c.Simulation.MaxSubsteps = -3 }, true},
		{"zero broadcast", func(c *Config) { c.Server.BroadcastRate = 0 }, true},
		{"audio without frequency", func(c *Config) {
			c.Audio.Enabled = true
			c.Audio.Frequency = 0
		}, true},
		{"audio disabled without frequency", func(c *Config) { c.Audio.Frequency = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDt(t *testing.T) {
	s := Simulation{TickRate: 60}
	if got := s.Dt(); got != 1.0/60 {
		t.Errorf("Dt() = %v", got)
	}
}
