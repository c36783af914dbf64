package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "github.com/goccy/go-yaml"

	"cpusim/internal/sched"
	"cpusim/internal/sim"
	"cpusim/internal/workload"
)

// Config mirrors config.yml
type Config struct {
	Engine   sched.Config    `yaml:"engine"`
	Workload workload.Config `yaml:"workload"`
	Mode     string          `yaml:"mode"`    // all-at-once (by default) or arrival-gated
	TickMS   int             `yaml:"tick_ms"` // wall-clock pacing per tick, 0 (by default) runs flat out
	Log      LogConfig       `yaml:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns the reference simulation: 2 CPUs, 15-tick switches,
// 100-tick slices, 20 processes.
func Default() Config {
	return Config{
		Engine:   sched.DefaultConfig(),
		Workload: workload.DefaultConfig(),
		Mode:     string(sim.ModeAllAtOnce),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads YAML over the defaults; empty path = defaults only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every section.
func (c Config) Validate() error {
	var errs []error
	errs = append(errs, c.Engine.Validate(), c.Workload.Validate())
	if _, err := sim.ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.TickMS < 0 {
		errs = append(errs, fmt.Errorf("%w: tick_ms must not be negative", sched.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// RunMode returns the parsed run mode.
func (c Config) RunMode() sim.Mode {
	mode, err := sim.ParseMode(c.Mode)
	if err != nil {
		return sim.ModeAllAtOnce
	}
	return mode
}

// TickInterval returns the pacing interval.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}
