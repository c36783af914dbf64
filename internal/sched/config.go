package sched

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when engine parameters cannot drive a simulation.
var ErrInvalidConfig = errors.New("invalid scheduler config")

// Config holds the engine parameters of a simulation.
type Config struct {
	Processors         int `yaml:"processors" json:"processors"`                     // 2 (by default)
	ContextSwitchTicks int `yaml:"context_switch_ticks" json:"context_switch_ticks"` // 15 (by default)
	SliceTicks         int `yaml:"slice_ticks" json:"slice_ticks"`                   // 100 (by default)
}

// DefaultConfig matches the reference workload.
func DefaultConfig() Config {
	return Config{
		Processors:         2,
		ContextSwitchTicks: 15,
		SliceTicks:         100,
	}
}

// Validate rejects parameters the engine cannot run with.
func (c Config) Validate() error {
	if c.Processors < 1 {
		return fmt.Errorf("%w: processors must be at least 1, got %d", ErrInvalidConfig, c.Processors)
	}
	if c.ContextSwitchTicks < 1 {
		return fmt.Errorf("%w: context switch must be at least 1 tick, got %d", ErrInvalidConfig, c.ContextSwitchTicks)
	}
	if c.SliceTicks < 1 {
		return fmt.Errorf("%w: slice must be at least 1 tick, got %d", ErrInvalidConfig, c.SliceTicks)
	}
	return nil
}
