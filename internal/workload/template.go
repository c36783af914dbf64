// Package workload builds the process descriptors a simulation replays and
// feeds them to the engine as simulated time reaches their arrival.
package workload

import (
	"errors"
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"cpusim/internal/sched"
)

// ErrInvalidWorkload is returned when descriptors cannot form a workload.
var ErrInvalidWorkload = errors.New("invalid workload")

// Template is an immutable workload. Every run gets its own copy of the
// descriptors, so replaying it through several policies never shares state.
type Template struct {
	procs []sched.Descriptor
}

// file mirrors the YAML layout of a saved workload.
type file struct {
	Processes []sched.Descriptor `yaml:"processes"`
}

// NewTemplate validates ds and copies them into a Template.
func NewTemplate(ds []sched.Descriptor) (Template, error) {
	seen := make(map[sched.ProcessID]bool, len(ds))
	for _, d := range ds {
		if seen[d.ID] {
			return Template{}, fmt.Errorf("%w: duplicate process id %d", ErrInvalidWorkload, d.ID)
		}
		seen[d.ID] = true
		if d.Burst <= 0 {
			return Template{}, fmt.Errorf("%w: process %d has burst %d", ErrInvalidWorkload, d.ID, d.Burst)
		}
		if d.Priority < 0 {
			return Template{}, fmt.Errorf("%w: process %d has negative priority", ErrInvalidWorkload, d.ID)
		}
		if d.Arrival < 0 {
			return Template{}, fmt.Errorf("%w: process %d arrives before time 0", ErrInvalidWorkload, d.ID)
		}
	}
	procs := make([]sched.Descriptor, len(ds))
	copy(procs, ds)
	return Template{procs: procs}, nil
}

// Descriptors returns a fresh copy of the workload, in generation order.
func (t Template) Descriptors() []sched.Descriptor {
	out := make([]sched.Descriptor, len(t.procs))
	copy(out, t.procs)
	return out
}

// Len returns the number of processes.
func (t Template) Len() int { return len(t.procs) }

// Marshal encodes the workload as YAML.
func (t Template) Marshal() ([]byte, error) {
	return yaml.Marshal(file{Processes: t.Descriptors()})
}

// Save writes the workload to path as YAML.
func (t Template) Save(path string) error {
	data, err := t.Marshal()
	if err != nil {
		return fmt.Errorf("encode workload: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Parse decodes a YAML workload.
func Parse(data []byte) (Template, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrInvalidWorkload, err)
	}
	return NewTemplate(f.Processes)
}

// Load reads a YAML workload from path.
func Load(path string) (Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("read workload: %w", err)
	}
	return Parse(data)
}
