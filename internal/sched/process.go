// internal/sched/process.go

package sched

import "fmt"

// ProcessID uniquely identifies a process within one workload.
type ProcessID int

// Descriptor is the immutable description of one unit of work in a workload.
type Descriptor struct {
	ID       ProcessID `yaml:"id" json:"id"`
	Burst    int       `yaml:"burst" json:"burst"`       // total CPU ticks required
	Priority int       `yaml:"priority" json:"priority"` // recorded, never used for selection
	Arrival  int       `yaml:"arrival" json:"arrival"`   // tick at which the process becomes eligible
}

// Process is the scheduler's private, mutable record of one descriptor.
type Process struct {
	desc        Descriptor
	remaining   int
	admitted    int  // clock value when the scheduler took the process in
	started     bool // ran at least one tick
	done        bool
	initialWait int
	totalWait   int
	turnaround  int
}

// NewProcess copies d into a fresh record with nothing run and nothing waited.
func NewProcess(d Descriptor) *Process {
	return &Process{
		desc:      d,
		remaining: d.Burst,
	}
}

func (p *Process) ID() ProcessID          { return p.desc.ID }
func (p *Process) Burst() int             { return p.desc.Burst }
func (p *Process) Priority() int          { return p.desc.Priority }
func (p *Process) Arrival() int           { return p.desc.Arrival }
func (p *Process) Descriptor() Descriptor { return p.desc }
func (p *Process) Remaining() int         { return p.remaining }
func (p *Process) Admitted() int          { return p.admitted }
func (p *Process) InitialWait() int       { return p.initialWait }
func (p *Process) TotalWait() int         { return p.totalWait }
func (p *Process) Turnaround() int        { return p.turnaround }
func (p *Process) Finished() bool         { return p.done }

// Consumed is the number of ticks the process has actually run.
func (p *Process) Consumed() int { return p.desc.Burst - p.remaining }

// Run charges one tick of execution.
func (p *Process) Run() {
	if p.remaining == 0 {
		return
	}
	if !p.started {
		p.started = true
		p.initialWait = p.totalWait
	}
	p.remaining--
}

// Pause charges one tick spent off the processor, either queued or waiting
// out a context switch.
func (p *Process) Pause() {
	p.totalWait++
}

// Complete fixes the turnaround time. Only the first call has any effect.
func (p *Process) Complete(now int) {
	if p.done {
		return
	}
	p.done = true
	p.turnaround = now - p.admitted
}

// Reset returns the record to the state NewProcess produced.
func (p *Process) Reset() {
	*p = Process{desc: p.desc, remaining: p.desc.Burst}
}

// Snapshot returns a value copy that later ticks cannot change.
func (p *Process) Snapshot() ProcessStats {
	return ProcessStats{
		ID:          p.desc.ID,
		Burst:       p.desc.Burst,
		Priority:    p.desc.Priority,
		Arrival:     p.desc.Arrival,
		Admitted:    p.admitted,
		Turnaround:  p.turnaround,
		InitialWait: p.initialWait,
		TotalWait:   p.totalWait,
	}
}

func (p *Process) String() string {
	return fmt.Sprintf("P%d{burst=%d remaining=%d wait=%d}", p.desc.ID, p.desc.Burst, p.remaining, p.totalWait)
}

// ProcessStats is the frozen view of a finished process.
type ProcessStats struct {
	ID          ProcessID `json:"id"`
	Burst       int       `json:"burst"`
	Priority    int       `json:"priority"`
	Arrival     int       `json:"arrival"`
	Admitted    int       `json:"admitted"`
	Turnaround  int       `json:"turnaround"`
	InitialWait int       `json:"initial_wait"`
	TotalWait   int       `json:"total_wait"`
}
