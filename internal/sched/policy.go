// internal/sched/policy.go

package sched

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned by PolicyByName for names it does not recognise.
var ErrUnknownPolicy = errors.New("unknown policy")

// Policy picks the process that should occupy a processor for the next tick.
//
// Next is called once per processor per tick, after the engine has run and
// retired the current occupant. current is nil when the processor is empty.
// A policy may remove entries from q and push entries back onto it; it must
// not charge run or wait time. Returning a process other than current
// displaces current, which must then already be back in q.
type Policy interface {
	Name() string
	Next(cpu int, current *Process, q *WaitQueue) *Process
}

// FCFS runs processes to completion in order of arrival.
type FCFS struct{}

func (FCFS) Name() string { return "First Come First Served" }

func (FCFS) Next(_ int, current *Process, q *WaitQueue) *Process {
	if current != nil && !current.Finished() {
		return current
	}
	return q.RemoveAt(q.MinIndex(func(a, b *Process) bool {
		return a.Arrival() < b.Arrival()
	}))
}

// SJF runs the waiting process with the smallest total burst next. It never
// preempts a running process.
type SJF struct{}

func (SJF) Name() string { return "Shortest Job First" }

func (SJF) Next(_ int, current *Process, q *WaitQueue) *Process {
	if current != nil && !current.Finished() {
		return current
	}
	return q.RemoveAt(q.MinIndex(func(a, b *Process) bool {
		if a.Burst() != b.Burst() {
			return a.Burst() < b.Burst()
		}
		return a.Arrival() < b.Arrival()
	}))
}

// RoundRobin preempts the occupant every Slice ticks of run time and serves
// the waiting queue in FIFO order.
type RoundRobin struct {
	Slice int
}

func (RoundRobin) Name() string { return "Round Robin" }

func (r RoundRobin) Next(_ int, current *Process, q *WaitQueue) *Process {
	if current != nil {
		if current.Consumed()%r.Slice > 0 {
			return current
		}
		// slice boundary: back of the line
		q.Push(current)
	}
	return q.Pop()
}

// Policies returns every built-in policy, in the order reports list them.
func Policies(cfg Config) []Policy {
	return []Policy{FCFS{}, SJF{}, RoundRobin{Slice: cfg.SliceTicks}}
}

// PolicyByName resolves a short or long policy name.
func PolicyByName(name string, cfg Config) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fcfs", "fifo", "first-come-first-served":
		return FCFS{}, nil
	case "sjf", "shortest-job-first":
		return SJF{}, nil
	case "rr", "round-robin":
		if cfg.SliceTicks < 1 {
			return nil, fmt.Errorf("%w: round robin slice must be at least 1 tick", ErrInvalidConfig)
		}
		return RoundRobin{Slice: cfg.SliceTicks}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// PolicyNames lists the short names PolicyByName accepts.
func PolicyNames() []string {
	return []string{"fcfs", "sjf", "rr"}
}

// Validate rejects a slice the modulo arithmetic cannot use.
func (r RoundRobin) Validate() error {
	if r.Slice < 1 {
		return fmt.Errorf("%w: round robin slice must be at least 1 tick, got %d", ErrInvalidConfig, r.Slice)
	}
	return nil
}
