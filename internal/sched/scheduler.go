// internal/sched/scheduler.go

package sched

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrPolicyContract is the panic value wrapped when a policy hands back a
// process the engine cannot place. It always means the policy is broken.
var ErrPolicyContract = errors.New("policy contract violated")

// processor is one CPU slot.
type processor struct {
	occupant   *Process
	switchLeft int // ticks until occupant may execute; 0 means ready
}

// Scheduler is the tick engine shared by every policy.
type Scheduler struct {
	cfg       Config
	policy    Policy
	clock     Clock
	cpus      []processor
	waiting   *WaitQueue
	admitted  map[*Process]struct{}
	finished  []*Process
	observers []Observer
	logger    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for debug traces of switches and completions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers fn to receive every event.
func WithObserver(fn Observer) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// New creates a Scheduler for cfg driven by policy.
func New(cfg Config, policy Policy, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("%w: nil policy", ErrInvalidConfig)
	}
	if v, ok := policy.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}

	s := &Scheduler{
		cfg:      cfg,
		policy:   policy,
		cpus:     make([]processor, cfg.Processors),
		waiting:  NewWaitQueue(),
		admitted: make(map[*Process]struct{}),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("policy", policy.Name())
	return s, nil
}

// AddProcess admits a private copy of d at the tail of the waiting queue.
func (s *Scheduler) AddProcess(d Descriptor) {
	p := NewProcess(d)
	p.admitted = s.clock.Now()
	s.admitted[p] = struct{}{}
	s.waiting.Push(p)
}

// AddProcesses admits every descriptor in order.
func (s *Scheduler) AddProcesses(ds []Descriptor) {
	for _, d := range ds {
		s.AddProcess(d)
	}
}

// HasUnfinishedWork reports whether anything is queued or on a processor.
func (s *Scheduler) HasUnfinishedWork() bool {
	if !s.waiting.Empty() {
		return true
	}
	for i := range s.cpus {
		if s.cpus[i].occupant != nil {
			return true
		}
	}
	return false
}

// Tick advances the simulation by exactly one unit of time.
func (s *Scheduler) Tick() {
	now := s.clock.Now()

	for i := range s.cpus {
		cpu := &s.cpus[i]
		current := cpu.occupant

		// 1) the processor is still swapping in its occupant
		if cpu.switchLeft > 0 {
			cpu.switchLeft--
			current.Pause()
			if cpu.switchLeft == 0 {
				s.emit(createdEvent(now, i, current))
			}
			continue
		}

		// 2) run the occupant and retire it if it is done
		if current != nil {
			current.Run()
			if current.Remaining() == 0 {
				current.Complete(now)
				s.finished = append(s.finished, current)
				cpu.occupant = nil
				current = nil
				s.emit(completedEvent(now, i, s.finished[len(s.finished)-1]))
			}
		}

		// 3) ask the policy who runs next
		next := s.policy.Next(i, current, s.waiting)
		s.checkSelection(i, current, next)

		// 4) nothing to run
		if next == nil {
			cpu.occupant = nil
			continue
		}

		// 5) a new occupant either pays for a switch or starts right away
		if next != current {
			if current != nil {
				s.emit(Event{
					Time:      now,
					Kind:      EventContextSwitch,
					CPU:       i,
					Process:   next.ID(),
					Outgoing:  current.ID(),
					Burst:     next.Burst(),
					Remaining: next.Remaining(),
					Priority:  next.Priority(),
				})
				cpu.switchLeft = s.cfg.ContextSwitchTicks
			} else {
				s.emit(createdEvent(now, i, next))
			}
			cpu.occupant = next
		}
	}

	// 6) everyone left in the queue waited this tick
	s.waiting.Each(func(p *Process) { p.Pause() })

	// 7) advance the clock
	s.clock.Advance()
}

// checkSelection panics when next cannot legally occupy processor cpu.
func (s *Scheduler) checkSelection(cpu int, current, next *Process) {
	if next != nil {
		if _, ok := s.admitted[next]; !ok {
			panic(fmt.Errorf("%w: %s returned process %d for CPU %s that was never admitted",
				ErrPolicyContract, s.policy.Name(), next.ID(), CPULabel(cpu)))
		}
		if next.Finished() {
			panic(fmt.Errorf("%w: %s returned finished process %d for CPU %s",
				ErrPolicyContract, s.policy.Name(), next.ID(), CPULabel(cpu)))
		}
		if s.waiting.Contains(next) {
			panic(fmt.Errorf("%w: %s returned process %d for CPU %s but left it queued",
				ErrPolicyContract, s.policy.Name(), next.ID(), CPULabel(cpu)))
		}
		for j := range s.cpus {
			if j != cpu && s.cpus[j].occupant == next {
				panic(fmt.Errorf("%w: %s assigned process %d to CPU %s while it occupies CPU %s",
					ErrPolicyContract, s.policy.Name(), next.ID(), CPULabel(cpu), CPULabel(j)))
			}
		}
	}
	if current != nil && next != current && !s.waiting.Contains(current) {
		panic(fmt.Errorf("%w: %s dropped process %d from CPU %s",
			ErrPolicyContract, s.policy.Name(), current.ID(), CPULabel(cpu)))
	}
}

func (s *Scheduler) emit(ev Event) {
	switch ev.Kind {
	case EventContextSwitch:
		s.logger.Debug("context switch", "time", ev.Time, "cpu", ev.CPULabel(), "out", ev.Outgoing, "in", ev.Process)
	case EventCompleted:
		s.logger.Debug("process completed", "time", ev.Time, "cpu", ev.CPULabel(), "process", ev.Process, "turnaround", ev.Turnaround)
	}
	for _, fn := range s.observers {
		fn(ev)
	}
}

func createdEvent(now, cpu int, p *Process) Event {
	return Event{
		Time:      now,
		Kind:      EventCreated,
		CPU:       cpu,
		Process:   p.ID(),
		Burst:     p.Burst(),
		Remaining: p.Remaining(),
		Priority:  p.Priority(),
	}
}

func completedEvent(now, cpu int, p *Process) Event {
	return Event{
		Time:        now,
		Kind:        EventCompleted,
		CPU:         cpu,
		Process:     p.ID(),
		Burst:       p.Burst(),
		Priority:    p.Priority(),
		Turnaround:  p.Turnaround(),
		InitialWait: p.InitialWait(),
		TotalWait:   p.TotalWait(),
	}
}

// Time returns the current tick.
func (s *Scheduler) Time() int { return s.clock.Now() }

// PolicyName returns the name of the active policy.
func (s *Scheduler) PolicyName() string { return s.policy.Name() }

// Processors returns the number of processors.
func (s *Scheduler) Processors() int { return len(s.cpus) }

// Waiting returns the number of queued processes.
func (s *Scheduler) Waiting() int { return s.waiting.Len() }

// Occupant returns the process on processor cpu and the ticks left on its
// context switch. The process is nil when the processor is idle.
func (s *Scheduler) Occupant(cpu int) (*Process, int) {
	return s.cpus[cpu].occupant, s.cpus[cpu].switchLeft
}

// Finished returns completed processes in completion order.
func (s *Scheduler) Finished() []*Process {
	out := make([]*Process, len(s.finished))
	copy(out, s.finished)
	return out
}
