// internal/sim/driver.go

package sim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cpusim/internal/sched"
	"cpusim/internal/workload"
)

// ErrUnknownMode is returned by ParseMode and DriverFor for unrecognised modes.
var ErrUnknownMode = errors.New("unknown run mode")

// Mode selects how a workload is handed to the engine.
type Mode string

const (
	// ModeAllAtOnce enqueues every process before the first tick.
	ModeAllAtOnce Mode = "all-at-once"
	// ModeArrivalGated admits each process once the clock reaches its arrival.
	ModeArrivalGated Mode = "arrival-gated"
)

// ParseMode accepts the canonical names plus a few short forms.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all-at-once":
		return ModeAllAtOnce, nil
	case "arrival", "gated", "arrival-gated":
		return ModeArrivalGated, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Driver feeds a workload through s until the run is over.
type Driver func(ctx context.Context, s *sched.Scheduler, t workload.Template, interval time.Duration) error

// DriverFor returns the driver implementing mode.
func DriverFor(mode Mode) (Driver, error) {
	switch mode {
	case ModeAllAtOnce:
		return AllAtOnce, nil
	case ModeArrivalGated:
		return ArrivalGated, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// AllAtOnce enqueues the whole workload and ticks until nothing is left.
// Arrival times only influence ordering decisions made by the policy.
func AllAtOnce(ctx context.Context, s *sched.Scheduler, t workload.Template, interval time.Duration) error {
	p := newPacer(interval)
	defer p.stop()

	s.AddProcesses(t.Descriptors())
	for s.HasUnfinishedWork() {
		if err := p.wait(ctx); err != nil {
			return err
		}
		s.Tick()
	}
	return nil
}

// ArrivalGated admits each process only once the clock reaches its arrival
// time, checking once per tick before the engine processes that tick. It
// keeps ticking through idle stretches until the feed is empty.
func ArrivalGated(ctx context.Context, s *sched.Scheduler, t workload.Template, interval time.Duration) error {
	p := newPacer(interval)
	defer p.stop()

	feed := workload.NewFeed(t)
	s.AddProcesses(feed.Due(s.Time()))
	for s.HasUnfinishedWork() || feed.Len() > 0 {
		if err := p.wait(ctx); err != nil {
			return err
		}
		s.Tick()
		s.AddProcesses(feed.Due(s.Time()))
	}
	return nil
}
