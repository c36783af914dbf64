// Package sim drives workloads through the scheduling engine and collects
// the results of each run.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"cpusim/internal/sched"
	"cpusim/internal/workload"
)

// Options control a single run.
type Options struct {
	Mode         Mode
	TickInterval time.Duration // wall-clock pacing per tick; 0 runs flat out
	Logger       *slog.Logger
	Observers    []sched.Observer // called for every event, after it is recorded
}

// Result is everything one policy produced over one workload.
type Result struct {
	RunID    string               `json:"run_id"`
	Policy   string               `json:"policy"`
	Mode     Mode                 `json:"mode"`
	Ticks    int                  `json:"ticks"`
	Events   []sched.Event        `json:"events"`
	Finished []sched.ProcessStats `json:"finished"`
	Summary  sched.Summary        `json:"summary"`
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Run replays t through policy on a fresh engine.
func Run(ctx context.Context, cfg sched.Config, policy sched.Policy, t workload.Template, opts Options) (Result, error) {
	if opts.Mode == "" {
		opts.Mode = ModeAllAtOnce
	}
	drive, err := DriverFor(opts.Mode)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		RunID: uuid.NewString(),
		Mode:  opts.Mode,
	}
	logger := opts.logger().With("run_id", res.RunID)

	record := func(ev sched.Event) {
		res.Events = append(res.Events, ev)
		for _, fn := range opts.Observers {
			fn(ev)
		}
	}
	s, err := sched.New(cfg, policy, sched.WithLogger(logger), sched.WithObserver(record))
	if err != nil {
		return Result{}, err
	}
	res.Policy = s.PolicyName()

	logger.Info("run started", "policy", res.Policy, "mode", res.Mode, "processes", t.Len(), "processors", cfg.Processors)
	start := time.Now()
	if err := drive(ctx, s, t, opts.TickInterval); err != nil {
		return Result{}, fmt.Errorf("%s: %w", res.Policy, err)
	}

	res.Ticks = s.Time()
	for _, p := range s.Finished() {
		res.Finished = append(res.Finished, p.Snapshot())
	}
	res.Summary, err = s.Stats()
	if err != nil && !errors.Is(err, sched.ErrNoData) {
		return Result{}, err
	}
	logger.Info("run finished",
		"policy", res.Policy,
		"ticks", res.Ticks,
		"finished", res.Summary.Finished,
		"elapsed", time.Since(start))
	return res, nil
}

// Compare runs t through each policy in turn. Runs share nothing but the
// immutable template.
func Compare(ctx context.Context, cfg sched.Config, policies []sched.Policy, t workload.Template, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(policies))
	for _, p := range policies {
		res, err := Run(ctx, cfg, p, t, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
