package sched

import (
	"errors"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrNoData is returned by Stats when no process has finished.
var ErrNoData = errors.New("no finished processes")

// Metric summarises one measured quantity over the finished set.
type Metric struct {
	Min  int     `json:"min"`
	Mean float64 `json:"avg"`
	Max  int     `json:"max"`
}

// Summary aggregates turnaround and wait times over the finished set.
type Summary struct {
	Processors  int    `json:"processors"`
	Finished    int    `json:"finished"`
	Turnaround  Metric `json:"turnaround"`
	InitialWait Metric `json:"initial_wait"`
	TotalWait   Metric `json:"total_wait"`
}

// Stats summarises every finished process. It returns ErrNoData while the
// finished set is empty.
func (s *Scheduler) Stats() (Summary, error) {
	snaps := make([]ProcessStats, len(s.finished))
	for i, p := range s.finished {
		snaps[i] = p.Snapshot()
	}
	return Summarize(len(s.cpus), snaps)
}

// Summarize computes a Summary from finished process snapshots.
func Summarize(processors int, finished []ProcessStats) (Summary, error) {
	if len(finished) == 0 {
		return Summary{Processors: processors}, ErrNoData
	}

	turnaround := make([]float64, len(finished))
	initial := make([]float64, len(finished))
	total := make([]float64, len(finished))
	for i, p := range finished {
		turnaround[i] = float64(p.Turnaround)
		initial[i] = float64(p.InitialWait)
		total[i] = float64(p.TotalWait)
	}

	return Summary{
		Processors:  processors,
		Finished:    len(finished),
		Turnaround:  metric(turnaround),
		InitialWait: metric(initial),
		TotalWait:   metric(total),
	}, nil
}

func metric(xs []float64) Metric {
	return Metric{
		Min:  int(floats.Min(xs)),
		Mean: stat.Mean(xs, nil),
		Max:  int(floats.Max(xs)),
	}
}
