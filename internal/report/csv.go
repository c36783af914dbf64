// internal/report/csv.go

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"cpusim/internal/sched"
)

var csvHeader = []string{
	"run_id", "policy", "tick", "event", "cpu", "process_id", "outgoing_id",
	"burst", "remaining", "priority", "turnaround", "initial_wait", "total_wait",
}

// CSVLog appends every event of one or more runs to a CSV file.
type CSVLog struct {
	file   io.Closer
	writer *csv.Writer
	err    error
}

// CreateCSVLog creates (or truncates) path and writes the header.
func CreateCSVLog(path string) (*CSVLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	l, err := NewCSVLog(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	l.file = f
	return l, nil
}

// NewCSVLog writes the header to w and returns a log appending to it.
func NewCSVLog(w io.Writer) (*CSVLog, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, err
	}
	cw.Flush()
	return &CSVLog{writer: cw}, cw.Error()
}

// Write appends one event row. The first write error is kept and returned by Close.
func (l *CSVLog) Write(runID, policy string, ev sched.Event) {
	if l.err != nil {
		return
	}
	outgoing := ""
	if ev.Kind == sched.EventContextSwitch {
		outgoing = strconv.Itoa(int(ev.Outgoing))
	}
	rec := []string{
		runID,
		policy,
		strconv.Itoa(ev.Time),
		ev.Kind.String(),
		ev.CPULabel(),
		strconv.Itoa(int(ev.Process)),
		outgoing,
		strconv.Itoa(ev.Burst),
		strconv.Itoa(ev.Remaining),
		strconv.Itoa(ev.Priority),
		strconv.Itoa(ev.Turnaround),
		strconv.Itoa(ev.InitialWait),
		strconv.Itoa(ev.TotalWait),
	}
	if err := l.writer.Write(rec); err != nil {
		l.err = fmt.Errorf("write csv row: %w", err)
	}
}

// WriteResult appends every event recorded in events.
func (l *CSVLog) WriteResult(runID, policy string, events []sched.Event) {
	for _, ev := range events {
		l.Write(runID, policy, ev)
	}
}

// Close flushes buffered rows and closes the file, if the log owns one.
func (l *CSVLog) Close() error {
	l.writer.Flush()
	if l.err == nil {
		l.err = l.writer.Error()
	}
	if l.file != nil {
		if err := l.file.Close(); err != nil && l.err == nil {
			l.err = err
		}
	}
	return l.err
}
