package report

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cpusim/internal/sched"
	"cpusim/internal/sim"
)

func TestFormatEvent(t *testing.T) {
	require.Equal(t,
		"[time 0ms] Process 4 created (requires 120ms CPU time, priority is 2)",
		FormatEvent(sched.Event{Time: 0, Kind: sched.EventCreated, Process: 4, Burst: 200, Remaining: 120, Priority: 2}))
	require.Equal(t,
		"[time 100ms] Context switch (swapping out process 1 for process 2 in CPU B)",
		FormatEvent(sched.Event{Time: 100, Kind: sched.EventContextSwitch, CPU: 1, Process: 2, Outgoing: 1}))
	require.Equal(t,
		"[time 165ms] Process 2 completed its CPU burst (turnaround time 165ms, initial wait time 115ms, total wait time 115ms)",
		FormatEvent(sched.Event{Time: 165, Kind: sched.EventCompleted, Process: 2, Turnaround: 165, InitialWait: 115, TotalWait: 115}))
}

func TestTextPrinter(t *testing.T) {
	var buf bytes.Buffer
	printer := NewTextPrinter(&buf)
	printer(sched.Event{Kind: sched.EventCreated, Process: 1, Remaining: 5})
	printer(sched.Event{Time: 5, Kind: sched.EventCompleted, Process: 1, Turnaround: 5})
	require.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, sched.Summary{
		Processors:  2,
		Finished:    3,
		Turnaround:  sched.Metric{Min: 100, Mean: 125.5, Max: 150},
		InitialWait: sched.Metric{Min: 0, Mean: 1.0 / 3, Max: 1},
		TotalWait:   sched.Metric{Min: 0, Mean: 50, Max: 100},
	}))
	require.Equal(t, `Number of CPUs: 2
Turnaround time: min 100ms; avg 125.500ms; max 150ms
Initial wait time: min 0ms; avg 0.333ms; max 1ms
Total wait time: min 0ms; avg 50.000ms; max 100ms
`, buf.String())

	buf.Reset()
	require.NoError(t, WriteSummary(&buf, sched.Summary{Processors: 1}))
	require.Contains(t, buf.String(), "Turnaround time: no data")
}

func TestCSVLog(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewCSVLog(&buf)
	require.NoError(t, err)

	l.Write("run-1", "Round Robin", sched.Event{Time: 100, Kind: sched.EventContextSwitch, CPU: 0, Process: 2, Outgoing: 0, Burst: 50, Remaining: 50})
	l.WriteResult("run-1", "Round Robin", []sched.Event{
		{Time: 165, Kind: sched.EventCompleted, Process: 2, Burst: 50, Turnaround: 165, InitialWait: 115, TotalWait: 115},
	})
	require.NoError(t, l.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, []string{"run-1", "Round Robin", "100", "ContextSwitch", "A", "2", "0", "50", "50", "0", "0", "0", "0"}, rows[1])
	require.Equal(t, "", rows[2][6], "outgoing id is only set on context switches")
	require.Equal(t, "165", rows[2][10])
}

func TestCreateCSVLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	l, err := CreateCSVLog(path)
	require.NoError(t, err)
	l.Write("r", "p", sched.Event{Kind: sched.EventCreated, Process: 1})
	require.NoError(t, l.Close())

	_, err = CreateCSVLog(filepath.Join(t.TempDir(), "missing", "events.csv"))
	require.Error(t, err)
}

func TestWriteComparison(t *testing.T) {
	var buf bytes.Buffer
	WriteComparison(&buf, []sim.Result{
		{Policy: "First Come First Served", Mode: sim.ModeAllAtOnce, Ticks: 151, Summary: sched.Summary{
			Processors: 1, Finished: 2,
			Turnaround: sched.Metric{Min: 100, Mean: 125, Max: 150},
		}},
		{Policy: "Round Robin", Mode: sim.ModeArrivalGated},
	})
	out := buf.String()
	require.Contains(t, out, "First Come First Served")
	require.Contains(t, out, "100 / 125.000 / 150")
	require.Contains(t, out, "Round Robin")
	require.Contains(t, out, "Initial wait")
}
