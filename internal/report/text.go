// Package report renders scheduler events and run summaries.
package report

import (
	"errors"
	"fmt"
	"io"

	"cpusim/internal/sched"
)

// FormatEvent renders ev as a single log line, without a trailing newline.
func FormatEvent(ev sched.Event) string {
	switch ev.Kind {
	case sched.EventCreated:
		return fmt.Sprintf("[time %dms] Process %d created (requires %dms CPU time, priority is %d)",
			ev.Time, ev.Process, ev.Remaining, ev.Priority)
	case sched.EventContextSwitch:
		return fmt.Sprintf("[time %dms] Context switch (swapping out process %d for process %d in CPU %s)",
			ev.Time, ev.Outgoing, ev.Process, ev.CPULabel())
	case sched.EventCompleted:
		return fmt.Sprintf("[time %dms] Process %d completed its CPU burst (turnaround time %dms, initial wait time %dms, total wait time %dms)",
			ev.Time, ev.Process, ev.Turnaround, ev.InitialWait, ev.TotalWait)
	default:
		return fmt.Sprintf("[time %dms] %s process %d", ev.Time, ev.Kind, ev.Process)
	}
}

// NewTextPrinter returns an observer writing one line per event to w.
func NewTextPrinter(w io.Writer) sched.Observer {
	return func(ev sched.Event) {
		fmt.Fprintln(w, FormatEvent(ev))
	}
}

// WriteSummary writes the aggregate statistics of one run.
func WriteSummary(w io.Writer, sum sched.Summary) error {
	if _, err := fmt.Fprintf(w, "Number of CPUs: %d\n", sum.Processors); err != nil {
		return err
	}
	if sum.Finished == 0 {
		_, err := fmt.Fprintln(w, "Turnaround time: no data\nInitial wait time: no data\nTotal wait time: no data")
		return err
	}
	var errs []error
	for _, row := range []struct {
		label string
		m     sched.Metric
	}{
		{"Turnaround time", sum.Turnaround},
		{"Initial wait time", sum.InitialWait},
		{"Total wait time", sum.TotalWait},
	} {
		_, err := fmt.Fprintf(w, "%s: min %dms; avg %.3fms; max %dms\n", row.label, row.m.Min, row.m.Mean, row.m.Max)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
