package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"cpusim/internal/sched"
	"cpusim/internal/sim"
)

// WriteComparison renders one row per run so policies can be compared side
// by side.
func WriteComparison(w io.Writer, results []sim.Result) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		sum := res.Summary
		if sum.Finished == 0 {
			rows = append(rows, []string{res.Policy, string(res.Mode), strconv.Itoa(res.Ticks), "0", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			res.Policy,
			string(res.Mode),
			strconv.Itoa(res.Ticks),
			strconv.Itoa(sum.Finished),
			metricCell(sum.Turnaround),
			metricCell(sum.InitialWait),
			metricCell(sum.TotalWait),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Mode", "Ticks", "Finished", "Turnaround", "Initial wait", "Total wait"})
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
}

// metricCell renders a metric as "min / avg / max".
func metricCell(m sched.Metric) string {
	return fmt.Sprintf("%d / %.3f / %d", m.Min, m.Mean, m.Max)
}
