package cli

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cpusim/internal/sched"
	"cpusim/internal/workload"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeWorkload(t *testing.T) string {
	t.Helper()
	tmpl, err := workload.NewTemplate([]sched.Descriptor{
		{ID: 1, Burst: 100, Priority: 3},
		{ID: 2, Burst: 50, Priority: 1},
	})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "workload.yml")
	require.NoError(t, tmpl.Save(path))
	return path
}

func TestRunAllPolicies(t *testing.T) {
	out, err := execute(t, "run", "--seed", "12", "--quiet", "--table")
	require.NoError(t, err)
	for _, name := range []string{"First Come First Served", "Shortest Job First", "Round Robin"} {
		require.Contains(t, out, "Using scheduler: "+name)
	}
	require.Equal(t, 3, strings.Count(out, "Number of CPUs: 2"))
	require.NotContains(t, out, "[time ")
	require.Contains(t, out, "Initial wait")
}

func TestRunSinglePolicyFromWorkloadFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("engine:\n  processors: 1\n"), 0o644))

	out, err := execute(t, "--config", cfgPath, "run", "-p", "fcfs", "-w", writeWorkload(t))
	require.NoError(t, err)
	require.Contains(t, out, "[time 0ms] Process 1 created (requires 100ms CPU time, priority is 3)")
	require.Contains(t, out, "[time 150ms] Process 2 completed its CPU burst (turnaround time 150ms, initial wait time 100ms, total wait time 100ms)")
	require.Contains(t, out, "Number of CPUs: 1")
	require.Contains(t, out, "Turnaround time: min 100ms; avg 125.000ms; max 150ms")
}

func TestRunWritesCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "events.csv")
	_, err := execute(t, "run", "-p", "rr", "--mode", "arrival-gated", "--seed", "4", "-q", "--csv", csvPath)
	require.NoError(t, err)

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(rows), 20)
	require.Equal(t, "run_id", rows[0][0])
	require.Equal(t, "Round Robin", rows[1][1])
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestRunFlushesCSVWhenSummaryFails(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "events.csv")
	cmd := NewRootCmd()
	cmd.SetOut(brokenWriter{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "-p", "fcfs", "-q", "-w", writeWorkload(t), "--csv", csvPath})
	require.ErrorContains(t, cmd.Execute(), "write summary")

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5, "header plus two created and two completed events")
	require.Equal(t, "First Come First Served", rows[1][1])
}

func TestRunRejectsBadInput(t *testing.T) {
	_, err := execute(t, "run", "-p", "lottery")
	require.ErrorIs(t, err, sched.ErrUnknownPolicy)

	_, err = execute(t, "run", "--mode", "whenever")
	require.Error(t, err)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "absent.yml"), "run")
	require.Error(t, err)
}

func TestGenerate(t *testing.T) {
	out, err := execute(t, "generate", "--seed", "9", "-n", "5")
	require.NoError(t, err)
	tmpl, err := workload.Parse([]byte(out))
	require.NoError(t, err)
	require.Equal(t, 5, tmpl.Len())

	again, err := execute(t, "generate", "--seed", "9", "-n", "5")
	require.NoError(t, err)
	require.Equal(t, out, again)

	path := filepath.Join(t.TempDir(), "w.yml")
	_, err = execute(t, "generate", "--seed", "9", "-n", "5", "-o", path)
	require.NoError(t, err)
	loaded, err := workload.Load(path)
	require.NoError(t, err)
	require.Equal(t, tmpl.Descriptors(), loaded.Descriptors())
}
