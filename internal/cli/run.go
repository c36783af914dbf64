package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cpusim/internal/report"
	"cpusim/internal/sched"
	"cpusim/internal/sim"
	"cpusim/internal/workload"
)

func newRunCmd() *cobra.Command {
	var (
		policyName   string
		mode         string
		seed         uint64
		workloadPath string
		csvPath      string
		quiet        bool
		table        bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a workload under one or all policies",
		Example: `  cpusim run
  cpusim run --policy rr --mode arrival-gated --seed 7
  cpusim run --workload workload.yml --csv events.csv --table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("mode") {
				cfg.Mode = mode
			}
			if cmd.Flags().Changed("seed") {
				cfg.Workload.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			policies, err := resolvePolicies(policyName, cfg.Engine)
			if err != nil {
				return err
			}
			tmpl, err := loadOrGenerate(workloadPath, cfg.Workload)
			if err != nil {
				return err
			}

			var csvLog *report.CSVLog
			if csvPath != "" {
				if csvLog, err = report.CreateCSVLog(csvPath); err != nil {
					return fmt.Errorf("open csv log: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			opts := sim.Options{
				Mode:         cfg.RunMode(),
				TickInterval: cfg.TickInterval(),
				Logger:       logger,
			}
			if !quiet {
				opts.Observers = []sched.Observer{report.NewTextPrinter(out)}
			}

			var results []sim.Result
			for _, p := range policies {
				fmt.Fprintf(out, "Using scheduler: %s\n", p.Name())
				res, err := sim.Run(cmd.Context(), cfg.Engine, p, tmpl, opts)
				if err != nil {
					if csvLog != nil {
						csvLog.Close()
					}
					return err
				}
				if csvLog != nil {
					csvLog.WriteResult(res.RunID, res.Policy, res.Events)
				}
				fmt.Fprintln(out)
				if err := report.WriteSummary(out, res.Summary); err != nil {
					if csvLog != nil {
						csvLog.Close()
					}
					return fmt.Errorf("write summary: %w", err)
				}
				fmt.Fprintln(out)
				results = append(results, res)
			}

			if table {
				report.WriteComparison(out, results)
			}
			if csvLog != nil {
				if err := csvLog.Close(); err != nil {
					return fmt.Errorf("write csv log: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&policyName, "policy", "p", "all", "Policy to run: "+strings.Join(sched.PolicyNames(), ", ")+" or all")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(sim.ModeAllAtOnce), "Run mode: all-at-once or arrival-gated")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Workload seed (0 picks one from the clock)")
	cmd.Flags().StringVarP(&workloadPath, "workload", "w", "", "YAML workload file instead of a generated one")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write every event to this CSV file")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print summaries")
	cmd.Flags().BoolVar(&table, "table", false, "Print a comparison table after all runs")
	return cmd
}

func resolvePolicies(name string, engine sched.Config) ([]sched.Policy, error) {
	if strings.EqualFold(name, "all") || name == "" {
		return sched.Policies(engine), nil
	}
	p, err := sched.PolicyByName(name, engine)
	if err != nil {
		return nil, err
	}
	return []sched.Policy{p}, nil
}

func loadOrGenerate(path string, wcfg workload.Config) (workload.Template, error) {
	if path != "" {
		return workload.Load(path)
	}
	return workload.Generate(wcfg)
}

// writeTemplate writes t as YAML to w.
func writeTemplate(w io.Writer, t workload.Template) error {
	data, err := t.Marshal()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
