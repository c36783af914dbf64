package cli

import (
	"github.com/spf13/cobra"

	"cpusim/internal/workload"
)

func newGenerateCmd() *cobra.Command {
	var (
		seed uint64
		size int
		out  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a workload and write it as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			wcfg := cfg.Workload
			if cmd.Flags().Changed("seed") {
				wcfg.Seed = seed
			}
			if cmd.Flags().Changed("size") {
				wcfg.Size = size
			}
			tmpl, err := workload.Generate(wcfg)
			if err != nil {
				return err
			}
			logger.Debug("workload generated", "processes", tmpl.Len(), "seed", wcfg.Seed)
			if out != "" {
				return tmpl.Save(out)
			}
			return writeTemplate(cmd.OutOrStdout(), tmpl)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Workload seed (0 picks one from the clock)")
	cmd.Flags().IntVarP(&size, "size", "n", 20, "Number of processes")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}
