package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"cpusim/internal/config"
	"cpusim/internal/logging"
)

var (
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	cfg    config.Config
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for the cpusim CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cpusim",
		Short: "Tick-based CPU scheduling simulator",
		Long:  "cpusim replays a synthetic workload through FCFS, SJF and round-robin scheduling and compares turnaround and wait times.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") || cfg.Log.Level == "" {
				cfg.Log.Level = flagLogLevel
			}
			if cmd.Flags().Changed("log-format") || cfg.Log.Format == "" {
				cfg.Log.Format = flagLogFormat
			}
			if flagDebug {
				cfg.Log.Level = "debug"
			}
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (defaults only when empty)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newGenerateCmd(),
		newServeCmd(),
	)
	return root
}
