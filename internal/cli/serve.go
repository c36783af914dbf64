package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cpusim/internal/api"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve simulations over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := api.New(cfg, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				if err := srv.Shutdown(); err != nil {
					logger.Error("shutdown", "error", err)
				}
			}()
			return srv.Listen(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":9095", "Listen address")
	return cmd
}

