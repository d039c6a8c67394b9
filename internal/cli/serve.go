package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/aurora/internal/infrastructure/server"
)

func newServeCommand(opts *options) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP and WebSocket API",
		Long: `Serve the desktop over HTTP.

Filesystem, session, application and settings endpoints are served with gin.
Terminal sessions can be streamed over a WebSocket at /sessions/:id/stream and
Prometheus metrics are exposed at /metrics.

SIGINT and SIGTERM shut the server down gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}
			logger, err := opts.logger(cfg, false)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runErr := srv.Run(ctx)
			if runErr != nil {
				logger.Error("Server error", zap.Error(runErr))
			}
			if err := srv.Close(); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides AURORA_PORT)")
	return cmd
}
