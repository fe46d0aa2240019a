package cli

import (
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/metalca/internal/config"
	"github.com/rshade/metalca/internal/engine"
	"github.com/rshade/metalca/internal/logging"
	"github.com/rshade/metalca/internal/server"
)

// NewServeCmd creates the serve command, which runs the HTTP API until
// interrupted.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the assessment HTTP API",
		Long: `Serves the HTTP API:

  POST /v1/assessments        assess one scenario (JSON body)
  POST /v1/assessments/batch  assess a scenario document
  GET  /v1/materials          reference catalog
  GET  /healthz               liveness
  GET  /metrics               Prometheus metrics

The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  # Listen on the configured address
  metalca serve

  # Listen on all interfaces
  metalca serve --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.GetGlobalConfig().Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			srvLogger := logging.ComponentLogger(*logging.FromContext(ctx), "server")
			assessor := engine.New(
				engine.WithConcurrency(config.GetConcurrency()),
				engine.WithBatchSize(config.GetBatchSize()),
			)
			srv := server.New(assessor, srvLogger, cmd.Root().Version)

			return srv.ListenAndServe(ctx, server.Options{
				Addr:              cfg.Addr,
				ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
				ShutdownTimeout:   time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
				Ready: func(a net.Addr) {
					cmd.PrintErrf("Listening on http://%s\n", a)
				},
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "listen address (default from config)")
	return cmd
}
