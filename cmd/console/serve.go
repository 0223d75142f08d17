package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/outreach-console/internal/console"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API locally",
		Long: `Start the console HTTP server.

Session endpoints live under /session, dashboard endpoints under /dashboard,
Prometheus metrics on /metrics. The server shuts down gracefully on SIGINT
or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags, func(ctx context.Context, a *app) error {
				if host != "" {
					a.cfg.Server.Host = host
				}
				if port != "" {
					a.cfg.Server.Port = port
				}
				if !a.cfg.Logging.Development {
					gin.SetMode(gin.ReleaseMode)
				}

				srv := console.New(console.Deps{
					Config:    a.cfg,
					Session:   a.session,
					API:       a.api,
					Logger:    a.log,
					Metrics:   a.metrics,
					Gatherer:  a.registry,
					Sanitizer: a.sanitizer,
				})
				return srv.Run(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen host (env HOST)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (env PORT)")

	return cmd
}
