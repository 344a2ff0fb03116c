package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pinchtab/ariaquery/internal/server"
)

type serveFlags struct {
	bind string
	port string
}

func newServeCmd(a *app) *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the query API over HTTP and websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.bind != "" {
				a.cfg.Bind = flags.bind
			}
			if flags.port != "" {
				a.cfg.Port = flags.port
			}
			if err := os.MkdirAll(a.cfg.StateDir, 0755); err != nil {
				return fmt.Errorf("create state dir: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			srv := server.New(a.cfg, server.WithCapture(a.capture), server.WithVersion(version))
			return srv.ListenAndServe(ctx)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.bind, "bind", "", "Listen address (default from config)")
	f.StringVar(&flags.port, "port", "", "Listen port (default from config)")
	return cmd
}
