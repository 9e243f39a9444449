package main

import (
	"fmt"

	"instawatch/config"
	"instawatch/server"

	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the status report over HTTP",
		Long: `Start an HTTP server exposing:

  GET /healthz        liveness
  GET /status         status summary
  GET /status/report  full report (same document as --json)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(opts)
			if cmd.Flags().Changed("addr") {
				cfg.ListenAddr = addr
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Serving InstaPy status at http://%s (Ctrl+C to stop)\n", cfg.ListenAddr)
			return server.Run(cmd.Context(), cfg.ListenAddr, newMonitor(cfg))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultListenAddr, "Address to listen on (overrides INSTAPY_LISTEN_ADDR)")
	return cmd
}
