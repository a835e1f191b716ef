package main

import (
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /api/recall/start   start a bot for {"meeting_url": ...}
  GET  /api/recall/status  one poll tick for ?bot_id=...
  GET  /api/analyze        liveness and model configuration
  POST /api/analyze        analyze {"transcript": [...]}
  GET  /health, /info, /alive

Shuts down gracefully on SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.Serve(cmd.Context())
		},
	}
}
