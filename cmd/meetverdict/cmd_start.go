package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStartCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "start <meeting-url>",
		Short: "Send a recording bot into a meeting and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.RunTask(cmd.Context(), func(ctx context.Context) error {
				botID, err := a.Orchestrator.StartJob(ctx, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), botID)
				return err
			})
		},
	}
}
