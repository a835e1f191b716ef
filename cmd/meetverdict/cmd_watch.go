package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kbukum/meetverdict/poller"
)

func newWatchCommand(opts *rootOptions) *cobra.Command {
	var interval time.Duration
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch <bot-id>",
		Short: "Poll a bot until its transcript is analyzed",
		Long: `Poll a bot until its transcript is analyzed, printing each status.

The decision is printed as JSON once available. Ctrl-C stops polling and
discards any in-flight result.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if interval > 0 {
				cfg.Poll.Interval = interval
			}
			if timeout > 0 {
				cfg.Poll.Timeout = timeout
			}
			a, err := newAppFromConfig(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			started := time.Now()
			return a.RunTask(cmd.Context(), func(ctx context.Context) error {
				res, err := a.Orchestrator.Run(ctx, args[0], func(r *poller.Result) {
					printStatus(out, started, r)
				})
				if err != nil {
					return err
				}
				printStatus(out, started, res)
				return printFinal(out, res)
			})
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Pause between polls (default from config, 2.5s)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Give up after this long (default: no limit)")
	return cmd
}

func printStatus(w io.Writer, started time.Time, r *poller.Result) {
	line := fmt.Sprintf("[%s] %s (%s)", humanize.RelTime(started, time.Now(), "elapsed", ""), r.State, r.Status)
	if r.Hint != "" {
		line += " " + r.Hint
	}
	_, _ = fmt.Fprintln(w, line)
}

// printFinal prints the decision, or reports a malformed artifact as an error.
func printFinal(w io.Writer, r *poller.Result) error {
	if r.Decision == nil {
		return fmt.Errorf("%s: %s", r.Code, r.Error)
	}
	_, _ = fmt.Fprintln(w, r.Decision.Summary())
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Decision)
}
