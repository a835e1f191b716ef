package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/meetverdict/transcript"
)

func newAnalyzeCommand(opts *rootOptions) *cobra.Command {
	var renderOnly bool

	cmd := &cobra.Command{
		Use:   "analyze <transcript.json>",
		Short: "Analyze a downloaded transcript file",
		Long: `Analyze a downloaded transcript file: a JSON array of speaker chunks as
delivered by the recording provider.

With --render-only the readable transcript is printed and no model is called.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading transcript: %w", err)
			}
			chunks, err := transcript.ParseArtifact(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if renderOnly {
				_, err := fmt.Fprintln(out, transcript.Render(transcript.Segment(chunks)))
				return err
			}

			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			return a.RunTask(cmd.Context(), func(ctx context.Context) error {
				d, err := a.Orchestrator.Analyze(ctx, chunks)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, d.Summary())
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(d)
			})
		},
	}

	cmd.Flags().BoolVar(&renderOnly, "render-only", false, "Print the readable transcript without calling the model")
	return cmd
}
