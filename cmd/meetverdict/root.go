package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/meetverdict/app"
	"github.com/kbukum/meetverdict/config"
	"github.com/kbukum/meetverdict/version"
)

type rootOptions struct {
	configFile string
	envFile    string
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "meetverdict",
		Short: "Decide whether a meeting was worth it",
		Long: `meetverdict sends a recording bot into a video meeting, waits for the
transcript, and asks a language model whether the meeting was worth it and
whether a follow-up should be scheduled.`,
		Version:       version.GetShortVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config.yml (default: search ./cmd/meetverdict, ./config, .)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newStartCommand(opts))
	cmd.AddCommand(newWatchCommand(opts))
	cmd.AddCommand(newAnalyzeCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadConfig resolves configuration honoring the persistent flags.
func (o *rootOptions) loadConfig() (*app.Config, error) {
	var loaderOpts []config.LoaderOption
	if o.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(o.envFile))
	}
	cfg, err := app.Load(loaderOpts...)
	if err != nil {
		return nil, err
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newApp loads configuration and wires the application.
func (o *rootOptions) newApp(ctx context.Context) (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return newAppFromConfig(ctx, cfg)
}

func newAppFromConfig(ctx context.Context, cfg *app.Config) (*app.App, error) {
	return app.New(ctx, cfg)
}
