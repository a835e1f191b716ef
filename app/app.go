package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/meetverdict/api"
	"github.com/kbukum/meetverdict/decision"
	"github.com/kbukum/meetverdict/llm"
	_ "github.com/kbukum/meetverdict/llm/ollama" // register dialect
	_ "github.com/kbukum/meetverdict/llm/openai" // register dialect
	"github.com/kbukum/meetverdict/logger"
	"github.com/kbukum/meetverdict/observability"
	"github.com/kbukum/meetverdict/poller"
	"github.com/kbukum/meetverdict/provider"
	"github.com/kbukum/meetverdict/recall"
	"github.com/kbukum/meetverdict/server"
	"github.com/kbukum/meetverdict/version"
)

// Hook is a lifecycle callback run during shutdown.
type Hook func(ctx context.Context) error

// App holds the wired application.
type App struct {
	Cfg          *Config
	Logger       *logger.Logger
	Metrics      *observability.Metrics
	Recall       *recall.Client
	Analyzer     *decision.LLMAnalyzer // nil when no model is configured
	Orchestrator *poller.Orchestrator

	gracefulTimeout time.Duration
	onStop          []Hook
}

// Option customizes App construction.
type Option func(*App)

// WithLogger replaces the logger built from config.
func WithLogger(log *logger.Logger) Option {
	return func(a *App) { a.Logger = log }
}

// WithGracefulTimeout bounds shutdown, overriding shutdown_timeout.
func WithGracefulTimeout(d time.Duration) Option {
	return func(a *App) { a.gracefulTimeout = d }
}

// New wires every component from cfg. Missing provider or model
// credentials do not fail construction.
func New(ctx context.Context, cfg *Config, opts ...Option) (*App, error) {
	a := &App{Cfg: cfg, gracefulTimeout: DefaultShutdownTimeout}
	if cfg.ShutdownTimeout > 0 {
		a.gracefulTimeout = cfg.ShutdownTimeout
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		logger.Init(cfg.Logging, cfg.Name)
		a.Logger = logger.GetGlobalLogger()
	}

	metrics, shutdown, err := observability.Setup(ctx, cfg.Observability, cfg.Name, version.GetShortVersion(), cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("observability setup: %w", err)
	}
	a.Metrics = metrics
	a.OnStop(shutdown)

	a.Recall, err = recall.New(cfg.Recall, recall.WithLogger(a.Logger), recall.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	var analyzer decision.Analyzer
	if cfg.LLM.Configured() {
		adapter, err := llm.New(cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("llm adapter: %w", err)
		}
		a.Analyzer = decision.NewLLMAnalyzer(adapter,
			provider.WithLogging[string, json.RawMessage](a.Logger),
			provider.WithTracing[string, json.RawMessage]("llm"),
			provider.WithMetrics[string, json.RawMessage](metrics),
		)
		analyzer = a.Analyzer
	} else {
		a.Logger.Warn("no model configured; analysis disabled", logger.Fields("env", poller.EnvLLMKey))
	}

	a.Orchestrator = poller.New(a.Recall, analyzer,
		poller.WithLogger(a.Logger),
		poller.WithMetrics(metrics),
		poller.WithConfig(cfg.Poll),
	)

	a.Logger.Info("application wired", logger.Fields(
		"version", version.GetShortVersion(),
		"environment", cfg.Environment,
		"recall_configured", a.Recall.Configured(),
		"llm_dialect", cfg.LLM.Dialect,
		"llm_configured", analyzer != nil,
	))
	return a, nil
}

// OnStop registers hooks run in order during shutdown.
func (a *App) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// HealthCheckers lists the components reported on /health.
func (a *App) HealthCheckers() []observability.HealthChecker {
	checkers := []observability.HealthChecker{a.Recall}
	if a.Analyzer != nil {
		checkers = append(checkers, a.Analyzer)
	}
	return checkers
}

// NewServer builds the HTTP server with middleware, probe endpoints and
// the api routes.
func (a *App) NewServer() *server.Server {
	srv := server.New(a.Cfg.Server, a.Logger)
	srv.ApplyMiddleware(a.Metrics)
	srv.RegisterDefaultEndpoints(a.Cfg.Name, a.HealthCheckers()...)
	api.NewHandler(a.Orchestrator).Register(srv.GinEngine())
	return srv
}

// Serve runs the HTTP server until SIGINT/SIGTERM or ctx is done, then
// shuts down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := a.NewServer()
	if err := srv.Start(ctx); err != nil {
		_ = a.Shutdown()
		return err
	}
	a.OnStop(srv.Stop)

	a.WaitForSignal(ctx)
	return a.Shutdown()
}

// RunTask runs a finite task, cancelling it on SIGINT/SIGTERM, and then
// shuts down.
func (a *App) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if err := a.Shutdown(); err != nil && taskErr == nil {
		return err
	}
	return taskErr
}

// WaitForSignal blocks until SIGINT/SIGTERM or ctx is done.
func (a *App) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
		return nil
	}
}

// Shutdown runs stop hooks in reverse registration order within the
// graceful timeout. Every hook runs; the first error is returned.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var firstErr error
	for i := len(a.onStop) - 1; i >= 0; i-- {
		if err := a.onStop[i](ctx); err != nil {
			a.Logger.Error("stop hook failed", logger.ErrorFields("shutdown", err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	a.onStop = nil
	return firstErr
}
