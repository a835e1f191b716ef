package observability

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config is the observability section of the application config.
type Config struct {
	Enabled    bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool          `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64       `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Setup installs exporters when cfg.Enabled and builds the service metrics
// on the resulting global meter. The returned shutdown flushes exporters.
func Setup(ctx context.Context, cfg Config, service, version, environment string) (*Metrics, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		m, err := NewMetrics(Meter(instrumentationName))
		return m, noop, err
	}

	tp, err := InitTracer(ctx, TracerConfig{
		ServiceName: service, ServiceVersion: version, Environment: environment,
		Endpoint: cfg.Endpoint, Insecure: cfg.Insecure, SampleRate: cfg.SampleRate,
	})
	if err != nil {
		return nil, noop, err
	}
	mp, err := InitMeter(ctx, MeterConfig{
		ServiceName: service, ServiceVersion: version, Environment: environment,
		Endpoint: cfg.Endpoint, Insecure: cfg.Insecure, Interval: cfg.Interval,
	})
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, noop, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	m, err := NewMetrics(Meter(instrumentationName))
	if err != nil {
		return nil, shutdown, fmt.Errorf("creating metrics: %w", err)
	}
	return m, shutdown, nil
}
