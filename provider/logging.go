package provider

import (
	"context"
	"time"

	apperrors "github.com/kbukum/meetverdict/errors"
	"github.com/kbukum/meetverdict/logger"
)

// WithLogging logs each Execute call with provider name and duration.
// Retryable failures are logged at warn, everything else at error.
func WithLogging[I, O any](log *logger.Logger) Middleware[I, O] {
	return func(inner RequestResponse[I, O]) RequestResponse[I, O] {
		return &loggingRR[I, O]{inner: inner, log: log}
	}
}

type loggingRR[I, O any] struct {
	inner RequestResponse[I, O]
	log   *logger.Logger
}

func (l *loggingRR[I, O]) Name() string                         { return l.inner.Name() }
func (l *loggingRR[I, O]) IsAvailable(ctx context.Context) bool { return l.inner.IsAvailable(ctx) }

func (l *loggingRR[I, O]) Execute(ctx context.Context, input I) (O, error) {
	start := time.Now()
	output, err := l.inner.Execute(ctx, input)

	fields := logger.Fields(
		"provider", l.inner.Name(),
		logger.FieldDuration, time.Since(start).String(),
	)
	log := l.log.WithContext(ctx)
	switch {
	case err == nil:
		log.Debug("provider execute ok", fields)
	case isRetryable(err):
		fields[logger.FieldError] = err.Error()
		log.Warn("provider execute not ready", fields)
	default:
		fields[logger.FieldError] = err.Error()
		log.Error("provider execute failed", fields)
	}
	return output, err
}

func isRetryable(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return ok && appErr.Retryable
}
