package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket shared by every call it guards.
type RateLimiter struct {
	rate  float64 // tokens per second
	burst float64

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter allows rate calls per second (rate must be positive) with
// bursts up to burst. A burst below one defaults to one.
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		rate:       rate,
		burst:      float64(burst),
		tokens:     float64(burst),
		lastRefill: time.Now(),
	}
}

// Allow takes a token if one is available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill(time.Now())
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// Wait takes a token, blocking until one accrues or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	d := rl.reserve()
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		rl.cancelReservation()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// reserve takes a token, possibly going into debt, and returns how long
// the caller must wait for that debt to clear.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill(time.Now())
	rl.tokens--
	if rl.tokens >= 0 {
		return 0
	}
	return time.Duration(-rl.tokens / rl.rate * float64(time.Second))
}

func (rl *RateLimiter) cancelReservation() {
	rl.mu.Lock()
	rl.tokens++
	rl.mu.Unlock()
}

func (rl *RateLimiter) refill(now time.Time) {
	rl.tokens += now.Sub(rl.lastRefill).Seconds() * rl.rate
	rl.lastRefill = now
	if rl.tokens > rl.burst {
		rl.tokens = rl.burst
	}
}

// WithRateLimit delays each call until the limiter grants a token. A call
// whose context ends while waiting returns the context error. A nil
// limiter is a pass-through.
func WithRateLimit[I, O any](rl *RateLimiter) Middleware[I, O] {
	return func(next RequestResponse[I, O]) RequestResponse[I, O] {
		if rl == nil {
			return next
		}
		return &rateLimited[I, O]{next: next, rl: rl}
	}
}

type rateLimited[I, O any] struct {
	next RequestResponse[I, O]
	rl   *RateLimiter
}

func (r *rateLimited[I, O]) Name() string                         { return r.next.Name() }
func (r *rateLimited[I, O]) IsAvailable(ctx context.Context) bool { return r.next.IsAvailable(ctx) }

func (r *rateLimited[I, O]) Execute(ctx context.Context, input I) (O, error) {
	if err := r.rl.Wait(ctx); err != nil {
		var zero O
		return zero, err
	}
	return r.next.Execute(ctx, input)
}
