package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum wall-clock interval between calls.
type Limiter struct {
	interval time.Duration
	limiter  *rate.Limiter
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source and sleeper, for tests.
func WithClock(now func() time.Time, sleep func(context.Context, time.Duration) error) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// New returns a limiter allowing one call per interval. A non-positive
// interval disables waiting.
func New(interval time.Duration, opts ...Option) *Limiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	l := &Limiter{
		interval: interval,
		limiter:  rate.NewLimiter(limit, 1),
		now:      time.Now,
		sleep:    sleepWithContext,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Interval returns the configured spacing.
func (l *Limiter) Interval() time.Duration {
	if l == nil {
		return 0
	}
	return l.interval
}

// Wait blocks until the next call may proceed and returns how long it slept.
func (l *Limiter) Wait(ctx context.Context) (time.Duration, error) {
	if l == nil || l.interval <= 0 {
		return 0, nil
	}
	now := l.now()
	reservation := l.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return 0, nil
	}
	delay := reservation.DelayFrom(now)
	if delay <= 0 {
		return 0, nil
	}
	if err := l.sleep(ctx, delay); err != nil {
		reservation.CancelAt(l.now())
		return 0, err
	}
	return delay, nil
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
