// Package pacing spaces out calls to external backends.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Every returns a limiter that admits one call per interval. The first call
// passes immediately. A non-positive interval disables pacing, which is what
// tests use.
func Every(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// None never blocks.
func None() *rate.Limiter { return Every(0) }

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
