package recommend

import (
	"context"
	"time"
)

// DefaultMaxAttempts is the retry budget for obtaining a validated
// recommendation.
const DefaultMaxAttempts = 4

// RetryPolicy controls how many completion attempts are made and how
// long to wait between them. It exists so the retry behavior can be
// tuned and tested in isolation from the HTTP call.
type RetryPolicy interface {
	// Attempts returns the total attempt budget (at least 1).
	Attempts() int

	// Wait blocks before the given retry attempt (1-based; never
	// called before the first attempt). It returns early with the
	// context error if ctx is done.
	Wait(ctx context.Context, attempt int) error
}

// FixedRetry is a RetryPolicy with a fixed attempt budget and a
// constant delay between attempts. The zero delay matches the
// original interactive behavior.
type FixedRetry struct {
	MaxAttempts int
	Delay       time.Duration
}

// Attempts returns the attempt budget.
func (r FixedRetry) Attempts() int {
	if r.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return r.MaxAttempts
}

// Wait sleeps for the configured delay, or returns early if the
// context is cancelled.
func (r FixedRetry) Wait(ctx context.Context, attempt int) error {
	if r.Delay <= 0 {
		return nil
	}
	timer := time.NewTimer(r.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
