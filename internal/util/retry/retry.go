package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how a backend call is retried. Delays double after
// each attempt, capped at MaxDelay. Zero fields fall back to the
// defaults in Do.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// Retryable reports whether an error is worth another attempt.
	// Errors it rejects are returned to the caller unmodified. A nil
	// predicate retries every error.
	Retryable func(error) bool
}

// Do runs op until it succeeds, fails with a non-retryable error, the
// attempts are exhausted, or ctx is cancelled.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}
	delay := p.InitialDelay
	if delay <= 0 {
		delay = time.Second
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		lastErr = err

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("cancelled after %d attempts: %w", attempt, ctx.Err())
		case <-time.After(delay):
			delay *= 2
			if delay > maxDelay {
				delay = maxDelay
			}
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}
