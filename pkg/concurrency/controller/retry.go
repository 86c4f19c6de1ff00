package controller

import (
	"context"
	"errors"
	"time"

	tgerrors "github.com/vnykmshr/taskgate/pkg/common/errors"
	"github.com/vnykmshr/taskgate/pkg/common/validation"
)

// Backoff returns the pause inserted after the given failed attempt
// (1-based). The schedule is pure doubling of baseDelay with no jitter:
// baseDelay, 2*baseDelay, 4*baseDelay, and so on. It is a pure function
// of its arguments so retry timing can be unit-tested directly.
func Backoff(attempt int, baseDelay time.Duration) time.Duration {
	if attempt < 1 || baseDelay <= 0 {
		return 0
	}
	// Clamp the shift; anything past this has long exceeded any
	// realistic retry budget.
	if attempt > 32 {
		attempt = 32
	}
	return baseDelay << uint(attempt-1)
}

func (c *concurrencyController[T]) ExecuteWithRetry(ctx context.Context, id string, task Task[T], maxRetries int, baseDelay time.Duration) (T, error) {
	var zero T
	if err := validation.ValidateNonNegative("controller", "maxRetries", maxRetries); err != nil {
		return zero, err
	}
	if err := validation.ValidateNonNegativeDuration("controller", "baseDelay", baseDelay); err != nil {
		return zero, err
	}

	attempts := maxRetries + 1
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, Backoff(attempt-1, baseDelay)); err != nil {
				return zero, err
			}
		}

		value, err := c.Execute(ctx, id, task)
		if err == nil {
			return value, nil
		}
		if errors.Is(err, tgerrors.ErrStopped) {
			// Retrying a stopped controller cannot succeed.
			return zero, err
		}

		// Keep the underlying cause; the exhaustion error re-wraps it
		// with the attempt count.
		var terr *tgerrors.TaskError
		if errors.As(err, &terr) {
			lastErr = terr.Err
		} else {
			lastErr = err
		}
	}

	return zero, &tgerrors.RetryError{ID: id, Attempts: attempts, Err: lastErr}
}
