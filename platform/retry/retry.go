// Package retry retries startup operations against dependencies that may
// still be coming up (database, redis, object storage).
// This is part of the platform layer and contains no business logic.
package retry

import (
	"context"
	"errors"
	"time"

	"skrytki/platform/logger"
)

// Do calls fn up to attempts times, sleeping attempt² × baseDelay between
// tries. It stops early when ctx is done.
func Do(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
