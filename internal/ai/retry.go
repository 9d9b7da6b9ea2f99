package ai

import (
	"context"
	"time"
)

// SleepFunc waits for the given duration. Tests substitute a recording fake.
type SleepFunc func(d time.Duration)

// RetryWithBackoff runs op up to maxAttempts times, doubling baseDelay after
// each failure. It returns nil on the first success, the last error once
// attempts are exhausted, and the context error if ctx is cancelled between
// attempts. A nil sleep uses a context-aware timer wait.
func RetryWithBackoff(ctx context.Context, op func() error, maxAttempts int, baseDelay time.Duration, sleep SleepFunc) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	var lastErr error
	delay := baseDelay
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		if sleep != nil {
			sleep(delay)
		} else {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		delay *= 2
	}
	return lastErr
}
