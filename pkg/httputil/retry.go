package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network errors, 5xx and 429 responses) with this
// type so that [Retry] attempts the operation again.
type RetryableError struct {
	Err error

	// After overrides the backoff delay when the server named one.
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Policy bounds a retry loop.
type Policy struct {
	Attempts int
	Delay    time.Duration // initial delay, doubled after each failure
}

// DefaultPolicy makes 3 attempts starting at 500ms.
var DefaultPolicy = Policy{Attempts: 3, Delay: 500 * time.Millisecond}

// NoRetry makes a single attempt.
var NoRetry = Policy{Attempts: 1}

// Retry executes fn up to p.Attempts times with exponential backoff.
// Only errors wrapped with [RetryableError] are retried; other errors are
// returned immediately. Returns the last error if all attempts fail, or
// ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return unwrapRetryable(lastErr)
}

// unwrapRetryable strips the retry marker so callers see the coded error.
func unwrapRetryable(err error) error {
	var re *RetryableError
	if errors.As(err, &re) {
		return re.Err
	}
	return err
}
