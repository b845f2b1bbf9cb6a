package retry

import (
	"context"
	"fmt"
	"time"
)

// ExhaustedError is returned when every attempt failed. It carries the last
// cause so callers can still classify the underlying failure.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do runs op up to attempts times, sleeping a fixed delay between attempts.
// No backoff, no jitter: every attempt is from scratch. The first success wins;
// once all attempts are spent the last failure is wrapped in *ExhaustedError.
// Context cancellation interrupts the inter-attempt sleep.
func Do[T any](ctx context.Context, attempts int, delay time.Duration, op func(context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, &ExhaustedError{Attempts: i, Err: ctx.Err()}
			}
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return zero, &ExhaustedError{Attempts: attempts, Err: lastErr}
}
