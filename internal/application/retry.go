package application

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/euserv-renew/internal/ports"
)

// Attempt is the outcome of a bounded retry: the value of the first
// successful call, or the last error once attempts ran out.
type Attempt[T any] struct {
	Value    T
	Attempts int
	Err      error
}

func (a Attempt[T]) OK() bool {
	return a.Err == nil
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err: err}
}

// Retry calls op up to maxAttempts times and sleeps delay on clock between
// failures. A cancelled context stops further attempts but never interrupts
// a sleep that already started.
func Retry[T any](ctx context.Context, clock ports.Clock, maxAttempts int, delay time.Duration, op func(ctx context.Context, attempt int) (T, error)) Attempt[T] {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var result Attempt[T]
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result.Attempts = attempt

		value, err := op(ctx, attempt)
		if err == nil {
			result.Value = value
			result.Err = nil
			return result
		}
		result.Err = err

		var permanent permanentError
		if errors.As(err, &permanent) {
			result.Err = permanent.err
			return result
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.Err = errors.Join(err, ctxErr)
			return result
		}
		if attempt < maxAttempts {
			clock.Sleep(delay)
		}
	}

	return result
}
