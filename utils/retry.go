package utils

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks errors that are worth retrying, such as an overloaded
// upstream. Anything not implementing it (or returning false) fails the call
// immediately.
type RetryableError interface {
	error
	Retryable() bool
}

// RetryPolicy retries a call with exponential backoff. The zero value is not
// usable; call sites share DefaultRetryPolicy unless a test overrides delays.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy is the policy used for all external model calls:
// 3 attempts with 2s, 4s, 8s waits between them.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
	Multiplier:  2,
}

// Do runs call until it succeeds, returns a non-retryable error, exhausts
// MaxAttempts, or the context is done. The last error is returned as-is.
func (p RetryPolicy) Do(ctx context.Context, call func() error) error {
	delay := p.BaseDelay

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = call()
		if err == nil {
			return nil
		}

		var retryable RetryableError
		if !errors.As(err, &retryable) || !retryable.Retryable() {
			return err
		}
		if attempt == p.MaxAttempts {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * p.Multiplier)
	}

	return err
}
