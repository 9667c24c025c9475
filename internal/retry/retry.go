// Package retry bounds the attempts made at a single external call.
package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 5 * time.Second
	DefaultFixedDelay  = 2 * time.Second
)

// ErrExhausted wraps the last error once every attempt has failed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy retries rate-limited failures with a linearly growing delay
// (attempt × BaseDelay) and any other failure with FixedDelay, making at most
// MaxAttempts calls.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	FixedDelay  time.Duration

	// Sleep waits between attempts. Defaults to a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry, when set, is called before each wait.
	OnRetry func(attempt int, delay time.Duration, transient bool, err error)
}

// Default returns the policy used when nothing is configured.
func Default() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		FixedDelay:  DefaultFixedDelay,
	}
}

// Do calls fn until it succeeds or the attempts run out. It returns the
// number of calls made. The error of the final attempt is wrapped with
// ErrExhausted; a cancelled context ends the wait early with ctx.Err().
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) (int, error) {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		if attempt == attempts {
			break
		}

		transient := IsTransient(err)
		delay := p.FixedDelay
		if transient {
			delay = time.Duration(attempt) * p.BaseDelay
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, transient, err)
		}
		if err := p.sleep(ctx, delay); err != nil {
			return attempt, err
		}
	}

	return attempts, fmt.Errorf("%w after %d attempts: %w", ErrExhausted, attempts, lastErr)
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as rate-limited or otherwise temporary.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

var transientMarkers = []string{"429", "quota", "resource_exhausted", "503", "unavailable"}

// IsTransient reports whether err was marked Transient or its message names
// a rate limit or temporary unavailability.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var te *transientError
	if errors.As(err, &te) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
