package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	delays []time.Duration
}

func (r *recorder) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func testPolicy(rec *recorder) Policy {
	p := Default()
	p.Sleep = rec.sleep
	return p
}

func TestDoSucceedsFirstTry(t *testing.T) {
	rec := &recorder{}
	attempts, err := testPolicy(rec).Do(context.Background(), func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, rec.delays)
}

func TestDoTransientExhaustion(t *testing.T) {
	rec := &recorder{}
	calls := 0
	attempts, err := testPolicy(rec).Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, DefaultMaxAttempts, calls)
	assert.Equal(t, DefaultMaxAttempts, attempts)
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, rec.delays)
}

func TestDoOtherFailureUsesFixedDelay(t *testing.T) {
	rec := &recorder{}
	sentinel := errors.New("bad request")
	calls := 0
	_, err := testPolicy(rec).Do(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, rec.delays)
}

func TestDoRecoversAfterTransientFailure(t *testing.T) {
	rec := &recorder{}
	calls := 0
	attempts, err := testPolicy(rec).Do(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return Transient(errors.New("slow down"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, []time.Duration{5 * time.Second}, rec.delays)
}

func TestDoStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Policy{MaxAttempts: 5, BaseDelay: time.Hour, FixedDelay: time.Hour}
	calls := 0
	attempts, err := p.Do(ctx, func(context.Context) error {
		calls++
		return errors.New("quota exceeded")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, attempts)
}

func TestDoOnRetry(t *testing.T) {
	rec := &recorder{}
	p := testPolicy(rec)
	p.MaxAttempts = 2

	var seen []bool
	p.OnRetry = func(_ int, _ time.Duration, transient bool, _ error) {
		seen = append(seen, transient)
	}
	_, _ = p.Do(context.Background(), func(context.Context) error { return errors.New("503 UNAVAILABLE") })

	assert.Equal(t, []bool{true}, seen)
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("Error 429"), true},
		{errors.New("Quota exceeded for metric"), true},
		{errors.New("RESOURCE_EXHAUSTED"), true},
		{errors.New("service UNAVAILABLE"), true},
		{errors.New("invalid argument"), false},
		{fmt.Errorf("wrapped: %w", Transient(errors.New("x"))), true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTransient(tt.err), "%v", tt.err)
	}
}
