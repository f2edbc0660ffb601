package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast() []Option {
	return []Option{WithInitialDelay(time.Millisecond), WithMaxDelay(5 * time.Millisecond)}
}

func TestDo_Success(t *testing.T) {
	t.Parallel()
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_SuccessAfterRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}, fast()...)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_MaxRetries(t *testing.T) {
	t.Parallel()
	attempts := 0
	persistent := errors.New("persistent error")
	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return persistent
	}, append(fast(), WithMaxRetries(2))...)

	require.Error(t, err)
	assert.ErrorIs(t, err, persistent)
	assert.Contains(t, err.Error(), "operation failed after 3 attempts")
	assert.Equal(t, 3, attempts)
}

func TestDo_ZeroRetriesReturnsErrorUnchanged(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	err := Do(context.Background(), func(context.Context) error { return cause }, WithMaxRetries(0))
	assert.Same(t, cause, err)

	err = Do(context.Background(), func(context.Context) error { return cause }, WithMaxRetries(-3))
	assert.Same(t, cause, err)
}

func TestDo_RetryIf(t *testing.T) {
	t.Parallel()
	retryable := errors.New("throttled")
	permanent := errors.New("access denied")
	calls := 0

	err := Do(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return retryable
		}
		return permanent
	}, append(fast(), WithRetryIf(func(err error) bool { return errors.Is(err, retryable) }))...)

	assert.Same(t, permanent, err, "non-retryable errors are returned unchanged")
	assert.Equal(t, 2, calls)
}

func TestDo_OnRetry(t *testing.T) {
	t.Parallel()
	var seen []int
	_ = Do(context.Background(), func(context.Context) error {
		return errors.New("x")
	}, append(fast(), WithMaxRetries(2), WithOnRetry(func(next int, _ time.Duration, _ error) {
		seen = append(seen, next)
	}))...)

	assert.Equal(t, []int{2, 3}, seen)
}

func TestDo_ContextCancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	err := Do(ctx, func(context.Context) error {
		attempts++
		cancel()
		return errors.New("temporary error")
	}, WithInitialDelay(time.Second))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "temporary error")
	assert.Equal(t, 1, attempts)
}

func TestDo_FatalError(t *testing.T) {
	t.Parallel()
	attempts := 0
	cause := errors.New("invalid input")

	err := Do(context.Background(), func(context.Context) error {
		attempts++
		return Fatal(cause)
	}, fast()...)

	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestDo_BackoffCapped(t *testing.T) {
	t.Parallel()
	var delays []time.Duration
	_ = Do(context.Background(), func(context.Context) error {
		return errors.New("x")
	},
		WithMaxRetries(4),
		WithInitialDelay(time.Millisecond),
		WithMultiplier(3),
		WithMaxDelay(5*time.Millisecond),
		WithOnRetry(func(_ int, d time.Duration, _ error) { delays = append(delays, d) }),
	)

	assert.Equal(t, []time.Duration{
		time.Millisecond, 3 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond,
	}, delays)
}

func TestFatal(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Fatal(nil))

	cause := errors.New("x")
	fatal := Fatal(cause)
	assert.Equal(t, "x", fatal.Error())
	assert.True(t, IsFatal(fatal))
	assert.False(t, IsFatal(cause))
	assert.ErrorIs(t, fatal, cause)
}
