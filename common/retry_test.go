package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExecuteWithRetry(t *testing.T) {
	t.Run("eventually succeeds", func(t *testing.T) {
		calls := 0

		res, err := ExecuteWithRetry(context.Background(), func(context.Context) (uint64, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("connection refused")
			}

			return 42, nil
		}, WithRetryWaitTime(time.Millisecond))

		require.NoError(t, err)
		require.Equal(t, uint64(42), res)
		require.Equal(t, 3, calls)
	})

	t.Run("gives up after retry count", func(t *testing.T) {
		calls := 0

		_, err := ExecuteWithRetry(context.Background(), func(context.Context) (uint64, error) {
			calls++

			return 0, errors.New("connection refused")
		}, WithRetryWaitTime(time.Millisecond), WithRetryCount(2))

		require.ErrorContains(t, err, "connection refused")
		require.Equal(t, 3, calls)
	})

	t.Run("non retryable error", func(t *testing.T) {
		calls := 0
		errBad := errors.New("execution reverted")

		_, err := ExecuteWithRetry(context.Background(), func(context.Context) (uint64, error) {
			calls++

			return 0, errBad
		}, WithRetryWaitTime(time.Millisecond), WithIsRetryableError(func(err error) bool {
			return !errors.Is(err, errBad)
		}))

		require.ErrorIs(t, err, errBad)
		require.Equal(t, 1, calls)
	})
}

func TestRetryForever(t *testing.T) {
	calls := 0

	err := RetryForever(context.Background(), time.Millisecond, func(context.Context) error {
		calls++
		if calls < 4 {
			return errors.New("not yet")
		}

		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 4, calls)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = RetryForever(ctx, time.Millisecond, func(context.Context) error {
		return errors.New("never")
	})

	require.Error(t, err)
}

func TestIsContextDoneErr(t *testing.T) {
	require.True(t, IsContextDoneErr(context.Canceled))
	require.True(t, IsContextDoneErr(errors.Join(errors.New("x"), context.DeadlineExceeded)))
	require.False(t, IsContextDoneErr(errors.New("x")))
}
