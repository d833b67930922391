package common

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
)

const (
	defaultRetryCount    = 3
	defaultRetryWaitTime = 500 * time.Millisecond
)

type retryConfig struct {
	retryCount       uint64
	retryWaitTime    time.Duration
	isRetryableError func(error) bool
}

type RetryOption func(*retryConfig)

func WithRetryCount(retryCount uint64) RetryOption {
	return func(c *retryConfig) {
		c.retryCount = retryCount
	}
}

func WithRetryWaitTime(retryWaitTime time.Duration) RetryOption {
	return func(c *retryConfig) {
		c.retryWaitTime = retryWaitTime
	}
}

func WithIsRetryableError(fn func(error) bool) RetryOption {
	return func(c *retryConfig) {
		c.isRetryableError = fn
	}
}

// ExecuteWithRetry runs a single read a bounded number of times with constant backoff.
// Context cancellation is never retried.
func ExecuteWithRetry[T any](
	ctx context.Context, handler func(context.Context) (T, error), opts ...RetryOption,
) (result T, err error) {
	config := retryConfig{
		retryCount:    defaultRetryCount,
		retryWaitTime: defaultRetryWaitTime,
		isRetryableError: func(err error) bool {
			return !IsContextDoneErr(err)
		},
	}

	for _, opt := range opts {
		opt(&config)
	}

	backoff := retry.WithMaxRetries(config.retryCount, retry.NewConstant(config.retryWaitTime))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var handlerErr error

		result, handlerErr = handler(ctx)
		if handlerErr != nil && config.isRetryableError(handlerErr) {
			return retry.RetryableError(handlerErr)
		}

		return handlerErr
	})

	return result, err
}

// RetryForever keeps calling fn with a fixed interval until it succeeds or ctx is done.
func RetryForever(ctx context.Context, interval time.Duration, fn func(context.Context) error) error {
	return retry.Do(ctx, retry.NewConstant(interval), func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return retry.RetryableError(err)
		}

		return nil
	})
}

func IsContextDoneErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
