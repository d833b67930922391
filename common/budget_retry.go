package common

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
)

const defaultBudgetRetryBackoff = time.Second

// SubmissionAttempt tracks elapsed time of one logical request against the caller's original timeout.
type SubmissionAttempt struct {
	start  time.Time
	budget time.Duration
}

func NewSubmissionAttempt(start time.Time, budget time.Duration) SubmissionAttempt {
	return SubmissionAttempt{
		start:  start,
		budget: budget,
	}
}

func (a SubmissionAttempt) Budget() time.Duration {
	return a.budget
}

func (a SubmissionAttempt) Elapsed(now time.Time) time.Duration {
	return now.Sub(a.start)
}

func (a SubmissionAttempt) Remaining(now time.Time) time.Duration {
	return a.budget - a.Elapsed(now)
}

func (a SubmissionAttempt) Exhausted(now time.Time) bool {
	return a.Elapsed(now) >= a.budget
}

type BudgetAttemptFunc[T any] func(ctx context.Context, timeout time.Duration) (T, error)

type budgetRetryConfig struct {
	clock       clock.Clock
	backoff     time.Duration
	isRetryable func(error) bool
	onRetry     func(attempt int, remaining time.Duration, err error)
}

type BudgetRetryOption func(*budgetRetryConfig)

func WithBudgetClock(clk clock.Clock) BudgetRetryOption {
	return func(c *budgetRetryConfig) {
		c.clock = clk
	}
}

func WithBudgetBackoff(backoff time.Duration) BudgetRetryOption {
	return func(c *budgetRetryConfig) {
		c.backoff = backoff
	}
}

func WithBudgetIsRetryable(fn func(error) bool) BudgetRetryOption {
	return func(c *budgetRetryConfig) {
		c.isRetryable = fn
	}
}

// WithBudgetOnRetry registers a hook invoked before every retry, useful for logging.
func WithBudgetOnRetry(fn func(attempt int, remaining time.Duration, err error)) BudgetRetryOption {
	return func(c *budgetRetryConfig) {
		c.onRetry = fn
	}
}

// RetryWithinBudget calls fn with the whole budget and, while the error is retryable and the budget
// is not spent, sleeps a fixed backoff and calls fn again with whatever time is left.
// Non-retryable errors are returned immediately. Once the budget is spent the last error is returned.
func RetryWithinBudget[T any](
	ctx context.Context, budget time.Duration, fn BudgetAttemptFunc[T], opts ...BudgetRetryOption,
) (T, error) {
	config := budgetRetryConfig{
		clock:       clock.New(),
		backoff:     defaultBudgetRetryBackoff,
		isRetryable: func(error) bool { return false },
	}

	for _, opt := range opts {
		opt(&config)
	}

	attempt := NewSubmissionAttempt(config.clock.Now(), budget)

	result, err := fn(ctx, budget)

	for count := 1; err != nil && config.isRetryable(err); count++ {
		if attempt.Exhausted(config.clock.Now()) {
			break
		}

		select {
		case <-ctx.Done():
			return result, err
		case <-config.clock.After(config.backoff):
		}

		remaining := attempt.Remaining(config.clock.Now())
		if remaining <= 0 {
			break
		}

		if config.onRetry != nil {
			config.onRetry(count, remaining, err)
		}

		result, err = fn(ctx, remaining)
	}

	return result, err
}
