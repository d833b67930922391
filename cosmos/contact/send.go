package contact

import (
	"context"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/common"
)

const txsRoute = "txs"

// SendTransaction broadcasts tx and waits at most timeout for the answer.
// A block mode transaction that cannot be confirmed is retried until timeout is spent.
func (c *Contact) SendTransaction(ctx context.Context, tx Transaction, timeout time.Duration) (*TxSendResponse, error) {
	if err := tx.Validate(); err != nil {
		return nil, &JsonRpcError{Kind: BadInput, Message: err.Error(), Err: err}
	}

	if timeout <= 0 {
		timeout = c.timeout
	}

	if tx.Mode != BroadcastModeBlock {
		return c.sendOnce(ctx, tx, timeout)
	}

	return c.RetryOnBlock(ctx, tx, timeout)
}

// RetryOnBlock repeats the broadcast with one second pauses while the failure is transient,
// every attempt receives only the time left of timeout
func (c *Contact) RetryOnBlock(ctx context.Context, tx Transaction, timeout time.Duration) (*TxSendResponse, error) {
	return common.RetryWithinBudget(ctx, timeout,
		func(ctx context.Context, timeLeft time.Duration) (*TxSendResponse, error) {
			return c.sendOnce(ctx, tx, timeLeft)
		},
		common.WithBudgetClock(c.clock),
		common.WithBudgetBackoff(c.retryInterval),
		common.WithBudgetIsRetryable(func(err error) bool {
			return !isParentDone(ctx, err) && IsRetryableError(err)
		}),
		common.WithBudgetOnRetry(func(attempt int, remaining time.Duration, err error) {
			c.logger.Debug("retrying tx broadcast", "attempt", attempt, "remaining", remaining, "err", err)
		}),
	)
}

func (c *Contact) sendOnce(ctx context.Context, tx Transaction, timeout time.Duration) (*TxSendResponse, error) {
	resp, err := requestMethod[TxSendResponse](ctx, c, txsRoute, tx, timeout, maxResponseSize)
	if err != nil {
		return nil, err
	}

	if resp.Code != 0 {
		return nil, &JsonRpcError{
			Kind:    ResponseError,
			Code:    resp.Code,
			Message: resp.RawLog,
			Data:    resp.Codespace,
		}
	}

	c.logger.Debug("tx broadcasted", "hash", resp.TxHash, "height", resp.Height)

	return &resp, nil
}
