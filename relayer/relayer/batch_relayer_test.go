package relayer

import (
	"context"
	"errors"
	"testing"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type batchRelayerMocks struct {
	source      *core.SourceChainMock
	destination *core.DestinationChainMock
	submitter   *core.SubmitterMock
	finder      *core.ValsetFinderMock
}

func newTestBatchRelayer(config *core.RelayerConfiguration) (*BatchRelayerImpl, *batchRelayerMocks) {
	m := &batchRelayerMocks{
		source:      &core.SourceChainMock{},
		destination: &core.DestinationChainMock{},
		submitter:   &core.SubmitterMock{},
		finder:      &core.ValsetFinderMock{},
	}

	r := NewBatchRelayer(config, ceiling, m.source, m.destination, m.submitter, m.finder, nil,
		hclog.NewNullLogger())

	return r, m
}

func withNonce(nonce uint64) interface{} {
	return mock.MatchedBy(func(opts core.SubmitOptions) bool {
		return opts.Nonce != nil && *opts.Nonce == nonce && opts.GasLimit == gasLimit
	})
}

func isBatchPayload(payload *core.TxPayload) bool {
	return payload.Method == core.SubmitBatchMethod
}

func TestRelayBatches(t *testing.T) {
	ctx := context.Background()
	testErr := errors.New("test err")
	includedReceipt := &types.Receipt{Status: types.ReceiptStatusSuccessful}

	t.Run("only batches newer than the contract are submitted", func(t *testing.T) {
		b1, b2, b3 := testBatch(5, tokenX), testBatch(3, tokenX), testBatch(10, tokenY)

		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{b1, b2, b3}, nil).Once()
		m.destination.On("GetAccountSequence", ctx).Return(uint64(40), nil).Once()
		m.destination.On("GetBatchNonce", ctx, tokenX).Return(uint64(4), nil)
		m.destination.On("GetBatchNonce", ctx, tokenY).Return(uint64(10), nil)
		m.source.On("GetBatchConfirms", ctx, uint64(5), tokenX).Return(fullBatchConfirms(b1), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(3), tokenX).Return(fullBatchConfirms(b2), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(10), tokenY).Return(fullBatchConfirms(b3), nil).Once()
		m.finder.On("FindLatestValset", ctx).Return(testValset(2), nil).Once()
		m.submitter.On("EstimateCost", ctx, mock.MatchedBy(isBatchPayload)).Return(gasLimit, nil).Once()
		m.submitter.On("Submit", ctx, mock.MatchedBy(isBatchPayload), withNonce(40)).Return("0xb1", nil).Once()
		m.submitter.On("WaitForInclusion", ctx, "0xb1", mock.Anything).Return(includedReceipt, nil).Once()

		require.NoError(t, r.RelayBatches(ctx))

		m.submitter.AssertExpectations(t)
		m.submitter.AssertNumberOfCalls(t, "Submit", 1)
		m.finder.AssertNumberOfCalls(t, "FindLatestValset", 1)
	})

	t.Run("failed confirmation fetch does not stop other batches", func(t *testing.T) {
		b1, b3 := testBatch(5, tokenX), testBatch(10, tokenY)

		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{b1, b3}, nil).Once()
		m.destination.On("GetAccountSequence", ctx).Return(uint64(40), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(5), tokenX).Return(nil, testErr).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(10), tokenY).Return(fullBatchConfirms(b3), nil).Once()
		m.destination.On("GetBatchNonce", ctx, tokenY).Return(uint64(9), nil).Once()
		m.finder.On("FindLatestValset", ctx).Return(testValset(2), nil).Once()
		m.submitter.On("EstimateCost", ctx, mock.Anything).Return(gasLimit, nil).Once()
		m.submitter.On("Submit", ctx, mock.Anything, withNonce(40)).Return("0xb3", nil).Once()
		m.submitter.On("WaitForInclusion", ctx, "0xb3", mock.Anything).Return(includedReceipt, nil).Once()

		require.NoError(t, r.RelayBatches(ctx))

		m.submitter.AssertExpectations(t)
		m.destination.AssertNotCalled(t, "GetBatchNonce", ctx, tokenX)
	})

	t.Run("account nonces follow batch order", func(t *testing.T) {
		first, second := testBatch(7, tokenX), testBatch(8, tokenX)

		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{second, first}, nil).Once()
		m.destination.On("GetAccountSequence", ctx).Return(uint64(12), nil).Once()
		m.destination.On("GetBatchNonce", ctx, tokenX).Return(uint64(6), nil)
		m.source.On("GetBatchConfirms", ctx, uint64(7), tokenX).Return(fullBatchConfirms(first), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(8), tokenX).Return(fullBatchConfirms(second), nil).Once()
		m.finder.On("FindLatestValset", ctx).Return(testValset(2), nil)
		m.submitter.On("EstimateCost", ctx, mock.Anything).Return(gasLimit, nil)
		m.submitter.On("Submit", ctx, mock.Anything, withNonce(12)).Return("0x07", nil).Once()
		m.submitter.On("Submit", ctx, mock.Anything, withNonce(13)).Return("0x08", nil).Once()
		m.submitter.On("WaitForInclusion", ctx, "0x07", mock.Anything).Return(includedReceipt, nil).Once()
		m.submitter.On("WaitForInclusion", ctx, "0x08", mock.Anything).
			Return(&types.Receipt{Status: types.ReceiptStatusFailed}, nil).Once()

		require.NoError(t, r.RelayBatches(ctx))

		m.submitter.AssertExpectations(t)

		calls := make([]uint64, 0, 2)

		for _, call := range m.submitter.Calls {
			if call.Method == "Submit" {
				payload, _ := call.Arguments.Get(1).(*core.TxPayload)
				require.NotNil(t, payload)

				opts, _ := call.Arguments.Get(2).(core.SubmitOptions)
				calls = append(calls, *opts.Nonce)
			}
		}

		require.Equal(t, []uint64{12, 13}, calls)
	})

	t.Run("failed submission does not consume an account nonce", func(t *testing.T) {
		first, second := testBatch(7, tokenX), testBatch(3, tokenY)

		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{first, second}, nil).Once()
		m.destination.On("GetAccountSequence", ctx).Return(uint64(12), nil).Once()
		m.destination.On("GetBatchNonce", ctx, tokenX).Return(uint64(6), nil)
		m.destination.On("GetBatchNonce", ctx, tokenY).Return(uint64(0), nil)
		m.source.On("GetBatchConfirms", ctx, uint64(7), tokenX).Return(fullBatchConfirms(first), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(3), tokenY).Return(fullBatchConfirms(second), nil).Once()
		m.finder.On("FindLatestValset", ctx).Return(testValset(2), nil)
		m.submitter.On("EstimateCost", ctx, mock.Anything).Return(gasLimit, nil)
		m.submitter.On("Submit", ctx, mock.Anything, withNonce(12)).Return("", testErr).Once()
		m.submitter.On("Submit", ctx, mock.Anything, withNonce(12)).Return("0x07", nil).Once()
		m.submitter.On("WaitForInclusion", ctx, "0x07", mock.Anything).Return(nil, testErr).Once()

		require.NoError(t, r.RelayBatches(ctx))

		m.submitter.AssertExpectations(t)
	})

	t.Run("per batch failures are skipped", func(t *testing.T) {
		b1, b2, b3 := testBatch(5, tokenX), testBatch(6, tokenY), testBatch(9, tokenY)

		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{b1, b2, b3}, nil).Once()
		m.destination.On("GetAccountSequence", ctx).Return(uint64(1), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(5), tokenX).Return(fullBatchConfirms(b1), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(6), tokenY).Return(fullBatchConfirms(b2)[:1], nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(9), tokenY).Return(fullBatchConfirms(b3), nil).Once()
		m.destination.On("GetBatchNonce", ctx, tokenX).Return(uint64(0), testErr).Once()
		m.destination.On("GetBatchNonce", ctx, tokenY).Return(uint64(1), nil)
		m.finder.On("FindLatestValset", ctx).Return(testValset(2), nil).Once()
		m.finder.On("FindLatestValset", ctx).Return(nil, core.ErrValsetNotFound).Once()

		require.NoError(t, r.RelayBatches(ctx))

		m.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
		m.finder.AssertNumberOfCalls(t, "FindLatestValset", 2)
	})

	t.Run("gas estimation failure skips the batch", func(t *testing.T) {
		b1 := testBatch(5, tokenX)

		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{b1}, nil).Once()
		m.destination.On("GetAccountSequence", ctx).Return(uint64(1), nil).Once()
		m.source.On("GetBatchConfirms", ctx, uint64(5), tokenX).Return(fullBatchConfirms(b1), nil).Once()
		m.destination.On("GetBatchNonce", ctx, tokenX).Return(uint64(4), nil).Once()
		m.finder.On("FindLatestValset", ctx).Return(testValset(2), nil).Once()
		m.submitter.On("EstimateCost", ctx, mock.Anything).Return(uint64(0), testErr).Once()

		require.NoError(t, r.RelayBatches(ctx))

		m.submitter.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("pass level reads fail", func(t *testing.T) {
		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return(nil, testErr).Once()

		require.ErrorIs(t, r.RelayBatches(ctx), testErr)

		r, m = newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{testBatch(1, tokenX)}, nil).Once()
		m.destination.On("GetAccountSequence", ctx).Return(uint64(0), testErr).Once()

		require.ErrorIs(t, r.RelayBatches(ctx), testErr)
		m.source.AssertNotCalled(t, "GetBatchConfirms", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no batches", func(t *testing.T) {
		r, m := newTestBatchRelayer(testRelayerConfig())
		m.source.On("GetLatestBatches", ctx).Return([]*core.TransactionBatch{}, nil).Once()

		require.NoError(t, r.RelayBatches(ctx))

		m.destination.AssertNotCalled(t, "GetAccountSequence", mock.Anything)
	})
}
