package relayer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRelayerExecute(t *testing.T) {
	ctx := context.Background()
	valsetErr := errors.New("valset err")
	batchErr := errors.New("batch err")

	t.Run("runs both passes", func(t *testing.T) {
		valsetRelayer := &core.ValsetUpdateRelayerMock{}
		batchRelayer := &core.BatchRelayerMock{}

		valsetRelayer.On("RelayValsets", ctx).Return(nil).Once()
		batchRelayer.On("RelayBatches", ctx).Return(nil).Once()

		r := NewRelayer(testRelayerConfig(), valsetRelayer, batchRelayer, hclog.NewNullLogger())

		require.NoError(t, r.Execute(ctx))
		valsetRelayer.AssertExpectations(t)
		batchRelayer.AssertExpectations(t)
	})

	t.Run("valset failure does not stop batches", func(t *testing.T) {
		valsetRelayer := &core.ValsetUpdateRelayerMock{}
		batchRelayer := &core.BatchRelayerMock{}

		valsetRelayer.On("RelayValsets", ctx).Return(valsetErr).Once()
		batchRelayer.On("RelayBatches", ctx).Return(batchErr).Once()

		r := NewRelayer(testRelayerConfig(), valsetRelayer, batchRelayer, hclog.NewNullLogger())
		err := r.Execute(ctx)

		require.ErrorIs(t, err, valsetErr)
		require.ErrorIs(t, err, batchErr)
		require.ErrorContains(t, err, "valset pass")
		require.ErrorContains(t, err, "batch pass")
	})

	t.Run("disabled passes are skipped", func(t *testing.T) {
		valsetRelayer := &core.ValsetUpdateRelayerMock{}
		batchRelayer := &core.BatchRelayerMock{}

		batchRelayer.On("RelayBatches", ctx).Return(nil).Once()

		config := testRelayerConfig()
		config.RelayValsets = false

		r := NewRelayer(config, valsetRelayer, batchRelayer, hclog.NewNullLogger())

		require.NoError(t, r.Execute(ctx))
		valsetRelayer.AssertNotCalled(t, "RelayValsets", mock.Anything)

		config.RelayBatches = false

		require.NoError(t, r.Execute(ctx))
		batchRelayer.AssertNumberOfCalls(t, "RelayBatches", 1)
	})

	t.Run("cancelled context stops after the valset pass", func(t *testing.T) {
		cancelledCtx, cancel := context.WithCancel(ctx)
		cancel()

		valsetRelayer := &core.ValsetUpdateRelayerMock{}
		batchRelayer := &core.BatchRelayerMock{}

		valsetRelayer.On("RelayValsets", cancelledCtx).Return(nil).Once()

		r := NewRelayer(testRelayerConfig(), valsetRelayer, batchRelayer, hclog.NewNullLogger())

		require.ErrorIs(t, r.Execute(cancelledCtx), context.Canceled)
		batchRelayer.AssertNotCalled(t, "RelayBatches", mock.Anything)
	})
}

func TestRelayerStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	valsetRelayer := &core.ValsetUpdateRelayerMock{}
	batchRelayer := &core.BatchRelayerMock{}

	valsetRelayer.On("RelayValsets", ctx).Return(nil)
	var passes atomic.Int32

	batchRelayer.On("RelayBatches", ctx).Return(errors.New("batch err")).Run(func(mock.Arguments) {
		passes.Add(1)
	})

	r := NewRelayer(testRelayerConfig(), valsetRelayer, batchRelayer, hclog.NewNullLogger())
	done := make(chan struct{})

	go func() {
		r.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return passes.Load() >= 2
	}, 5*time.Second, 5*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("relayer did not stop")
	}
}
