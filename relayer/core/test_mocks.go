package core

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
)

type SourceChainMock struct {
	mock.Mock
}

var _ SourceChain = (*SourceChainMock)(nil)

func (m *SourceChainMock) GetCurrentValset(ctx context.Context) (*ValidatorSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*ValidatorSet), args.Error(1) //nolint:forcetypeassert
}

func (m *SourceChainMock) GetValsetRequest(ctx context.Context, nonce uint64) (*ValidatorSet, error) {
	args := m.Called(ctx, nonce)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*ValidatorSet), args.Error(1) //nolint:forcetypeassert
}

func (m *SourceChainMock) GetLatestValsets(ctx context.Context) ([]*ValidatorSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*ValidatorSet), args.Error(1) //nolint:forcetypeassert
}

func (m *SourceChainMock) GetValsetConfirms(ctx context.Context, nonce uint64) ([]*ValsetConfirmation, error) {
	args := m.Called(ctx, nonce)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*ValsetConfirmation), args.Error(1) //nolint:forcetypeassert
}

func (m *SourceChainMock) GetLatestBatches(ctx context.Context) ([]*TransactionBatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*TransactionBatch), args.Error(1) //nolint:forcetypeassert
}

func (m *SourceChainMock) GetBatchConfirms(
	ctx context.Context, nonce uint64, tokenContract string,
) ([]*BatchConfirmation, error) {
	args := m.Called(ctx, nonce, tokenContract)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*BatchConfirmation), args.Error(1) //nolint:forcetypeassert
}

type DestinationChainMock struct {
	mock.Mock
}

var _ DestinationChain = (*DestinationChainMock)(nil)

func (m *DestinationChainMock) GetValsetNonce(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	return args.Get(0).(uint64), args.Error(1) //nolint:forcetypeassert
}

func (m *DestinationChainMock) GetBatchNonce(ctx context.Context, tokenContract string) (uint64, error) {
	args := m.Called(ctx, tokenContract)

	return args.Get(0).(uint64), args.Error(1) //nolint:forcetypeassert
}

func (m *DestinationChainMock) GetAccountSequence(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	return args.Get(0).(uint64), args.Error(1) //nolint:forcetypeassert
}

func (m *DestinationChainMock) GetValsetUpdatedEvent(ctx context.Context, nonce uint64) (*ValidatorSet, error) {
	args := m.Called(ctx, nonce)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*ValidatorSet), args.Error(1) //nolint:forcetypeassert
}

type SubmitterMock struct {
	mock.Mock
}

var _ Submitter = (*SubmitterMock)(nil)

func (m *SubmitterMock) EstimateCost(ctx context.Context, payload *TxPayload) (uint64, error) {
	args := m.Called(ctx, payload)

	return args.Get(0).(uint64), args.Error(1) //nolint:forcetypeassert
}

func (m *SubmitterMock) Submit(ctx context.Context, payload *TxPayload, opts SubmitOptions) (string, error) {
	args := m.Called(ctx, payload, opts)

	return args.String(0), args.Error(1)
}

func (m *SubmitterMock) WaitForInclusion(
	ctx context.Context, txHash string, timeout time.Duration,
) (*types.Receipt, error) {
	args := m.Called(ctx, txHash, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*types.Receipt), args.Error(1) //nolint:forcetypeassert
}

type ValsetFinderMock struct {
	mock.Mock
}

var _ ValsetFinder = (*ValsetFinderMock)(nil)

func (m *ValsetFinderMock) FindLatestValset(ctx context.Context) (*ValidatorSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*ValidatorSet), args.Error(1) //nolint:forcetypeassert
}

type SubmissionJournalMock struct {
	mock.Mock
}

var _ SubmissionJournal = (*SubmissionJournalMock)(nil)

func (m *SubmissionJournalMock) AddSubmission(record *SubmissionRecord) error {
	return m.Called(record).Error(0)
}

func (m *SubmissionJournalMock) UpdateSubmissionStatus(txHash string, status SubmissionStatus) error {
	return m.Called(txHash, status).Error(0)
}

func (m *SubmissionJournalMock) GetSubmission(txHash string) (*SubmissionRecord, error) {
	args := m.Called(txHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*SubmissionRecord), args.Error(1) //nolint:forcetypeassert
}

func (m *SubmissionJournalMock) GetSubmissions(limit int) ([]*SubmissionRecord, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*SubmissionRecord), args.Error(1) //nolint:forcetypeassert
}

type ValsetUpdateRelayerMock struct {
	mock.Mock
}

var _ ValsetUpdateRelayer = (*ValsetUpdateRelayerMock)(nil)

func (m *ValsetUpdateRelayerMock) SendValsetUpdate(
	ctx context.Context, newValset, oldValset *ValidatorSet, confirms []*ValsetConfirmation,
) error {
	return m.Called(ctx, newValset, oldValset, confirms).Error(0)
}

func (m *ValsetUpdateRelayerMock) RelayValsets(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type BatchRelayerMock struct {
	mock.Mock
}

var _ BatchRelayer = (*BatchRelayerMock)(nil)

func (m *BatchRelayerMock) RelayBatches(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
