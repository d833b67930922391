package core

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
)

type RelayerManager interface {
	Start() error
	Stop() error
}

type Relayer interface {
	Start(ctx context.Context)
	Execute(ctx context.Context) error
}

// SourceChain reads attested valsets, batches and their confirmations from the peggy module
type SourceChain interface {
	GetCurrentValset(ctx context.Context) (*ValidatorSet, error)
	GetValsetRequest(ctx context.Context, nonce uint64) (*ValidatorSet, error)
	GetLatestValsets(ctx context.Context) ([]*ValidatorSet, error)
	GetValsetConfirms(ctx context.Context, nonce uint64) ([]*ValsetConfirmation, error)
	GetLatestBatches(ctx context.Context) ([]*TransactionBatch, error)
	GetBatchConfirms(ctx context.Context, nonce uint64, tokenContract string) ([]*BatchConfirmation, error)
}

// DestinationChain reads state of the Peggy contract and the relayer account
type DestinationChain interface {
	GetValsetNonce(ctx context.Context) (uint64, error)
	GetBatchNonce(ctx context.Context, tokenContract string) (uint64, error)
	GetAccountSequence(ctx context.Context) (uint64, error)
	// GetValsetUpdatedEvent returns the members the contract stored for nonce, nil when no event is found
	GetValsetUpdatedEvent(ctx context.Context, nonce uint64) (*ValidatorSet, error)
}

type Submitter interface {
	EstimateCost(ctx context.Context, payload *TxPayload) (uint64, error)
	Submit(ctx context.Context, payload *TxPayload, opts SubmitOptions) (string, error)
	// WaitForInclusion returns the receipt even when the transaction reverted
	WaitForInclusion(ctx context.Context, txHash string, timeout time.Duration) (*types.Receipt, error)
}

// ValsetFinder resolves the valset the Peggy contract currently verifies signatures against
type ValsetFinder interface {
	FindLatestValset(ctx context.Context) (*ValidatorSet, error)
}

type ValsetUpdateRelayer interface {
	SendValsetUpdate(
		ctx context.Context, newValset, oldValset *ValidatorSet, confirms []*ValsetConfirmation,
	) error
	RelayValsets(ctx context.Context) error
}

type BatchRelayer interface {
	RelayBatches(ctx context.Context) error
}

// SubmissionJournal records dispatched transactions, it is never consulted for relaying decisions
type SubmissionJournal interface {
	AddSubmission(record *SubmissionRecord) error
	UpdateSubmissionStatus(txHash string, status SubmissionStatus) error
	GetSubmission(txHash string) (*SubmissionRecord, error)
	GetSubmissions(limit int) ([]*SubmissionRecord, error)
}

type Database interface {
	SubmissionJournal
	Init(filePath string) error
	Close() error
}
