package relayer

import (
	"context"
	"fmt"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/Ethernal-Tech/peggy-relayer/telemetry"
	"github.com/hashicorp/go-hclog"
)

type BatchRelayerImpl struct {
	config      *core.RelayerConfiguration
	gasCeiling  uint64
	source      core.SourceChain
	destination core.DestinationChain
	submitter   core.Submitter
	finder      core.ValsetFinder
	recorder    submissionRecorder
	logger      hclog.Logger
}

var _ core.BatchRelayer = (*BatchRelayerImpl)(nil)

type dispatchedBatch struct {
	batch        *core.TransactionBatch
	txHash       string
	accountNonce uint64
}

func NewBatchRelayer(
	config *core.RelayerConfiguration, gasCeiling uint64,
	source core.SourceChain, destination core.DestinationChain, submitter core.Submitter,
	finder core.ValsetFinder, journal core.SubmissionJournal, logger hclog.Logger,
) *BatchRelayerImpl {
	return &BatchRelayerImpl{
		config:      config,
		gasCeiling:  gasCeiling,
		source:      source,
		destination: destination,
		submitter:   submitter,
		finder:      finder,
		recorder:    submissionRecorder{journal: journal, logger: logger},
		logger:      logger,
	}
}

// RelayBatches dispatches every batch newer than the one the contract executed for its token,
// in nonce order, with consecutive account nonces. Per batch failures are logged and skipped.
func (r *BatchRelayerImpl) RelayBatches(ctx context.Context) error {
	batches, err := r.source.GetLatestBatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest batches: %w", err)
	}

	telemetry.UpdatePendingBatches(len(batches))

	if len(batches) == 0 {
		r.logger.Debug("no batches to relay")

		return nil
	}

	core.SortBatchesByNonce(batches)

	baseSequence, err := r.destination.GetAccountSequence(ctx)
	if err != nil {
		return fmt.Errorf("failed to get account sequence: %w", err)
	}

	dispatched := make([]dispatchedBatch, 0, len(batches))

	for _, batch := range batches {
		accountNonce := baseSequence + uint64(len(dispatched))

		txHash, ok := r.dispatchBatch(ctx, batch, accountNonce)
		if !ok {
			continue
		}

		r.recorder.sent(core.SubmissionKindBatch, batch.Nonce, batch.TokenContract, txHash, accountNonce)

		dispatched = append(dispatched, dispatchedBatch{
			batch:        batch,
			txHash:       txHash,
			accountNonce: accountNonce,
		})
	}

	for _, item := range dispatched {
		r.waitForBatch(ctx, item)
	}

	return nil
}

func (r *BatchRelayerImpl) dispatchBatch(
	ctx context.Context, batch *core.TransactionBatch, accountNonce uint64,
) (string, bool) {
	logger := r.logger.With("nonce", batch.Nonce, "token", batch.TokenContract)

	confirms, err := r.source.GetBatchConfirms(ctx, batch.Nonce, batch.TokenContract)
	if err != nil {
		logger.Error("could not get batch signatures", "err", err)

		return "", false
	}

	lastNonce, err := r.destination.GetBatchNonce(ctx, batch.TokenContract)
	if err != nil {
		logger.Error("failed to get latest ethereum batch", "err", err)

		return "", false
	}

	if batch.Nonce <= lastNonce {
		logger.Debug("batch already executed", "contract nonce", lastNonce)

		return "", false
	}

	logger.Info("detected batch newer than the one on ethereum, sending an update", "contract nonce", lastNonce)

	valset, err := r.finder.FindLatestValset(ctx)
	if err != nil {
		logger.Error("failed to find latest valset", "err", err)

		return "", false
	}

	sigs, err := valset.OrderSignatures(toConfirmations(confirms), r.config.AllowMissingSignatures)
	if err != nil {
		logger.Error("failed to order batch signatures", "valset", valset.Nonce, "err", err)

		return "", false
	}

	if err := sigs.CheckPower(r.config.PowerThreshold); err != nil {
		logger.Info("batch not ready", "err", err)

		return "", false
	}

	payload, err := core.NewSubmitBatchPayload(*valset, *batch, sigs)
	if err != nil {
		logger.Error("failed to build batch payload", "err", err)

		return "", false
	}

	gasLimit, err := r.submitter.EstimateCost(ctx, payload)
	if err != nil {
		logger.Error("failed to estimate gas for batch", "err", err)

		return "", false
	}

	if gasLimit > r.gasCeiling {
		logger.Warn("gas limit is too high, possibly trying to send failing tx",
			"gas", gasLimit, "ceiling", r.gasCeiling)
	}

	logger.Info("sending batch", "account nonce", accountNonce)

	txHash, err := r.submitter.Submit(ctx, payload, core.SubmitOptions{
		Nonce:    &accountNonce,
		GasLimit: gasLimit,
	})
	if err != nil {
		logger.Error("failed to submit batch", "account nonce", accountNonce, "err", err)

		return "", false
	}

	return txHash, true
}

func (r *BatchRelayerImpl) waitForBatch(ctx context.Context, item dispatchedBatch) {
	receipt, err := r.submitter.WaitForInclusion(ctx, item.txHash, r.config.TxTimeout())
	status := r.recorder.finished(core.SubmissionKindBatch, item.txHash, receipt, err)

	switch status {
	case core.SubmissionStatusIncluded:
		r.logger.Info("batch executed", "nonce", item.batch.Nonce, "token", item.batch.TokenContract,
			"hash", item.txHash)
		telemetry.UpdateBatchSubmitted(item.batch.TokenContract, item.batch.Nonce)
	case core.SubmissionStatusReverted:
		r.logger.Warn("batch tx reverted, probably executed by another relayer",
			"nonce", item.batch.Nonce, "token", item.batch.TokenContract, "hash", item.txHash)
		telemetry.IncrRaceLostCounter(string(core.SubmissionKindBatch))
	default:
		r.logger.Error("batch tx not included", "nonce", item.batch.Nonce, "token", item.batch.TokenContract,
			"hash", item.txHash, "account nonce", item.accountNonce, "err", err)
	}
}
