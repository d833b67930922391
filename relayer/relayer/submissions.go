package relayer

import (
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/Ethernal-Tech/peggy-relayer/telemetry"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/hashicorp/go-hclog"
)

// submissionRecorder writes dispatched transactions to the journal, a nil journal is allowed
type submissionRecorder struct {
	journal core.SubmissionJournal
	logger  hclog.Logger
}

func (s submissionRecorder) sent(
	kind core.SubmissionKind, nonce uint64, tokenContract, txHash string, accountNonce uint64,
) {
	if s.journal == nil {
		return
	}

	err := s.journal.AddSubmission(&core.SubmissionRecord{
		Kind:          kind,
		Nonce:         nonce,
		TokenContract: tokenContract,
		TxHash:        txHash,
		AccountNonce:  accountNonce,
		Status:        core.SubmissionStatusSent,
		Time:          time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to journal submission", "hash", txHash, "err", err)
	}
}

func (s submissionRecorder) finished(
	kind core.SubmissionKind, txHash string, receipt *types.Receipt, waitErr error,
) core.SubmissionStatus {
	status := core.SubmissionStatusIncluded

	switch {
	case waitErr != nil || receipt == nil:
		status = core.SubmissionStatusTimedOut
	case receipt.Status != types.ReceiptStatusSuccessful:
		status = core.SubmissionStatusReverted
	}

	telemetry.IncrSubmissionCounter(string(kind), string(status))

	if s.journal != nil {
		if err := s.journal.UpdateSubmissionStatus(txHash, status); err != nil {
			s.logger.Warn("failed to update journaled submission", "hash", txHash, "err", err)
		}
	}

	return status
}
