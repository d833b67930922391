package relayer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/Ethernal-Tech/peggy-relayer/telemetry"
	"github.com/hashicorp/go-hclog"
)

type ValsetRelayerImpl struct {
	config      *core.RelayerConfiguration
	gasCeiling  uint64
	source      core.SourceChain
	destination core.DestinationChain
	submitter   core.Submitter
	finder      core.ValsetFinder
	recorder    submissionRecorder
	logger      hclog.Logger
}

var _ core.ValsetUpdateRelayer = (*ValsetRelayerImpl)(nil)

func NewValsetRelayer(
	config *core.RelayerConfiguration, gasCeiling uint64,
	source core.SourceChain, destination core.DestinationChain, submitter core.Submitter,
	finder core.ValsetFinder, journal core.SubmissionJournal, logger hclog.Logger,
) *ValsetRelayerImpl {
	return &ValsetRelayerImpl{
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

// RelayValsets submits the newest source valset that has enough confirmations
// and is ahead of the one stored by the contract
func (r *ValsetRelayerImpl) RelayValsets(ctx context.Context) error {
	current, err := r.finder.FindLatestValset(ctx)
	if err != nil {
		return fmt.Errorf("failed to find latest valset: %w", err)
	}

	latest, err := r.source.GetLatestValsets(ctx)
	if err != nil {
		return fmt.Errorf("failed to get latest valsets: %w", err)
	}

	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].Nonce > latest[j].Nonce
	})

	for _, valset := range latest {
		if valset.Nonce <= current.Nonce {
			break
		}

		confirms, err := r.source.GetValsetConfirms(ctx, valset.Nonce)
		if err != nil {
			r.logger.Warn("failed to get valset confirms", "nonce", valset.Nonce, "err", err)

			continue
		}

		err = r.SendValsetUpdate(ctx, valset, current, confirms)
		if err == nil {
			return nil
		}

		if errors.Is(err, core.ErrMissingSignature) || errors.Is(err, core.ErrInsufficientPower) ||
			errors.Is(err, core.ErrInvalidSignature) {
			r.logger.Debug("valset not ready", "nonce", valset.Nonce, "confirms", len(confirms), "err", err)

			continue
		}

		return err
	}

	r.logger.Debug("no valset to relay", "current", current.Nonce, "candidates", len(latest))

	return nil
}

// SendValsetUpdate replaces oldValset with newValset on the contract.
// Losing the race to another relayer is not an error.
func (r *ValsetRelayerImpl) SendValsetUpdate(
	ctx context.Context, newValset, oldValset *core.ValidatorSet, confirms []*core.ValsetConfirmation,
) error {
	if newValset == nil || oldValset == nil {
		return errors.New("valsets must be provided")
	}

	if newValset.Nonce <= oldValset.Nonce {
		return fmt.Errorf("%w: new %d, current %d", core.ErrInvalidNonceOrder, newValset.Nonce, oldValset.Nonce)
	}

	r.logger.Info("ordering signatures and submitting valset update",
		"current", oldValset.Nonce, "new", newValset.Nonce)

	sigs, err := oldValset.OrderSignatures(toConfirmations(confirms), r.config.AllowMissingSignatures)
	if err != nil {
		return fmt.Errorf("failed to order valset %d signatures: %w", newValset.Nonce, err)
	}

	if err := sigs.CheckPower(r.config.PowerThreshold); err != nil {
		return fmt.Errorf("valset %d: %w", newValset.Nonce, err)
	}

	payload, err := core.NewValsetUpdatePayload(*newValset, *oldValset, sigs)
	if err != nil {
		return err
	}

	beforeNonce, err := r.destination.GetValsetNonce(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last valset nonce: %w", err)
	}

	if beforeNonce != oldValset.Nonce {
		r.logger.Info("someone else updated the valset, exiting early",
			"contract", beforeNonce, "expected", oldValset.Nonce)
		telemetry.IncrRaceLostCounter(string(core.SubmissionKindValset))

		return nil
	}

	gasLimit, err := r.submitter.EstimateCost(ctx, payload)
	if err != nil {
		return fmt.Errorf("failed to estimate gas for valset %d: %w", newValset.Nonce, err)
	}

	if gasLimit > r.gasCeiling {
		r.logger.Warn("gas limit is too high, possibly trying to send failing tx",
			"nonce", newValset.Nonce, "gas", gasLimit, "ceiling", r.gasCeiling)
	}

	txHash, err := r.submitter.Submit(ctx, payload, core.SubmitOptions{GasLimit: gasLimit})
	if err != nil {
		return fmt.Errorf("failed to submit valset %d: %w", newValset.Nonce, err)
	}

	r.logger.Info("sent valset update", "nonce", newValset.Nonce, "hash", txHash)
	r.recorder.sent(core.SubmissionKindValset, newValset.Nonce, "", txHash, 0)

	receipt, err := r.submitter.WaitForInclusion(ctx, txHash, r.config.TxTimeout())
	r.recorder.finished(core.SubmissionKindValset, txHash, receipt, err)

	if err != nil {
		return fmt.Errorf("valset update %s was not included: %w", txHash, err)
	}

	lastNonce, err := r.destination.GetValsetNonce(ctx)
	if err != nil {
		return fmt.Errorf("failed to read last valset nonce: %w", err)
	}

	if lastNonce != newValset.Nonce {
		r.logger.Error("valset nonce not updated", "current", lastNonce, "expected", newValset.Nonce, "hash", txHash)
	} else {
		r.logger.Info("successfully updated valset", "nonce", lastNonce, "hash", txHash)
		telemetry.UpdateValsetSubmitted(lastNonce)
	}

	return nil
}

func toConfirmations[T core.Confirmation](confirms []T) []core.Confirmation {
	result := make([]core.Confirmation, len(confirms))
	for i, c := range confirms {
		result[i] = c
	}

	return result
}
