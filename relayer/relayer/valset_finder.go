package relayer

import (
	"context"
	"fmt"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/hashicorp/go-hclog"
)

type ValsetFinderImpl struct {
	source      core.SourceChain
	destination core.DestinationChain
	logger      hclog.Logger
}

var _ core.ValsetFinder = (*ValsetFinderImpl)(nil)

func NewValsetFinder(
	source core.SourceChain, destination core.DestinationChain, logger hclog.Logger,
) *ValsetFinderImpl {
	return &ValsetFinderImpl{
		source:      source,
		destination: destination,
		logger:      logger,
	}
}

// FindLatestValset returns the signer set stored by the contract.
// When the source chain and the ValsetUpdatedEvent disagree, the event wins.
func (f *ValsetFinderImpl) FindLatestValset(ctx context.Context) (*core.ValidatorSet, error) {
	nonce, err := f.destination.GetValsetNonce(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last valset nonce: %w", err)
	}

	// genesis set was passed to the constructor, there is no event for it
	if nonce == 0 {
		valset, err := f.source.GetValsetRequest(ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to get genesis valset: %w", err)
		}

		if valset == nil {
			return nil, fmt.Errorf("%w: nonce 0", core.ErrValsetNotFound)
		}

		return valset, nil
	}

	event, err := f.destination.GetValsetUpdatedEvent(ctx, nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to get valset updated event %d: %w", nonce, err)
	}

	requested, err := f.source.GetValsetRequest(ctx, nonce)
	if err != nil {
		if event == nil {
			return nil, fmt.Errorf("failed to get valset %d: %w", nonce, err)
		}

		f.logger.Warn("valset not available on source chain, using contract event", "nonce", nonce, "err", err)

		return event, nil
	}

	switch {
	case event == nil && requested == nil:
		return nil, fmt.Errorf("%w: nonce %d", core.ErrValsetNotFound, nonce)
	case event == nil:
		f.logger.Debug("valset updated event not found, using source valset", "nonce", nonce)

		return requested, nil
	case requested == nil:
		return event, nil
	}

	if !sameMembers(*event, *requested) {
		f.logger.Warn("source valset differs from the contract event, using contract event",
			"nonce", nonce, "event", event.Members, "source", requested.Members)

		return event, nil
	}

	return requested, nil
}

func sameMembers(a, b core.ValidatorSet) bool {
	addrsA, powersA := a.FilterEmptyAddresses()
	addrsB, powersB := b.FilterEmptyAddresses()

	if len(addrsA) != len(addrsB) {
		return false
	}

	for i := range addrsA {
		if addrsA[i] != addrsB[i] || powersA[i].Cmp(powersB[i]) != 0 {
			return false
		}
	}

	return true
}
