package core

import (
	"fmt"
	"math/big"

	"github.com/Ethernal-Tech/peggy-relayer/contractbinding"
	"github.com/ethereum/go-ethereum/common"
)

const (
	UpdateValsetMethod = "updateValset"
	SubmitBatchMethod  = "submitBatch"
)

// NewValsetUpdatePayload packs updateValset. Signatures must be ordered against oldValset.
func NewValsetUpdatePayload(newValset, oldValset ValidatorSet, sigs *OrderedSignatures) (*TxPayload, error) {
	newAddresses, newPowers := newValset.FilterEmptyAddresses()
	oldAddresses, oldPowers := oldValset.FilterEmptyAddresses()

	if len(oldAddresses) != len(sigs.V) {
		return nil, fmt.Errorf("signatures do not match current valset: %d addresses, %d signatures",
			len(oldAddresses), len(sigs.V))
	}

	data, err := contractbinding.PackPeggyCall(UpdateValsetMethod,
		newAddresses, newPowers, new(big.Int).SetUint64(newValset.Nonce),
		oldAddresses, oldPowers, new(big.Int).SetUint64(oldValset.Nonce),
		sigs.V, sigs.R, sigs.S,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", UpdateValsetMethod, err)
	}

	return &TxPayload{Method: UpdateValsetMethod, Data: data}, nil
}

// NewSubmitBatchPayload packs submitBatch against the valset currently stored in the contract
func NewSubmitBatchPayload(
	currentValset ValidatorSet, batch TransactionBatch, sigs *OrderedSignatures,
) (*TxPayload, error) {
	addresses, powers := currentValset.FilterEmptyAddresses()

	if len(addresses) != len(sigs.V) {
		return nil, fmt.Errorf("signatures do not match current valset: %d addresses, %d signatures",
			len(addresses), len(sigs.V))
	}

	if !common.IsHexAddress(batch.TokenContract) {
		return nil, fmt.Errorf("invalid token contract: %s", batch.TokenContract)
	}

	amounts := make([]*big.Int, len(batch.Transactions))
	destinations := make([]common.Address, len(batch.Transactions))
	fees := make([]*big.Int, len(batch.Transactions))

	for i, tx := range batch.Transactions {
		if !common.IsHexAddress(tx.DestAddress) {
			return nil, fmt.Errorf("invalid destination address of transfer %d: %s", tx.ID, tx.DestAddress)
		}

		amounts[i] = bigOrZero(tx.Amount)
		destinations[i] = common.HexToAddress(tx.DestAddress)
		fees[i] = bigOrZero(tx.Fee)
	}

	data, err := contractbinding.PackPeggyCall(SubmitBatchMethod,
		addresses, powers, new(big.Int).SetUint64(currentValset.Nonce),
		sigs.V, sigs.R, sigs.S,
		amounts, destinations, fees,
		new(big.Int).SetUint64(batch.Nonce), common.HexToAddress(batch.TokenContract),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", SubmitBatchMethod, err)
	}

	return &TxPayload{Method: SubmitBatchMethod, Data: data}, nil
}

func bigOrZero(value *big.Int) *big.Int {
	if value == nil {
		return big.NewInt(0)
	}

	return value
}
