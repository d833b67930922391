package peggy

import (
	"fmt"
	"math/big"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
)

// rest answers use amino json: snake case names and uint64 values as strings

type bridgeValidatorResponse struct {
	Power           uint64 `json:"power,string"`
	EthereumAddress string `json:"ethereum_address"`
}

type valsetResponse struct {
	Nonce   uint64                    `json:"nonce,string"`
	Members []bridgeValidatorResponse `json:"members"`
	Height  uint64                    `json:"height,string"`
}

func (v valsetResponse) toValidatorSet() *core.ValidatorSet {
	members := make([]core.BridgeValidator, len(v.Members))
	for i, m := range v.Members {
		members[i] = core.BridgeValidator{
			EthereumAddress: m.EthereumAddress,
			Power:           m.Power,
		}
	}

	return &core.ValidatorSet{
		Nonce:   v.Nonce,
		Members: members,
		Height:  v.Height,
	}
}

type valsetConfirmResponse struct {
	Nonce        uint64 `json:"nonce,string"`
	Orchestrator string `json:"orchestrator"`
	EthAddress   string `json:"eth_address"`
	Signature    string `json:"signature"`
}

type erc20TokenResponse struct {
	Amount   string `json:"amount"`
	Contract string `json:"contract"`
}

func (t *erc20TokenResponse) amount() (*big.Int, error) {
	if t == nil || t.Amount == "" {
		return big.NewInt(0), nil
	}

	value, ok := new(big.Int).SetString(t.Amount, 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("invalid amount: %s", t.Amount)
	}

	return value, nil
}

type outgoingTransferResponse struct {
	ID          uint64              `json:"id,string"`
	Sender      string              `json:"sender"`
	DestAddress string              `json:"dest_address"`
	Erc20Token  *erc20TokenResponse `json:"erc20_token"`
	Erc20Fee    *erc20TokenResponse `json:"erc20_fee"`
}

type transactionBatchResponse struct {
	BatchNonce    uint64                     `json:"batch_nonce,string"`
	Transactions  []outgoingTransferResponse `json:"transactions"`
	TokenContract string                     `json:"token_contract"`
	Block         uint64                     `json:"block,string"`
}

func (b transactionBatchResponse) toTransactionBatch() (*core.TransactionBatch, error) {
	transfers := make([]core.OutgoingTransfer, len(b.Transactions))

	for i, tx := range b.Transactions {
		amount, err := tx.Erc20Token.amount()
		if err != nil {
			return nil, fmt.Errorf("batch %d transfer %d: %w", b.BatchNonce, tx.ID, err)
		}

		fee, err := tx.Erc20Fee.amount()
		if err != nil {
			return nil, fmt.Errorf("batch %d transfer %d fee: %w", b.BatchNonce, tx.ID, err)
		}

		transfers[i] = core.OutgoingTransfer{
			ID:          tx.ID,
			Sender:      tx.Sender,
			DestAddress: tx.DestAddress,
			Amount:      amount,
			Fee:         fee,
		}
	}

	return &core.TransactionBatch{
		Nonce:         b.BatchNonce,
		TokenContract: b.TokenContract,
		Transactions:  transfers,
		Block:         b.Block,
	}, nil
}

type batchConfirmResponse struct {
	Nonce         uint64 `json:"nonce,string"`
	TokenContract string `json:"token_contract"`
	EthSigner     string `json:"eth_signer"`
	Orchestrator  string `json:"orchestrator"`
	Signature     string `json:"signature"`
}
