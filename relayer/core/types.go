package core

import (
	"math/big"
	"sort"
	"strings"
	"time"
)

type BridgeValidator struct {
	EthereumAddress string `json:"ethereumAddress"`
	Power           uint64 `json:"power"`
}

// ValidatorSet is a signer set identified by its nonce. Member order matters: the Peggy contract
// checks signatures positionally against the filtered member list.
type ValidatorSet struct {
	Nonce   uint64            `json:"nonce"`
	Members []BridgeValidator `json:"members"`
	Height  uint64            `json:"height"`
}

type Confirmation interface {
	GetEthSigner() string
	GetSignature() string
}

type ValsetConfirmation struct {
	Nonce        uint64 `json:"nonce"`
	Orchestrator string `json:"orchestrator"`
	EthAddress   string `json:"ethAddress"`
	Signature    string `json:"signature"`
}

func (c ValsetConfirmation) GetEthSigner() string {
	return c.EthAddress
}

func (c ValsetConfirmation) GetSignature() string {
	return c.Signature
}

type OutgoingTransfer struct {
	ID          uint64   `json:"id"`
	Sender      string   `json:"sender"`
	DestAddress string   `json:"destAddress"`
	Amount      *big.Int `json:"amount"`
	Fee         *big.Int `json:"fee"`
}

type TransactionBatch struct {
	Nonce         uint64             `json:"nonce"`
	TokenContract string             `json:"tokenContract"`
	Transactions  []OutgoingTransfer `json:"transactions"`
	Block         uint64             `json:"block"`
}

type BatchConfirmation struct {
	Nonce         uint64 `json:"nonce"`
	TokenContract string `json:"tokenContract"`
	Orchestrator  string `json:"orchestrator"`
	EthSigner     string `json:"ethSigner"`
	Signature     string `json:"signature"`
}

func (c BatchConfirmation) GetEthSigner() string {
	return c.EthSigner
}

func (c BatchConfirmation) GetSignature() string {
	return c.Signature
}

// SortBatchesByNonce sorts ascending by nonce, ties broken by token contract
func SortBatchesByNonce(batches []*TransactionBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if batches[i].Nonce != batches[j].Nonce {
			return batches[i].Nonce < batches[j].Nonce
		}

		return strings.ToLower(batches[i].TokenContract) < strings.ToLower(batches[j].TokenContract)
	})
}

type TxPayload struct {
	Method string
	Data   []byte
}

type SubmitOptions struct {
	// Nonce forces the account sequence, nil means pending nonce from the node
	Nonce    *uint64
	GasLimit uint64
}

type SubmissionKind string

const (
	SubmissionKindValset SubmissionKind = "valset"
	SubmissionKindBatch  SubmissionKind = "batch"
)

type SubmissionStatus string

const (
	SubmissionStatusSent     SubmissionStatus = "sent"
	SubmissionStatusIncluded SubmissionStatus = "included"
	SubmissionStatusReverted SubmissionStatus = "reverted"
	SubmissionStatusTimedOut SubmissionStatus = "timedOut"
)

// SubmissionRecord is what the journal keeps about one dispatched transaction
type SubmissionRecord struct {
	ID            uint64           `json:"id"`
	Kind          SubmissionKind   `json:"kind"`
	Nonce         uint64           `json:"nonce"`
	TokenContract string           `json:"tokenContract,omitempty"`
	TxHash        string           `json:"txHash"`
	AccountNonce  uint64           `json:"accountNonce"`
	Status        SubmissionStatus `json:"status"`
	Time          time.Time        `json:"time"`
}
