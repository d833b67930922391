package contact

import (
	"encoding/json"
	"errors"
)

type validator interface {
	Validate() error
}

// ResponseWrapper is the envelope of every LCD rest answer
type ResponseWrapper[T any] struct {
	Height uint64 `json:"height,string"`
	Result T      `json:"result"`
}

type TypeWrapper[T any] struct {
	Type  string `json:"type"`
	Value T      `json:"value"`
}

type PubKeyWrapper struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type CosmosAccountInfo struct {
	Address       string         `json:"address"`
	PublicKey     *PubKeyWrapper `json:"public_key"`
	Sequence      uint64         `json:"sequence,string"`
	AccountNumber uint64         `json:"account_number,string"`
}

type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type BlockHeader struct {
	ChainID         string `json:"chain_id"`
	Height          uint64 `json:"height,string"`
	Time            string `json:"time"`
	ProposerAddress string `json:"proposer_address"`
}

type LastCommit struct {
	Height uint64 `json:"height,string"`
	Round  uint64 `json:"round"`
}

type Block struct {
	Header     BlockHeader `json:"header"`
	LastCommit LastCommit  `json:"last_commit"`
}

type BlockID struct {
	Hash string `json:"hash"`
}

type LatestBlockResponse struct {
	BlockID BlockID `json:"block_id"`
	Block   Block   `json:"block"`
}

func (r LatestBlockResponse) Validate() error {
	if r.Block.Header.ChainID == "" {
		return errors.New("missing block header")
	}

	return nil
}

type TxSendResponse struct {
	Height    uint64          `json:"height,string,omitempty"`
	TxHash    string          `json:"txhash"`
	Code      int64           `json:"code,omitempty"`
	Codespace string          `json:"codespace,omitempty"`
	RawLog    string          `json:"raw_log,omitempty"`
	Logs      json.RawMessage `json:"logs,omitempty"`
}

func (r TxSendResponse) Validate() error {
	if r.TxHash == "" {
		return errors.New("missing txhash")
	}

	return nil
}

type TxSendErrorResponse struct {
	Code      int64  `json:"code"`
	Codespace string `json:"codespace"`
	RawLog    string `json:"raw_log"`
	Error     string `json:"error"`
}

type BroadcastMode string

const (
	BroadcastModeBlock BroadcastMode = "block"
	BroadcastModeSync  BroadcastMode = "sync"
	BroadcastModeAsync BroadcastMode = "async"
)

// Transaction is a signed amino StdTx together with the broadcast mode
type Transaction struct {
	Tx   json.RawMessage `json:"tx"`
	Mode BroadcastMode   `json:"mode"`
}

func (t Transaction) Validate() error {
	if len(t.Tx) == 0 {
		return errors.New("empty tx")
	}

	switch t.Mode {
	case BroadcastModeBlock, BroadcastModeSync, BroadcastModeAsync:
		return nil
	default:
		return errors.New("unknown broadcast mode: " + string(t.Mode))
	}
}

type OptionalTxInfo struct {
	ChainID       string
	AccountNumber uint64
	Sequence      uint64
}
