package relayer

import (
	"bytes"
	"encoding/hex"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
)

const (
	valAddr1  = "0x1111111111111111111111111111111111111111"
	valAddr2  = "0x2222222222222222222222222222222222222222"
	valAddr3  = "0x3333333333333333333333333333333333333333"
	tokenX    = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	tokenY    = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	destAddr  = "0x9999999999999999999999999999999999999999"
	gasLimit  = uint64(250_000)
	ceiling   = uint64(1_000_000)
	txTimeout = 120
)

func signature(seed byte) string {
	raw := append(bytes.Repeat([]byte{seed}, 64), 27)

	return "0x" + hex.EncodeToString(raw)
}

func testValset(nonce uint64) *core.ValidatorSet {
	return &core.ValidatorSet{
		Nonce: nonce,
		Members: []core.BridgeValidator{
			{EthereumAddress: valAddr1, Power: 1500},
			{EthereumAddress: valAddr2, Power: 1000},
			{EthereumAddress: valAddr3, Power: 500},
		},
	}
}

func fullValsetConfirms(nonce uint64) []*core.ValsetConfirmation {
	return []*core.ValsetConfirmation{
		{Nonce: nonce, EthAddress: valAddr3, Signature: signature(3)},
		{Nonce: nonce, EthAddress: valAddr1, Signature: signature(1)},
		{Nonce: nonce, EthAddress: valAddr2, Signature: signature(2)},
	}
}

func fullBatchConfirms(batch *core.TransactionBatch) []*core.BatchConfirmation {
	return []*core.BatchConfirmation{
		{Nonce: batch.Nonce, TokenContract: batch.TokenContract, EthSigner: valAddr2, Signature: signature(2)},
		{Nonce: batch.Nonce, TokenContract: batch.TokenContract, EthSigner: valAddr1, Signature: signature(1)},
		{Nonce: batch.Nonce, TokenContract: batch.TokenContract, EthSigner: valAddr3, Signature: signature(3)},
	}
}

func testBatch(nonce uint64, token string) *core.TransactionBatch {
	return &core.TransactionBatch{
		Nonce:         nonce,
		TokenContract: token,
		Transactions: []core.OutgoingTransfer{
			{ID: nonce, DestAddress: destAddr},
		},
	}
}

func testRelayerConfig() *core.RelayerConfiguration {
	return &core.RelayerConfiguration{
		PullTimeMilis:    10,
		TxTimeoutSeconds: txTimeout,
		RelayValsets:     true,
		RelayBatches:     true,
	}
}
