package clisendtx

import (
	"bytes"
	"fmt"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/cosmos/contact"
)

type CmdResult struct {
	TxHash string `json:"txHash"`
	Height uint64 `json:"height"`
	Mode   string `json:"mode"`
}

func (r CmdResult) GetOutput() string {
	var buffer bytes.Buffer

	buffer.WriteString("Transaction has been broadcast\n")
	buffer.WriteString(common.FormatKV([]string{
		fmt.Sprintf("Tx Hash|%s", r.TxHash),
		fmt.Sprintf("Height|%d", r.Height),
		fmt.Sprintf("Mode|%s", r.Mode),
	}))
	buffer.WriteString("\n")

	return buffer.String()
}

type TxInfoResult struct {
	Address       string         `json:"address"`
	ChainID       string         `json:"chainId"`
	AccountNumber uint64         `json:"accountNumber"`
	Sequence      uint64         `json:"sequence"`
	Balances      []contact.Coin `json:"balances"`
}

func (r TxInfoResult) GetOutput() string {
	kvPairs := []string{
		fmt.Sprintf("Address|%s", r.Address),
		fmt.Sprintf("Chain|%s", r.ChainID),
		fmt.Sprintf("Account Number|%d", r.AccountNumber),
		fmt.Sprintf("Sequence|%d", r.Sequence),
	}

	for _, coin := range r.Balances {
		kvPairs = append(kvPairs, fmt.Sprintf("Balance|%s%s", coin.Amount, coin.Denom))
	}

	return common.FormatKV(kvPairs) + "\n"
}
