package cliwalletcreate

import (
	"encoding/hex"
	"fmt"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	ethtxhelper "github.com/Ethernal-Tech/peggy-relayer/eth/txhelper"
)

type CmdResult struct {
	KeyName    string `json:"keyName"`
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey,omitempty"`
}

func newCmdResult(wallet *ethtxhelper.EthTxWallet, keyName string, showPrivateKey bool) *CmdResult {
	result := &CmdResult{
		KeyName: keyName,
		Address: wallet.GetAddress().String(),
	}

	if showPrivateKey {
		result.PrivateKey = hex.EncodeToString(wallet.GetPrivateKeyBytes())
	}

	return result
}

func (r CmdResult) GetOutput() string {
	vals := []string{
		fmt.Sprintf("Key Name|%s", r.KeyName),
		fmt.Sprintf("Address|%s", r.Address),
	}

	if r.PrivateKey != "" {
		vals = append(vals, fmt.Sprintf("Private Key|%s", r.PrivateKey))
	}

	return common.FormatKV(vals) + "\n"
}
