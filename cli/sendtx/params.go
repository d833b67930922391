package clisendtx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/cosmos/contact"
	"github.com/spf13/cobra"
)

const (
	lcdURLFlag  = "lcd-url"
	txFileFlag  = "tx"
	modeFlag    = "mode"
	timeoutFlag = "timeout"
	addressFlag = "address"

	lcdURLFlagDesc  = "cosmos lcd rest server url"
	txFileFlagDesc  = "path to a signed amino json StdTx"
	modeFlagDesc    = "broadcast mode: block, sync or async"
	timeoutFlagDesc = "how long to keep retrying a block mode broadcast"
	addressFlagDesc = "cosmos account address"

	defaultTimeout = 60 * time.Second
)

type sendTxParams struct {
	lcdURL  string
	txFile  string
	mode    string
	timeout time.Duration
}

func (ip *sendTxParams) validateFlags() error {
	if !common.IsValidURL(ip.lcdURL) {
		return fmt.Errorf("invalid --%s flag: %s", lcdURLFlag, ip.lcdURL)
	}

	if ip.txFile == "" {
		return fmt.Errorf("--%s flag not specified", txFileFlag)
	}

	if ip.timeout <= 0 {
		return fmt.Errorf("invalid --%s flag: %s", timeoutFlag, ip.timeout)
	}

	switch contact.BroadcastMode(ip.mode) {
	case contact.BroadcastModeBlock, contact.BroadcastModeSync, contact.BroadcastModeAsync:
		return nil
	default:
		return fmt.Errorf("invalid --%s flag: %s", modeFlag, ip.mode)
	}
}

func (ip *sendTxParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ip.lcdURL, lcdURLFlag, "", lcdURLFlagDesc)
	cmd.Flags().StringVar(&ip.txFile, txFileFlag, "", txFileFlagDesc)
	cmd.Flags().StringVar(&ip.mode, modeFlag, string(contact.BroadcastModeBlock), modeFlagDesc)
	cmd.Flags().DurationVar(&ip.timeout, timeoutFlag, defaultTimeout, timeoutFlagDesc)
}

func (ip *sendTxParams) Execute() (common.ICommandResult, error) {
	rawTx, err := os.ReadFile(ip.txFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read tx: %w", err)
	}

	if !json.Valid(rawTx) {
		return nil, errors.New("tx file is not valid json")
	}

	ctx, cancel := context.WithTimeout(context.Background(), ip.timeout)
	defer cancel()

	resp, err := contact.NewContact(ip.lcdURL, ip.timeout).SendTransaction(ctx, contact.Transaction{
		Tx:   rawTx,
		Mode: contact.BroadcastMode(ip.mode),
	}, ip.timeout)
	if err != nil {
		return nil, err
	}

	return &CmdResult{
		TxHash: resp.TxHash,
		Height: resp.Height,
		Mode:   ip.mode,
	}, nil
}

type txInfoParams struct {
	lcdURL  string
	address string
}

func (ip *txInfoParams) validateFlags() error {
	if !common.IsValidURL(ip.lcdURL) {
		return fmt.Errorf("invalid --%s flag: %s", lcdURLFlag, ip.lcdURL)
	}

	if ip.address == "" {
		return fmt.Errorf("--%s flag not specified", addressFlag)
	}

	return nil
}

func (ip *txInfoParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ip.lcdURL, lcdURLFlag, "", lcdURLFlagDesc)
	cmd.Flags().StringVar(&ip.address, addressFlag, "", addressFlagDesc)
}

func (ip *txInfoParams) Execute() (common.ICommandResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	lcd := contact.NewContact(ip.lcdURL, 0)

	info, err := lcd.MaybeGetOptionalTxInfo(ctx, ip.address)
	if err != nil {
		return nil, err
	}

	balances, err := lcd.GetBalances(ctx, ip.address)
	if err != nil {
		return nil, err
	}

	return &TxInfoResult{
		Address:       ip.address,
		ChainID:       info.ChainID,
		AccountNumber: info.AccountNumber,
		Sequence:      info.Sequence,
		Balances:      balances.Result,
	}, nil
}
