package clisendtx

import (
	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/spf13/cobra"
)

const txInfoCommandUse = "tx-info"

var (
	sendtxParamsData = &sendTxParams{}
	txInfoParamsData = &txInfoParams{}
)

func GetSendTxCommand() *cobra.Command {
	cmdSendTx := &cobra.Command{
		Use:     "broadcast-tx",
		Short:   "broadcasts a signed transaction to the cosmos lcd server",
		PreRunE: runPreRun,
		Run:     common.GetCliRunCommand(sendtxParamsData),
	}
	cmdTxInfo := &cobra.Command{
		Use:     txInfoCommandUse,
		Short:   "shows chain id, account number and sequence needed to sign a transaction",
		PreRunE: runPreRun,
		Run:     common.GetCliRunCommand(txInfoParamsData),
	}

	sendtxParamsData.setFlags(cmdSendTx)
	txInfoParamsData.setFlags(cmdTxInfo)

	cmdSendTx.AddCommand(cmdTxInfo)

	return cmdSendTx
}

func runPreRun(cb *cobra.Command, _ []string) error {
	if cb.Use == txInfoCommandUse {
		return txInfoParamsData.validateFlags()
	}

	return sendtxParamsData.validateFlags()
}
