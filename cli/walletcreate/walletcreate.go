package cliwalletcreate

import (
	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/spf13/cobra"
)

var walletCreateParamsData = &walletCreateParams{}

func GetWalletCreateCommand() *cobra.Command {
	walletCreateCmd := &cobra.Command{
		Use:     "wallet-create",
		Short:   "creates or imports the ethereum key the relayer signs transactions with",
		PreRunE: runPreRun,
		Run:     common.GetCliRunCommand(walletCreateParamsData),
	}

	walletCreateParamsData.setFlags(walletCreateCmd)

	return walletCreateCmd
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return walletCreateParamsData.validateFlags()
}
