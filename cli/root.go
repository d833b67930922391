package cli

import (
	"fmt"
	"os"

	clirelayer "github.com/Ethernal-Tech/peggy-relayer/cli/relayer"
	clisendtx "github.com/Ethernal-Tech/peggy-relayer/cli/sendtx"
	clisubmissions "github.com/Ethernal-Tech/peggy-relayer/cli/submissions"
	cliversion "github.com/Ethernal-Tech/peggy-relayer/cli/version"
	cliwalletcreate "github.com/Ethernal-Tech/peggy-relayer/cli/walletcreate"
	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/spf13/cobra"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Short: "cli commands for the peggy relayer",
		},
	}

	rootCommand.baseCmd.PersistentFlags().Bool(common.JSONOutputFlag, false, "get all outputs in json format")

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		cliwalletcreate.GetWalletCreateCommand(),
		clirelayer.GetRunRelayerCommand(),
		clirelayer.GetRelayOnceCommand(),
		clisendtx.GetSendTxCommand(),
		clisubmissions.GetSubmissionsCommand(),
		cliversion.GetVersionCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
