package clirelayer

import (
	"os"
	"os/signal"
	"syscall"

	loggerInfra "github.com/Ethernal-Tech/cardano-infrastructure/logger"
	"github.com/Ethernal-Tech/peggy-relayer/common"
	relayermanager "github.com/Ethernal-Tech/peggy-relayer/relayer/relayer_manager"
	"github.com/spf13/cobra"
)

var (
	initParamsData = &initParams{}
	onceParamsData = &initParams{}
)

func GetRunRelayerCommand() *cobra.Command {
	runRelayerCmd := &cobra.Command{
		Use:     "run-relayer",
		Short:   "runs the peggy relayer until interrupted",
		PreRunE: runPreRun,
		Run:     runCommand,
	}

	initParamsData.setFlags(runRelayerCmd)

	return runRelayerCmd
}

func GetRelayOnceCommand() *cobra.Command {
	relayOnceCmd := &cobra.Command{
		Use:   "relay-once",
		Short: "executes a single valset and batch relaying pass",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return onceParamsData.validateFlags()
		},
		Run: runOnceCommand,
	}

	onceParamsData.setOnceFlags(relayOnceCmd)

	return relayOnceCmd
}

func runPreRun(_ *cobra.Command, _ []string) error {
	return initParamsData.validateFlags()
}

func runCommand(cmd *cobra.Command, _ []string) {
	outputter := common.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	config, err := relayermanager.LoadConfig(initParamsData.config)
	if err != nil {
		outputter.SetError(err)

		return
	}

	logger, err := loggerInfra.NewLogger(config.Logger)
	if err != nil {
		outputter.SetError(err)

		return
	}

	relayerManager, err := relayermanager.NewRelayerManager(config, logger)
	if err != nil {
		outputter.SetError(err)

		return
	}

	if err := relayerManager.Start(); err != nil {
		outputter.SetError(err)

		return
	}

	signalChannel := make(chan os.Signal, 1)
	// Notify the signalChannel when the interrupt signal is received (Ctrl+C)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	<-signalChannel

	if err := relayerManager.Stop(); err != nil {
		logger.Error("error while stopping relayer", "err", err)
	}

	outputter.SetCommandResult(&CmdResult{Status: "stopped"})
}
