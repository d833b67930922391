package clirelayer

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	loggerInfra "github.com/Ethernal-Tech/cardano-infrastructure/logger"
	"github.com/Ethernal-Tech/peggy-relayer/common"
	databaseaccess "github.com/Ethernal-Tech/peggy-relayer/relayer/database_access"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/relayer"
	relayermanager "github.com/Ethernal-Tech/peggy-relayer/relayer/relayer_manager"
	"github.com/spf13/cobra"
)

func runOnceCommand(cmd *cobra.Command, _ []string) {
	outputter := common.InitializeOutputter(cmd)
	defer outputter.WriteOutput()

	config, err := relayermanager.LoadConfig(onceParamsData.config)
	if err != nil {
		outputter.SetError(err)

		return
	}

	config.Relayer.RelayValsets = config.Relayer.RelayValsets && !onceParamsData.skipValsets
	config.Relayer.RelayBatches = config.Relayer.RelayBatches && !onceParamsData.skipBatches

	logger, err := loggerInfra.NewLogger(config.Logger)
	if err != nil {
		outputter.SetError(err)

		return
	}

	db, err := databaseaccess.NewDatabase(
		filepath.Join(config.DbsPath, relayermanager.MainComponentName+".db"))
	if err != nil {
		outputter.SetError(err)

		return
	}

	defer db.Close()

	components, err := relayermanager.NewComponents(config, db, logger)
	if err != nil {
		outputter.SetError(err)

		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err = relayer.NewRelayer(&config.Relayer, components.ValsetRelayer, components.BatchRelayer,
		logger.Named("relayer")).Execute(ctx)
	if err != nil {
		outputter.SetError(err)

		return
	}

	outputter.SetCommandResult(&CmdResult{
		Status:       "finished",
		RelayValsets: config.Relayer.RelayValsets,
		RelayBatches: config.Relayer.RelayBatches,
	})
}
