package relayermanager

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/api"
	apiCore "github.com/Ethernal-Tech/peggy-relayer/api/core"
	apiUtils "github.com/Ethernal-Tech/peggy-relayer/api/utils"
	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/cosmos/contact"
	"github.com/Ethernal-Tech/peggy-relayer/cosmos/peggy"
	"github.com/Ethernal-Tech/peggy-relayer/eth"
	ethtxhelper "github.com/Ethernal-Tech/peggy-relayer/eth/txhelper"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/api/controllers"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	databaseaccess "github.com/Ethernal-Tech/peggy-relayer/relayer/database_access"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/relayer"
	"github.com/Ethernal-Tech/peggy-relayer/telemetry"
	"github.com/hashicorp/go-hclog"
)

const (
	MainComponentName = "peggy_relayer"
	shutdownTimeout   = 5 * time.Second
)

type RelayerManagerImpl struct {
	ctx       context.Context
	cancelCtx context.CancelFunc
	config    *core.RelayerManagerConfiguration
	relayer   core.Relayer
	db        core.Database
	api       apiCore.API
	telemetry *telemetry.Telemetry
	logger    hclog.Logger
}

var _ core.RelayerManager = (*RelayerManagerImpl)(nil)

// Components are the relayer building blocks, shared with the one shot cli commands
type Components struct {
	Contract      *eth.PeggySmartContract
	PeggyClient   *peggy.PeggyClient
	Finder        core.ValsetFinder
	ValsetRelayer *relayer.ValsetRelayerImpl
	BatchRelayer  *relayer.BatchRelayerImpl
}

func NewComponents(
	config *core.RelayerManagerConfiguration, journal core.SubmissionJournal, logger hclog.Logger,
) (*Components, error) {
	secretsManager, err := common.GetSecretsManager(
		config.Secrets.DataDir, config.Secrets.ConfigPath, config.Secrets.InsecureLocalStore)
	if err != nil {
		return nil, fmt.Errorf("failed to create secrets manager: %w", err)
	}

	wallet, err := eth.GetRelayerEVMPrivateKey(secretsManager, config.Secrets.KeyName)
	if err != nil {
		return nil, fmt.Errorf("failed to load relayer ethereum key: %w", err)
	}

	ethHelper := eth.NewEthHelperWrapper(logger.Named("eth_helper"),
		ethtxhelper.WithNodeURL(config.Ethereum.NodeURL),
		ethtxhelper.WithDynamicTx(config.Ethereum.DynamicTx),
		ethtxhelper.WithZeroGasPrice(config.Ethereum.ZeroGasPrice),
		ethtxhelper.WithGasFeeMultiplier(config.Ethereum.GasFeeMultiplier),
	)

	contract := eth.NewPeggySmartContract(eth.PeggySmartContractConfig{
		ContractAddress: config.Ethereum.PeggyContract,
		GasLimitFactor:  config.Ethereum.GasLimitFactor,
		LogSearchBlocks: config.Ethereum.LogSearchBlocks,
		MaxSearchBlocks: config.Ethereum.MaxSearchBlocks,
		ReadRetries:     config.Relayer.ReadRetries,
	}, wallet, ethHelper, logger.Named("peggy_contract"))

	lcd := contact.NewContact(config.Cosmos.LcdURL, config.Cosmos.RequestTimeout(),
		contact.WithLogger(logger.Named("contact")))
	peggyClient := peggy.NewPeggyClient(lcd, config.Cosmos.PeggyRoute, config.Relayer.ReadRetries,
		logger.Named("peggy_client"))

	finder := relayer.NewValsetFinder(peggyClient, contract, logger.Named("valset_finder"))

	return &Components{
		Contract:    contract,
		PeggyClient: peggyClient,
		Finder:      finder,
		ValsetRelayer: relayer.NewValsetRelayer(
			&config.Relayer, config.Ethereum.GasCeiling, peggyClient, contract, contract, finder, journal,
			logger.Named("valset_relayer")),
		BatchRelayer: relayer.NewBatchRelayer(
			&config.Relayer, config.Ethereum.GasCeiling, peggyClient, contract, contract, finder, journal,
			logger.Named("batch_relayer")),
	}, nil
}

func NewRelayerManager(
	config *core.RelayerManagerConfiguration,
	logger hclog.Logger,
) (*RelayerManagerImpl, error) {
	db, err := databaseaccess.NewDatabase(filepath.Join(config.DbsPath, MainComponentName+".db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open relayer database: %w", err)
	}

	components, err := NewComponents(config, db, logger)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	ctx, cancelCtx := context.WithCancel(context.Background())

	rm := &RelayerManagerImpl{
		ctx:       ctx,
		cancelCtx: cancelCtx,
		config:    config,
		relayer: relayer.NewRelayer(
			&config.Relayer, components.ValsetRelayer, components.BatchRelayer, logger.Named("relayer")),
		db:        db,
		telemetry: telemetry.NewTelemetry(config.Telemetry, logger.Named("telemetry")),
		logger:    logger,
	}

	if config.API.Port != 0 {
		apiLogger, err := apiUtils.NewAPILogger(config.Logger)
		if err != nil {
			cancelCtx()

			return nil, errors.Join(err, db.Close())
		}

		rm.api, err = api.NewAPI(ctx, config.API, []apiCore.APIController{
			controllers.NewSubmissionsController(db, apiLogger.Named("submissions_controller")),
			controllers.NewStatusController(components.Contract, components.PeggyClient,
				apiLogger.Named("status_controller")),
		}, apiLogger)
		if err != nil {
			cancelCtx()

			return nil, errors.Join(fmt.Errorf("failed to create api: %w", err), db.Close())
		}
	}

	return rm, nil
}

func (rm *RelayerManagerImpl) Start() error {
	rm.logger.Info("Starting relayer",
		"cosmos", rm.config.Cosmos.LcdURL, "ethereum", rm.config.Ethereum.NodeURL,
		"contract", rm.config.Ethereum.PeggyContract)

	if err := rm.telemetry.Start(); err != nil {
		return fmt.Errorf("failed to start telemetry: %w", err)
	}

	go rm.relayer.Start(rm.ctx)

	if rm.api != nil {
		go rm.api.Start()
	}

	return nil
}

func (rm *RelayerManagerImpl) Stop() error {
	var errs []error

	rm.cancelCtx()

	if rm.api != nil {
		if err := rm.api.Dispose(); err != nil {
			errs = append(errs, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := rm.telemetry.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close telemetry: %w", err))
	}

	if err := rm.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}

	return errors.Join(errs...)
}

// LoadConfig reads the json config, fills the defaults and validates the result
func LoadConfig(path string) (*core.RelayerManagerConfiguration, error) {
	config, err := common.LoadConfig[core.RelayerManagerConfiguration](path, "relayer")
	if err != nil {
		return nil, err
	}

	config.FillDefaults()

	if err := config.ValidateConfig(); err != nil {
		return nil, err
	}

	return config, nil
}
