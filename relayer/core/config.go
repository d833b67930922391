package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/Ethernal-Tech/cardano-infrastructure/logger"
	apiCore "github.com/Ethernal-Tech/peggy-relayer/api/core"
	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/telemetry"
)

const (
	defaultPullTimeMilis         = 10_000
	defaultTxTimeoutSeconds      = 120
	defaultGasCeiling            = 1_000_000
	defaultLogSearchBlocks       = 5_000
	defaultRequestTimeoutSeconds = 30
	defaultReadRetries           = 3
)

type CosmosConfig struct {
	LcdURL                string `json:"lcdUrl"`
	PeggyRoute            string `json:"peggyRoute"`
	RequestTimeoutSeconds uint64 `json:"requestTimeoutSeconds"`
}

func (c CosmosConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

type EthereumConfig struct {
	NodeURL          string  `json:"nodeUrl"`
	PeggyContract    string  `json:"peggyContract"`
	DynamicTx        bool    `json:"dynamicTx"`
	ZeroGasPrice     bool    `json:"zeroGasPrice"`
	GasCeiling       uint64  `json:"gasCeiling"`
	GasLimitFactor   float64 `json:"gasLimitFactor"`
	GasFeeMultiplier uint64  `json:"gasFeeMultiplier"`
	LogSearchBlocks  uint64  `json:"logSearchBlocks"`
	MaxSearchBlocks  uint64  `json:"maxSearchBlocks"`
}

type SecretsConfig struct {
	DataDir            string `json:"dataDir"`
	ConfigPath         string `json:"configPath"`
	KeyName            string `json:"keyName"`
	InsecureLocalStore bool   `json:"insecureLocalStore"`
}

type RelayerConfiguration struct {
	PullTimeMilis          uint64 `json:"pullTimeMilis"`
	TxTimeoutSeconds       uint64 `json:"txTimeoutSeconds"`
	AllowMissingSignatures bool   `json:"allowMissingSignatures"`
	PowerThreshold         uint64 `json:"powerThreshold"`
	ReadRetries            uint64 `json:"readRetries"`
	RelayValsets           bool   `json:"relayValsets"`
	RelayBatches           bool   `json:"relayBatches"`
}

func (c RelayerConfiguration) TxTimeout() time.Duration {
	return time.Duration(c.TxTimeoutSeconds) * time.Second
}

func (c RelayerConfiguration) PullTime() time.Duration {
	return time.Duration(c.PullTimeMilis) * time.Millisecond
}

type RelayerManagerConfiguration struct {
	Cosmos    CosmosConfig              `json:"cosmos"`
	Ethereum  EthereumConfig            `json:"ethereum"`
	Relayer   RelayerConfiguration      `json:"relayer"`
	Secrets   SecretsConfig             `json:"secrets"`
	DbsPath   string                    `json:"dbsPath"`
	API       apiCore.APIConfig         `json:"api"`
	Telemetry telemetry.TelemetryConfig `json:"telemetry"`
	Logger    logger.LoggerConfig       `json:"logger"`
}

// FillDefaults sets every zero value that has a sensible default
func (c *RelayerManagerConfiguration) FillDefaults() {
	if c.Relayer.PullTimeMilis == 0 {
		c.Relayer.PullTimeMilis = defaultPullTimeMilis
	}

	if c.Relayer.TxTimeoutSeconds == 0 {
		c.Relayer.TxTimeoutSeconds = defaultTxTimeoutSeconds
	}

	if c.Relayer.ReadRetries == 0 {
		c.Relayer.ReadRetries = defaultReadRetries
	}

	if c.Ethereum.GasCeiling == 0 {
		c.Ethereum.GasCeiling = defaultGasCeiling
	}

	if c.Ethereum.LogSearchBlocks == 0 {
		c.Ethereum.LogSearchBlocks = defaultLogSearchBlocks
	}

	if c.Ethereum.GasLimitFactor == 0 {
		c.Ethereum.GasLimitFactor = 1
	}

	if c.Cosmos.PeggyRoute == "" {
		c.Cosmos.PeggyRoute = "peggy"
	}

	if c.Cosmos.RequestTimeoutSeconds == 0 {
		c.Cosmos.RequestTimeoutSeconds = defaultRequestTimeoutSeconds
	}

	if c.Secrets.KeyName == "" {
		c.Secrets.KeyName = "peggy"
	}
}

func (c *RelayerManagerConfiguration) ValidateConfig() error {
	var errs []error

	if !common.IsValidURL(c.Cosmos.LcdURL) {
		errs = append(errs, fmt.Errorf("invalid cosmos lcd url: %s", c.Cosmos.LcdURL))
	}

	if !common.IsValidURL(c.Ethereum.NodeURL) {
		errs = append(errs, fmt.Errorf("invalid ethereum node url: %s", c.Ethereum.NodeURL))
	}

	if !common.IsValidEthAddress(c.Ethereum.PeggyContract) {
		errs = append(errs, fmt.Errorf("invalid peggy contract address: %s", c.Ethereum.PeggyContract))
	}

	if c.Ethereum.GasLimitFactor < 1 {
		errs = append(errs, fmt.Errorf("gas limit factor must be at least 1: %v", c.Ethereum.GasLimitFactor))
	}

	if c.Ethereum.MaxSearchBlocks != 0 && c.Ethereum.MaxSearchBlocks < c.Ethereum.LogSearchBlocks {
		errs = append(errs, errors.New("max search blocks can not be lower than log search blocks"))
	}

	if !c.Relayer.RelayValsets && !c.Relayer.RelayBatches {
		errs = append(errs, errors.New("nothing to relay: both valsets and batches are disabled"))
	}

	if c.Secrets.ConfigPath == "" && c.Secrets.DataDir == "" {
		errs = append(errs, errors.New("secrets data dir or config path must be specified"))
	}

	return errors.Join(errs...)
}
