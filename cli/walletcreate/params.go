package cliwalletcreate

import (
	"fmt"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/eth"
	"github.com/spf13/cobra"
)

const (
	dataDirFlag         = "data-dir"
	secretsConfigFlag   = "secrets-config"
	keyNameFlag         = "key-name"
	privateKeyFlag      = "private-key"
	forceRegenerateFlag = "force"
	showPrivateKeyFlag  = "show-pk"

	dataDirFlagDesc         = "(mandatory secrets-config not specified) Path to data directory when using local secrets manager" //nolint:lll
	secretsConfigFlagDesc   = "(mandatory data-dir not specified) Path to secrets manager config file"
	keyNameFlagDesc         = "name of the relayer key"
	privateKeyFlagDesc      = "hex encoded ethereum private key to import instead of generating a new one"
	forceRegenerateFlagDesc = "force regenerating keys even if they exist in specified directory"
	showPrivateKeyFlagDesc  = "show private key in output"

	defaultKeyName = "peggy"
)

type walletCreateParams struct {
	dataDir         string
	secretsConfig   string
	keyName         string
	privateKey      string
	forceRegenerate bool
	showPrivateKey  bool
}

func (ip *walletCreateParams) validateFlags() error {
	if ip.dataDir == "" && ip.secretsConfig == "" {
		return fmt.Errorf("specify at least one of: %s, %s", dataDirFlag, secretsConfigFlag)
	}

	if ip.keyName == "" {
		return fmt.Errorf("--%s flag not specified", keyNameFlag)
	}

	if ip.privateKey != "" && ip.forceRegenerate {
		return fmt.Errorf("--%s can not be combined with --%s", privateKeyFlag, forceRegenerateFlag)
	}

	return nil
}

func (ip *walletCreateParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&ip.dataDir,
		dataDirFlag,
		"",
		dataDirFlagDesc,
	)

	cmd.Flags().StringVar(
		&ip.secretsConfig,
		secretsConfigFlag,
		"",
		secretsConfigFlagDesc,
	)

	cmd.Flags().StringVar(
		&ip.keyName,
		keyNameFlag,
		defaultKeyName,
		keyNameFlagDesc,
	)

	cmd.Flags().StringVar(
		&ip.privateKey,
		privateKeyFlag,
		"",
		privateKeyFlagDesc,
	)

	cmd.Flags().BoolVar(
		&ip.forceRegenerate,
		forceRegenerateFlag,
		false,
		forceRegenerateFlagDesc,
	)

	cmd.Flags().BoolVar(
		&ip.showPrivateKey,
		showPrivateKeyFlag,
		false,
		showPrivateKeyFlagDesc,
	)

	cmd.MarkFlagsMutuallyExclusive(dataDirFlag, secretsConfigFlag)
}

func (ip *walletCreateParams) Execute() (common.ICommandResult, error) {
	secretsManager, err := common.GetSecretsManager(ip.dataDir, ip.secretsConfig, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets manager: %w", err)
	}

	if ip.privateKey != "" {
		wallet, err := eth.ImportRelayerEVMPrivateKey(secretsManager, ip.keyName, ip.privateKey)
		if err != nil {
			return nil, fmt.Errorf("failed to import relayer key: %w", err)
		}

		return newCmdResult(wallet, ip.keyName, ip.showPrivateKey), nil
	}

	wallet, err := eth.CreateAndSaveRelayerEVMPrivateKey(secretsManager, ip.keyName, ip.forceRegenerate)
	if err != nil {
		return nil, fmt.Errorf("failed to create relayer key: %w", err)
	}

	return newCmdResult(wallet, ip.keyName, ip.showPrivateKey), nil
}
