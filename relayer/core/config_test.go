package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validManagerConfig() *RelayerManagerConfiguration {
	config := &RelayerManagerConfiguration{
		Cosmos: CosmosConfig{LcdURL: "http://localhost:1317"},
		Ethereum: EthereumConfig{
			NodeURL:       "http://localhost:8545",
			PeggyContract: "0x5FbDB2315678afecb367f032d93F642f64180aa3",
		},
		Relayer: RelayerConfiguration{RelayValsets: true},
		Secrets: SecretsConfig{DataDir: "/tmp/relayer"},
	}
	config.FillDefaults()

	return config
}

func TestRelayerManagerConfiguration_FillDefaults(t *testing.T) {
	config := validManagerConfig()

	require.Equal(t, uint64(defaultPullTimeMilis), config.Relayer.PullTimeMilis)
	require.Equal(t, uint64(defaultReadRetries), config.Relayer.ReadRetries)
	require.Equal(t, uint64(defaultGasCeiling), config.Ethereum.GasCeiling)
	require.Equal(t, uint64(defaultLogSearchBlocks), config.Ethereum.LogSearchBlocks)
	require.Equal(t, float64(1), config.Ethereum.GasLimitFactor)
	require.Equal(t, "peggy", config.Cosmos.PeggyRoute)
	require.Equal(t, "peggy", config.Secrets.KeyName)
	require.Equal(t, "2m0s", config.Relayer.TxTimeout().String())

	config.Relayer.PullTimeMilis = 300
	config.FillDefaults()

	require.Equal(t, "300ms", config.Relayer.PullTime().String())
}

func TestRelayerManagerConfiguration_ValidateConfig(t *testing.T) {
	require.NoError(t, validManagerConfig().ValidateConfig())

	config := validManagerConfig()
	config.Cosmos.LcdURL = "localhost"
	config.Ethereum.PeggyContract = "0x12"
	config.Ethereum.GasLimitFactor = 0.5

	err := config.ValidateConfig()
	require.ErrorContains(t, err, "invalid cosmos lcd url")
	require.ErrorContains(t, err, "invalid peggy contract address")
	require.ErrorContains(t, err, "gas limit factor")

	config = validManagerConfig()
	config.Ethereum.MaxSearchBlocks = 10

	require.ErrorContains(t, config.ValidateConfig(), "max search blocks")

	config = validManagerConfig()
	config.Relayer.RelayValsets = false

	require.ErrorContains(t, config.ValidateConfig(), "nothing to relay")

	config = validManagerConfig()
	config.Secrets = SecretsConfig{}

	require.ErrorContains(t, config.ValidateConfig(), "secrets")
}
