package eth

import (
	"fmt"

	"github.com/Ethernal-Tech/cardano-infrastructure/secrets"
	ethtxhelper "github.com/Ethernal-Tech/peggy-relayer/eth/txhelper"
)

func RelayerEVMKeyName(name string) string {
	return fmt.Sprintf("%s%s_relayer_evm_key", secrets.OtherKeyLocalPrefix, name)
}

func GetRelayerEVMPrivateKey(secretsManager secrets.SecretsManager, name string) (*ethtxhelper.EthTxWallet, error) {
	pkBytes, err := secretsManager.GetSecret(RelayerEVMKeyName(name))
	if err != nil {
		return nil, err
	}

	return ethtxhelper.NewEthTxWallet(string(pkBytes))
}

// CreateAndSaveRelayerEVMPrivateKey returns the stored key unless forceRegenerate is set
func CreateAndSaveRelayerEVMPrivateKey(
	secretsManager secrets.SecretsManager, name string, forceRegenerate bool,
) (*ethtxhelper.EthTxWallet, error) {
	keyName := RelayerEVMKeyName(name)

	if secretsManager.HasSecret(keyName) {
		if !forceRegenerate {
			return GetRelayerEVMPrivateKey(secretsManager, name)
		}

		if err := secretsManager.RemoveSecret(keyName); err != nil {
			return nil, err
		}
	}

	wallet, err := ethtxhelper.GenerateNewEthTxWallet()
	if err != nil {
		return nil, err
	}

	return wallet, wallet.Save(secretsManager, keyName)
}

// ImportRelayerEVMPrivateKey stores an existing hex encoded key
func ImportRelayerEVMPrivateKey(
	secretsManager secrets.SecretsManager, name string, privateKey string,
) (*ethtxhelper.EthTxWallet, error) {
	wallet, err := ethtxhelper.NewEthTxWallet(privateKey)
	if err != nil {
		return nil, err
	}

	keyName := RelayerEVMKeyName(name)

	if secretsManager.HasSecret(keyName) {
		if err := secretsManager.RemoveSecret(keyName); err != nil {
			return nil, err
		}
	}

	return wallet, wallet.Save(secretsManager, keyName)
}
