package ethtxhelper

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/Ethernal-Tech/cardano-infrastructure/secrets"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// IEthTxWallet signs relayer transactions. The private key never leaves the wallet.
type IEthTxWallet interface {
	GetTransactOpts(chainID *big.Int) (*bind.TransactOpts, error)
	GetAddress() common.Address
}

type EthTxWallet struct {
	addr       common.Address
	privateKey *ecdsa.PrivateKey
}

var _ IEthTxWallet = (*EthTxWallet)(nil)

func NewEthTxWallet(pk string) (*EthTxWallet, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(pk), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return newEthTxWallet(privateKey), nil
}

func GenerateNewEthTxWallet() (*EthTxWallet, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	return newEthTxWallet(privateKey), nil
}

func newEthTxWallet(privateKey *ecdsa.PrivateKey) *EthTxWallet {
	return &EthTxWallet{
		privateKey: privateKey,
		addr:       crypto.PubkeyToAddress(privateKey.PublicKey),
	}
}

func (w EthTxWallet) GetTransactOpts(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(w.privateKey, chainID)
}

func (w EthTxWallet) GetAddress() common.Address {
	return w.addr
}

func (w EthTxWallet) GetAddressHex() string {
	return w.addr.String()
}

func (w EthTxWallet) GetPrivateKeyBytes() []byte {
	return crypto.FromECDSA(w.privateKey)
}

func (w EthTxWallet) SignTx(chainID *big.Int, tx *types.Transaction) (*types.Transaction, error) {
	return types.SignTx(tx, types.NewLondonSigner(chainID), w.privateKey)
}

// Save stores the hex encoded private key under keyName
func (w EthTxWallet) Save(secretsManager secrets.SecretsManager, keyName string) error {
	return secretsManager.SetSecret(keyName, []byte(hex.EncodeToString(w.GetPrivateKeyBytes())))
}

// String does not expose the key, only the address
func (w EthTxWallet) String() string {
	return w.addr.String()
}
