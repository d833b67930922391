package ethtxhelper

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	peggyCommon "github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

type SendTxFunc func(*bind.TransactOpts) (*types.Transaction, error)

const (
	defaultGasLimit           = uint64(5_242_880) // 0x500000
	defaultGasFeeMultiplier   = 170               // 170%
	defaultReceiptWaitTime    = 500 * time.Millisecond
	defaultReceiptRetryPeriod = time.Second
)

// EthClient is the part of *ethclient.Client the relayer needs
type EthClient interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	NonceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (uint64, error)
	BlockNumber(ctx context.Context) (uint64, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	FeeHistory(
		ctx context.Context, blockCount uint64, lastBlock *big.Int, rewardPercentiles []float64,
	) (*ethereum.FeeHistory, error)
}

var _ EthClient = (*ethclient.Client)(nil)

type IEthTxHelper interface {
	GetClient() EthClient
	GetNonce(ctx context.Context, addr string, pending bool) (uint64, error)
	WaitForReceipt(ctx context.Context, hash string, timeout time.Duration) (*types.Receipt, error)
	SendTx(ctx context.Context, wallet IEthTxWallet,
		txOpts bind.TransactOpts, sendTxHandler SendTxFunc) (*types.Transaction, error)
	EstimateGas(
		ctx context.Context, from, to common.Address, value *big.Int, gasLimitMultiplier float64, data []byte,
	) (uint64, uint64, error)
	PopulateTxOpts(ctx context.Context, from common.Address, txOpts *bind.TransactOpts) error
}

type EthTxHelperImpl struct {
	client             EthClient
	nodeURL            string
	clock              clock.Clock
	receiptWaitTime    time.Duration
	receiptRetryPeriod time.Duration
	gasFeeMultiplier   uint64
	isDynamic          bool
	zeroGasPrice       bool
	defaultGasLimit    uint64
	chainID            *big.Int
	mutex              sync.Mutex
}

var _ IEthTxHelper = (*EthTxHelperImpl)(nil)

func NewEThTxHelper(opts ...TxRelayerOption) (*EthTxHelperImpl, error) {
	t := &EthTxHelperImpl{
		clock:              clock.New(),
		receiptWaitTime:    defaultReceiptWaitTime,
		receiptRetryPeriod: defaultReceiptRetryPeriod,
		gasFeeMultiplier:   defaultGasFeeMultiplier,
		defaultGasLimit:    defaultGasLimit,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.client == nil {
		client, err := ethclient.Dial(t.nodeURL)
		if err != nil {
			return nil, err
		}

		t.client = client
	}

	return t, nil
}

func (t *EthTxHelperImpl) GetClient() EthClient {
	return t.client
}

func (t *EthTxHelperImpl) GetNonce(ctx context.Context, addr string, pending bool) (uint64, error) {
	if pending {
		return t.client.PendingNonceAt(ctx, common.HexToAddress(addr))
	}

	return t.client.NonceAt(ctx, common.HexToAddress(addr), nil)
}

// WaitForReceipt polls for the receipt until it shows up or timeout elapses.
// Transport failures are retried with whatever part of timeout is still left.
// A reverted receipt is returned as is, the caller decides what a revert means.
func (t *EthTxHelperImpl) WaitForReceipt(
	ctx context.Context, hash string, timeout time.Duration,
) (*types.Receipt, error) {
	return peggyCommon.RetryWithinBudget(ctx, timeout,
		func(ctx context.Context, remaining time.Duration) (*types.Receipt, error) {
			return t.pollReceipt(ctx, common.HexToHash(hash), remaining)
		},
		peggyCommon.WithBudgetClock(t.clock),
		peggyCommon.WithBudgetBackoff(t.receiptRetryPeriod),
		peggyCommon.WithBudgetIsRetryable(IsRetryableEthError))
}

func (t *EthTxHelperImpl) pollReceipt(
	ctx context.Context, hash common.Hash, timeout time.Duration,
) (*types.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		receipt, err := t.client.TransactionReceipt(ctx, hash)
		if err == nil && receipt != nil {
			return receipt, nil
		} else if err != nil && !errors.Is(err, ethereum.NotFound) {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("timeout while waiting for transaction %s: %w", hash, ctx.Err())
			}

			return nil, err
		}

		select {
		case <-t.clock.After(t.receiptWaitTime):
		case <-ctx.Done():
			return nil, fmt.Errorf("timeout while waiting for transaction %s: %w", hash, ctx.Err())
		}
	}
}

func (t *EthTxHelperImpl) SendTx(
	ctx context.Context, wallet IEthTxWallet, txOptsParam bind.TransactOpts, sendTxHandler SendTxFunc,
) (*types.Transaction, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	chainID := t.chainID
	if chainID == nil {
		retChainID, err := t.client.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve chain id: %w", err)
		}

		t.chainID = retChainID
		chainID = retChainID
	}

	txOptsRes, err := wallet.GetTransactOpts(chainID)
	if err != nil {
		return nil, err
	}

	copyTxOpts(txOptsRes, &txOptsParam)

	if err := t.PopulateTxOpts(ctx, wallet.GetAddress(), txOptsRes); err != nil {
		return nil, err
	}

	return sendTxHandler(txOptsRes)
}

// EstimateGas returns the estimate scaled by gasLimitMultiplier together with the raw estimate
func (t *EthTxHelperImpl) EstimateGas(
	ctx context.Context, from, to common.Address, value *big.Int, gasLimitMultiplier float64, data []byte,
) (uint64, uint64, error) {
	estimatedGas, err := t.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  from,
		To:    &to,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return 0, 0, err
	}

	return peggyCommon.MulFloat(estimatedGas, gasLimitMultiplier), estimatedGas, nil
}

func (t *EthTxHelperImpl) PopulateTxOpts(
	ctx context.Context, from common.Address, txOpts *bind.TransactOpts,
) error {
	txOpts.Context = ctx
	txOpts.From = from

	if txOpts.Nonce == nil {
		nonce, err := t.client.PendingNonceAt(ctx, txOpts.From)
		if err != nil {
			return err
		}

		txOpts.Nonce = new(big.Int).SetUint64(nonce)
	}

	if txOpts.GasLimit == 0 {
		txOpts.GasLimit = t.defaultGasLimit
	}

	if !t.isDynamic {
		if txOpts.GasPrice == nil {
			if t.zeroGasPrice {
				txOpts.GasPrice = big.NewInt(0)
			} else {
				gasPrice, err := t.client.SuggestGasPrice(ctx)
				if err != nil {
					return err
				}

				txOpts.GasPrice = peggyCommon.MulPercentage(gasPrice, t.gasFeeMultiplier)
			}
		}
	} else if txOpts.GasFeeCap == nil || txOpts.GasTipCap == nil {
		gasTipCap, err := t.client.SuggestGasTipCap(ctx)
		if err != nil {
			return err
		}

		txOpts.GasTipCap = peggyCommon.MulPercentage(gasTipCap, t.gasFeeMultiplier)

		hs, err := t.client.FeeHistory(ctx, 1, nil, nil)
		if err != nil {
			return err
		}

		if len(hs.BaseFee) == 0 {
			return errors.New("fee history returned no base fee")
		}

		gasFeeCap := new(big.Int).Add(hs.BaseFee[len(hs.BaseFee)-1], gasTipCap)

		txOpts.GasFeeCap = peggyCommon.MulPercentage(gasFeeCap, t.gasFeeMultiplier)
	}

	return nil
}

type TxRelayerOption func(*EthTxHelperImpl)

func WithDynamicTx(value bool) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.isDynamic = value
	}
}

func WithClient(client EthClient) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.client = client
	}
}

func WithNodeURL(nodeURL string) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.nodeURL = nodeURL
	}
}

func WithClock(clk clock.Clock) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.clock = clk
	}
}

// WithReceiptWaitTime sets the pause between two eth_getTransactionReceipt calls
func WithReceiptWaitTime(receiptWaitTime time.Duration) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.receiptWaitTime = receiptWaitTime
	}
}

// WithReceiptRetryPeriod sets the pause after a failed receipt request before it is tried again
func WithReceiptRetryPeriod(period time.Duration) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.receiptRetryPeriod = period
	}
}

func WithGasFeeMultiplier(gasFeeMultiplier uint64) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.gasFeeMultiplier = gasFeeMultiplier
	}
}

func WithZeroGasPrice(zeroGasPrice bool) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.zeroGasPrice = zeroGasPrice
	}
}

func WithDefaultGasLimit(gasLimit uint64) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.defaultGasLimit = gasLimit
	}
}

func WithChainID(chainID *big.Int) TxRelayerOption {
	return func(t *EthTxHelperImpl) {
		t.chainID = chainID
	}
}

func copyTxOpts(dst, src *bind.TransactOpts) {
	dst.NoSend = src.NoSend
	dst.GasPrice = src.GasPrice
	dst.GasFeeCap = src.GasFeeCap
	dst.GasTipCap = src.GasTipCap
	dst.GasLimit = src.GasLimit
	dst.Nonce = src.Nonce
	dst.Value = src.Value
}
