package eth

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	peggyCommon "github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/contractbinding"
	ethtxhelper "github.com/Ethernal-Tech/peggy-relayer/eth/txhelper"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/hashicorp/go-hclog"
)

const defaultLogSearchBlocks = 5_000

// PeggyContractStatus is a snapshot of the contract state, exposed for operators
type PeggyContractStatus struct {
	PeggyID              string `json:"peggyId"`
	PowerThreshold       string `json:"powerThreshold"`
	LastValsetNonce      uint64 `json:"lastValsetNonce"`
	LastValsetCheckpoint string `json:"lastValsetCheckpoint"`
}

type PeggySmartContractConfig struct {
	ContractAddress string
	GasLimitFactor  float64
	LogSearchBlocks uint64
	// MaxSearchBlocks bounds how far back events are looked up, 0 means down to genesis
	MaxSearchBlocks uint64
	ReadRetries     uint64
}

// PeggySmartContract reads the Peggy contract and submits relayer transactions to it
type PeggySmartContract struct {
	config          PeggySmartContractConfig
	contractAddress common.Address
	wallet          ethtxhelper.IEthTxWallet
	ethHelper       *EthHelperWrapper
	logger          hclog.Logger
}

var (
	_ core.DestinationChain = (*PeggySmartContract)(nil)
	_ core.Submitter        = (*PeggySmartContract)(nil)
)

func NewPeggySmartContract(
	config PeggySmartContractConfig, wallet ethtxhelper.IEthTxWallet,
	ethHelper *EthHelperWrapper, logger hclog.Logger,
) *PeggySmartContract {
	if config.LogSearchBlocks == 0 {
		config.LogSearchBlocks = defaultLogSearchBlocks
	}

	if config.GasLimitFactor < 1 {
		config.GasLimitFactor = 1
	}

	return &PeggySmartContract{
		config:          config,
		contractAddress: common.HexToAddress(config.ContractAddress),
		wallet:          wallet,
		ethHelper:       ethHelper,
		logger:          logger,
	}
}

func (p *PeggySmartContract) GetValsetNonce(ctx context.Context) (uint64, error) {
	return executeRead(ctx, p, func(ctx context.Context, contract *contractbinding.Peggy) (uint64, error) {
		nonce, err := contract.StateLastValsetNonce(&bind.CallOpts{Context: ctx})
		if err != nil {
			return 0, err
		}

		return nonce.Uint64(), nil
	})
}

func (p *PeggySmartContract) GetBatchNonce(ctx context.Context, tokenContract string) (uint64, error) {
	if !peggyCommon.IsValidEthAddress(tokenContract) {
		return 0, fmt.Errorf("invalid token contract: %s", tokenContract)
	}

	return executeRead(ctx, p, func(ctx context.Context, contract *contractbinding.Peggy) (uint64, error) {
		nonce, err := contract.LastBatchNonce(&bind.CallOpts{Context: ctx}, common.HexToAddress(tokenContract))
		if err != nil {
			return 0, err
		}

		return nonce.Uint64(), nil
	})
}

// GetAccountSequence returns the pending nonce of the relayer account
func (p *PeggySmartContract) GetAccountSequence(ctx context.Context) (uint64, error) {
	return executeRead(ctx, p, func(ctx context.Context, _ *contractbinding.Peggy) (uint64, error) {
		ethTxHelper, err := p.ethHelper.GetEthHelper()
		if err != nil {
			return 0, err
		}

		return ethTxHelper.GetNonce(ctx, p.wallet.GetAddress().String(), true)
	})
}

// GetValsetUpdatedEvent walks back from the latest block in windows of LogSearchBlocks
func (p *PeggySmartContract) GetValsetUpdatedEvent(ctx context.Context, nonce uint64) (*core.ValidatorSet, error) {
	ethTxHelper, err := p.ethHelper.GetEthHelper()
	if err != nil {
		return nil, err
	}

	latest, err := peggyCommon.ExecuteWithRetry(ctx, ethTxHelper.GetClient().BlockNumber, p.retryOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest block: %w", p.ethHelper.ProcessError(err))
	}

	end, searched := latest, uint64(0)

	for {
		start := uint64(0)
		if end+1 > p.config.LogSearchBlocks {
			start = end + 1 - p.config.LogSearchBlocks
		}

		valset, err := p.findValsetUpdatedEvent(ctx, nonce, start, end)
		if err != nil || valset != nil {
			return valset, err
		}

		searched += end - start + 1

		if start == 0 || (p.config.MaxSearchBlocks != 0 && searched >= p.config.MaxSearchBlocks) {
			p.logger.Debug("valset updated event not found",
				"nonce", nonce, "latest", latest, "searched", searched)

			return nil, nil
		}

		end = start - 1
	}
}

func (p *PeggySmartContract) findValsetUpdatedEvent(
	ctx context.Context, nonce, start, end uint64,
) (*core.ValidatorSet, error) {
	return executeRead(ctx, p, func(ctx context.Context, contract *contractbinding.Peggy) (*core.ValidatorSet, error) {
		it, err := contract.FilterValsetUpdatedEvent(&bind.FilterOpts{
			Start:   start,
			End:     &end,
			Context: ctx,
		}, []*big.Int{new(big.Int).SetUint64(nonce)})
		if err != nil {
			return nil, err
		}

		defer it.Close()

		var result *core.ValidatorSet

		for it.Next() {
			event := it.Event
			if event.NewValsetNonce.Uint64() != nonce || len(event.Validators) != len(event.Powers) {
				continue
			}

			members := make([]core.BridgeValidator, len(event.Validators))
			for i, addr := range event.Validators {
				members[i] = core.BridgeValidator{
					EthereumAddress: addr.String(),
					Power:           event.Powers[i].Uint64(),
				}
			}

			// the last event wins when the nonce was emitted more than once
			result = &core.ValidatorSet{
				Nonce:   nonce,
				Members: members,
				Height:  event.Raw.BlockNumber,
			}
		}

		return result, it.Error()
	})
}

func (p *PeggySmartContract) GetContractStatus(ctx context.Context) (*PeggyContractStatus, error) {
	return executeRead(ctx, p, func(ctx context.Context, contract *contractbinding.Peggy) (*PeggyContractStatus, error) {
		opts := &bind.CallOpts{Context: ctx}

		peggyID, err := contract.StatePeggyId(opts)
		if err != nil {
			return nil, err
		}

		threshold, err := contract.StatePowerThreshold(opts)
		if err != nil {
			return nil, err
		}

		nonce, err := contract.StateLastValsetNonce(opts)
		if err != nil {
			return nil, err
		}

		checkpoint, err := contract.StateLastValsetCheckpoint(opts)
		if err != nil {
			return nil, err
		}

		return &PeggyContractStatus{
			PeggyID:              string(common.TrimRightZeroes(peggyID[:])),
			PowerThreshold:       threshold.String(),
			LastValsetNonce:      nonce.Uint64(),
			LastValsetCheckpoint: "0x" + hex.EncodeToString(checkpoint[:]),
		}, nil
	})
}

// EstimateCost returns the gas estimate scaled by the configured gas limit factor
func (p *PeggySmartContract) EstimateCost(ctx context.Context, payload *core.TxPayload) (uint64, error) {
	ethTxHelper, err := p.ethHelper.GetEthHelper()
	if err != nil {
		return 0, err
	}

	gasLimit, estimated, err := ethTxHelper.EstimateGas(
		ctx, p.wallet.GetAddress(), p.contractAddress, nil, p.config.GasLimitFactor, payload.Data)
	if err != nil {
		return 0, p.ethHelper.ProcessError(err)
	}

	p.logger.Debug("gas estimated", "method", payload.Method, "estimated", estimated, "gas limit", gasLimit)

	return gasLimit, nil
}

func (p *PeggySmartContract) Submit(
	ctx context.Context, payload *core.TxPayload, opts core.SubmitOptions,
) (string, error) {
	ethTxHelper, err := p.ethHelper.GetEthHelper()
	if err != nil {
		return "", err
	}

	contract, err := contractbinding.NewPeggy(p.contractAddress, ethTxHelper.GetClient())
	if err != nil {
		return "", err
	}

	txOpts := bind.TransactOpts{GasLimit: opts.GasLimit}
	if opts.Nonce != nil {
		txOpts.Nonce = new(big.Int).SetUint64(*opts.Nonce)
	}

	tx, err := ethTxHelper.SendTx(ctx, p.wallet, txOpts, func(txOpts *bind.TransactOpts) (*types.Transaction, error) {
		return contract.RawTransact(txOpts, payload.Data)
	})
	if err != nil {
		return "", fmt.Errorf("failed to send %s: %w", payload.Method, p.ethHelper.ProcessError(err))
	}

	p.logger.Info("tx has been sent", "method", payload.Method, "hash", tx.Hash(),
		"nonce", tx.Nonce(), "gas limit", tx.Gas(), "gas price", tx.GasPrice())

	return tx.Hash().String(), nil
}

func (p *PeggySmartContract) WaitForInclusion(
	ctx context.Context, txHash string, timeout time.Duration,
) (*types.Receipt, error) {
	ethTxHelper, err := p.ethHelper.GetEthHelper()
	if err != nil {
		return nil, err
	}

	receipt, err := ethTxHelper.WaitForReceipt(ctx, txHash, timeout)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("tx not included", "hash", txHash, "timeout", timeout,
				"txpool", p.ethHelper.TxPoolStatus(ctx, p.wallet.GetAddress(), txHash))
		}

		return nil, p.ethHelper.ProcessError(err)
	}

	p.logger.Info("tx has been included in block", "hash", txHash, "status", receipt.Status,
		"block", receipt.BlockNumber, "gas used", receipt.GasUsed)

	return receipt, nil
}

func (p *PeggySmartContract) retryOptions() []peggyCommon.RetryOption {
	return []peggyCommon.RetryOption{
		peggyCommon.WithRetryCount(p.config.ReadRetries),
		peggyCommon.WithIsRetryableError(ethtxhelper.IsRetryableEthError),
	}
}

func executeRead[T any](
	ctx context.Context, p *PeggySmartContract,
	handler func(context.Context, *contractbinding.Peggy) (T, error),
) (T, error) {
	result, err := peggyCommon.ExecuteWithRetry(ctx, func(ctx context.Context) (T, error) {
		ethTxHelper, err := p.ethHelper.GetEthHelper()
		if err != nil {
			var zero T

			return zero, err
		}

		contract, err := contractbinding.NewPeggy(p.contractAddress, ethTxHelper.GetClient())
		if err != nil {
			var zero T

			return zero, err
		}

		result, err := handler(ctx, contract)

		return result, p.ethHelper.ProcessError(err)
	}, p.retryOptions()...)

	return result, err
}
