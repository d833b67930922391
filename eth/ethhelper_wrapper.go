package eth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	peggyCommon "github.com/Ethernal-Tech/peggy-relayer/common"
	ethtxhelper "github.com/Ethernal-Tech/peggy-relayer/eth/txhelper"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/go-hclog"
)

// EthHelperWrapper lazily creates the tx helper and drops it when the connection looks broken,
// so the next call dials the node again
type EthHelperWrapper struct {
	newHelper   func() (ethtxhelper.IEthTxHelper, error)
	ethTxHelper ethtxhelper.IEthTxHelper
	lock        sync.Mutex
	logger      hclog.Logger
}

func NewEthHelperWrapper(logger hclog.Logger, opts ...ethtxhelper.TxRelayerOption) *EthHelperWrapper {
	opts = append([]ethtxhelper.TxRelayerOption(nil), opts...)

	return &EthHelperWrapper{
		newHelper: func() (ethtxhelper.IEthTxHelper, error) {
			return ethtxhelper.NewEThTxHelper(opts...)
		},
		logger: logger,
	}
}

// NewEthHelperWrapperWithHelper always hands out ethTxHelper
func NewEthHelperWrapperWithHelper(ethTxHelper ethtxhelper.IEthTxHelper, logger hclog.Logger) *EthHelperWrapper {
	return &EthHelperWrapper{
		newHelper: func() (ethtxhelper.IEthTxHelper, error) {
			return ethTxHelper, nil
		},
		logger: logger,
	}
}

func (e *EthHelperWrapper) GetEthHelper() (ethtxhelper.IEthTxHelper, error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if e.ethTxHelper != nil {
		return e.ethTxHelper, nil
	}

	ethTxHelper, err := e.newHelper()
	if err != nil {
		return nil, fmt.Errorf("error while NewEThTxHelper: %w", err)
	}

	e.ethTxHelper = ethTxHelper

	return ethTxHelper, nil
}

func (e *EthHelperWrapper) ProcessError(err error) error {
	var netErr net.Error

	if errors.Is(err, net.ErrClosed) || errors.Is(err, rpc.ErrClientQuit) ||
		(errors.As(err, &netErr) && netErr.Timeout()) {
		e.logger.Debug("dropping eth client", "err", err)

		e.lock.Lock()
		e.ethTxHelper = nil
		e.lock.Unlock()
	}

	return err
}

// TxPoolStatus asks the node where a transaction sits, it returns "unknown" when the node can not tell
func (e *EthHelperWrapper) TxPoolStatus(ctx context.Context, addr common.Address, txHash string) string {
	ethTxHelper, err := e.GetEthHelper()
	if err != nil {
		return "unknown"
	}

	rpcClient, ok := ethTxHelper.GetClient().(interface{ Client() *rpc.Client })
	if !ok {
		return "unknown"
	}

	status, err := ethtxhelper.TxPoolStatus(ctx, rpcClient.Client(), addr, txHash)
	if err != nil {
		if !peggyCommon.IsContextDoneErr(err) {
			e.logger.Debug("txpool status not available", "hash", txHash, "err", err)
		}

		return "unknown"
	}

	return status
}
