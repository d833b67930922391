package ethtxhelper

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// TxPoolContent is the txpool_contentFrom result, keyed by account nonce
type TxPoolContent struct {
	Pending map[uint64]*types.Transaction `json:"pending"`
	Queued  map[uint64]*types.Transaction `json:"queued"`
}

func (c TxPoolContent) FindTx(txHash common.Hash) (nonce uint64, pending bool, found bool) {
	for nonce, tx := range c.Pending {
		if tx.Hash() == txHash {
			return nonce, true, true
		}
	}

	for nonce, tx := range c.Queued {
		if tx.Hash() == txHash {
			return nonce, false, true
		}
	}

	return 0, false, false
}

type RPCCaller interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

var _ RPCCaller = (*rpc.Client)(nil)

func GetTxPoolStateForAddr(
	ctx context.Context, rpcClient RPCCaller, addr common.Address,
) (result TxPoolContent, err error) {
	err = rpcClient.CallContext(ctx, &result, "txpool_contentFrom", addr)

	return result, err
}

// TxPoolStatus reports where a transaction sits in the node's pool: "pending", "queued" or "missing"
func TxPoolStatus(
	ctx context.Context, rpcClient RPCCaller, addr common.Address, txHashStr string,
) (string, error) {
	content, err := GetTxPoolStateForAddr(ctx, rpcClient, addr)
	if err != nil {
		return "", err
	}

	_, pending, found := content.FindTx(common.HexToHash(txHashStr))

	switch {
	case !found:
		return "missing", nil
	case pending:
		return "pending", nil
	default:
		return "queued", nil
	}
}
