package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

func (c *Contact) GetLatestBlock(ctx context.Context) (*LatestBlockResponse, error) {
	block, err := Get[LatestBlockResponse](ctx, c, "blocks/latest")
	if err != nil {
		return nil, err
	}

	return &block, nil
}

func (c *Contact) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	block, err := c.GetLatestBlock(ctx)
	if err != nil {
		return 0, err
	}

	return block.Block.LastCommit.Height, nil
}

// GetAccountInfo returns a nil Value when the account was never funded
func (c *Contact) GetAccountInfo(
	ctx context.Context, address string,
) (*ResponseWrapper[TypeWrapper[*CosmosAccountInfo]], error) {
	if strings.TrimSpace(address) == "" {
		return nil, newError(BadInput, "empty account address")
	}

	raw, err := Get[ResponseWrapper[TypeWrapper[json.RawMessage]]](ctx, c, "auth/accounts/"+address)
	if err != nil {
		return nil, err
	}

	result := &ResponseWrapper[TypeWrapper[*CosmosAccountInfo]]{
		Height: raw.Height,
		Result: TypeWrapper[*CosmosAccountInfo]{Type: raw.Result.Type},
	}

	var info CosmosAccountInfo
	if len(raw.Result.Value) > 0 && json.Unmarshal(raw.Result.Value, &info) == nil && info.Address != "" {
		result.Result.Value = &info
	} else {
		c.logger.Debug("account has no info", "address", address)
	}

	return result, nil
}

func (c *Contact) GetBalances(ctx context.Context, address string) (*ResponseWrapper[[]Coin], error) {
	balances, err := Get[ResponseWrapper[[]Coin]](ctx, c, "bank/balances/"+address)
	if err != nil {
		return nil, err
	}

	return &balances, nil
}

func (c *Contact) GetTxByHash(ctx context.Context, txHash string) (*TxSendResponse, error) {
	tx, err := Get[TxSendResponse](ctx, c, "txs/"+txHash)
	if err != nil {
		return nil, err
	}

	return &tx, nil
}

// MaybeGetOptionalTxInfo fills in account number, sequence and chain id needed to sign a transaction
func (c *Contact) MaybeGetOptionalTxInfo(ctx context.Context, address string) (*OptionalTxInfo, error) {
	account, err := c.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}

	if account.Result.Value == nil {
		return nil, &JsonRpcError{Kind: NoToken, Message: fmt.Sprintf("account %s not found", address)}
	}

	block, err := c.GetLatestBlock(ctx)
	if err != nil {
		return nil, err
	}

	return &OptionalTxInfo{
		ChainID:       block.Block.Header.ChainID,
		AccountNumber: account.Result.Value.AccountNumber,
		Sequence:      account.Result.Value.Sequence,
	}, nil
}
