package peggy

import (
	"context"
	"fmt"
	"strings"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/cosmos/contact"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/hashicorp/go-hclog"
)

const (
	defaultRoute = "peggy"
	// batch and confirm lists grow with the number of transfers and validators
	queryResponseSizeLimit = 64 * 1024 * 1024
)

// PeggyClient reads the peggy module through the LCD rest server
type PeggyClient struct {
	contact    *contact.Contact
	route      string
	retryCount uint64
	logger     hclog.Logger
}

var _ core.SourceChain = (*PeggyClient)(nil)

func NewPeggyClient(
	contact *contact.Contact, route string, retryCount uint64, logger hclog.Logger,
) *PeggyClient {
	route = strings.Trim(route, "/")
	if route == "" {
		route = defaultRoute
	}

	return &PeggyClient{
		contact:    contact,
		route:      route,
		retryCount: retryCount,
		logger:     logger,
	}
}

func (p *PeggyClient) GetCurrentValset(ctx context.Context) (*core.ValidatorSet, error) {
	resp, err := query[*valsetResponse](ctx, p, "current_valset")
	if err != nil {
		return nil, fmt.Errorf("failed to query current valset: %w", err)
	}

	if resp == nil {
		return nil, fmt.Errorf("failed to query current valset: %w", core.ErrValsetNotFound)
	}

	return resp.toValidatorSet(), nil
}

// GetValsetRequest returns nil when the module does not know the nonce
func (p *PeggyClient) GetValsetRequest(ctx context.Context, nonce uint64) (*core.ValidatorSet, error) {
	resp, err := query[*valsetResponse](ctx, p, fmt.Sprintf("valset_request/%d", nonce))
	if err != nil {
		if contact.IsNotFound(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to query valset %d: %w", nonce, err)
	}

	if resp == nil {
		return nil, nil
	}

	return resp.toValidatorSet(), nil
}

func (p *PeggyClient) GetLatestValsets(ctx context.Context) ([]*core.ValidatorSet, error) {
	resp, err := query[[]valsetResponse](ctx, p, "valset_requests")
	if err != nil && !contact.IsNotFound(err) {
		return nil, fmt.Errorf("failed to query latest valsets: %w", err)
	}

	result := make([]*core.ValidatorSet, len(resp))
	for i, v := range resp {
		result[i] = v.toValidatorSet()
	}

	return result, nil
}

func (p *PeggyClient) GetValsetConfirms(ctx context.Context, nonce uint64) ([]*core.ValsetConfirmation, error) {
	resp, err := query[[]valsetConfirmResponse](ctx, p, fmt.Sprintf("valset_confirm/%d", nonce))
	if err != nil && !contact.IsNotFound(err) {
		return nil, fmt.Errorf("failed to query confirms for valset %d: %w", nonce, err)
	}

	result := make([]*core.ValsetConfirmation, len(resp))
	for i, c := range resp {
		result[i] = &core.ValsetConfirmation{
			Nonce:        c.Nonce,
			Orchestrator: c.Orchestrator,
			EthAddress:   c.EthAddress,
			Signature:    c.Signature,
		}
	}

	return result, nil
}

func (p *PeggyClient) GetLatestBatches(ctx context.Context) ([]*core.TransactionBatch, error) {
	resp, err := query[[]transactionBatchResponse](ctx, p, "transaction_batches")
	if err != nil && !contact.IsNotFound(err) {
		return nil, fmt.Errorf("failed to query latest batches: %w", err)
	}

	result := make([]*core.TransactionBatch, 0, len(resp))

	for _, b := range resp {
		batch, err := b.toTransactionBatch()
		if err != nil {
			p.logger.Warn("skipping malformed batch", "nonce", b.BatchNonce, "token", b.TokenContract, "err", err)

			continue
		}

		result = append(result, batch)
	}

	return result, nil
}

func (p *PeggyClient) GetBatchConfirms(
	ctx context.Context, nonce uint64, tokenContract string,
) ([]*core.BatchConfirmation, error) {
	resp, err := query[[]batchConfirmResponse](ctx, p, fmt.Sprintf("batch_confirm/%d/%s", nonce, tokenContract))
	if err != nil && !contact.IsNotFound(err) {
		return nil, fmt.Errorf("failed to query confirms for batch %d (%s): %w", nonce, tokenContract, err)
	}

	result := make([]*core.BatchConfirmation, len(resp))
	for i, c := range resp {
		result[i] = &core.BatchConfirmation{
			Nonce:         c.Nonce,
			TokenContract: c.TokenContract,
			Orchestrator:  c.Orchestrator,
			EthSigner:     c.EthSigner,
			Signature:     c.Signature,
		}
	}

	return result, nil
}

func query[T any](ctx context.Context, p *PeggyClient, path string) (T, error) {
	route := p.route + "/" + path

	resp, err := common.ExecuteWithRetry(ctx,
		func(ctx context.Context) (contact.ResponseWrapper[T], error) {
			return contact.GetWithLimit[contact.ResponseWrapper[T]](ctx, p.contact, route, queryResponseSizeLimit)
		},
		common.WithRetryCount(p.retryCount),
		common.WithIsRetryableError(func(err error) bool {
			return contact.IsRetryableError(err) && !contact.IsNotFound(err) && !common.IsContextDoneErr(err)
		}))
	if err != nil {
		var zero T

		return zero, err
	}

	p.logger.Trace("peggy query", "route", route, "height", resp.Height)

	return resp.Result, nil
}
