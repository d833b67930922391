package relayer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/Ethernal-Tech/peggy-relayer/telemetry"
	"github.com/hashicorp/go-hclog"
)

type RelayerImpl struct {
	config        *core.RelayerConfiguration
	valsetRelayer core.ValsetUpdateRelayer
	batchRelayer  core.BatchRelayer
	logger        hclog.Logger
}

var _ core.Relayer = (*RelayerImpl)(nil)

func NewRelayer(
	config *core.RelayerConfiguration,
	valsetRelayer core.ValsetUpdateRelayer, batchRelayer core.BatchRelayer,
	logger hclog.Logger,
) *RelayerImpl {
	return &RelayerImpl{
		config:        config,
		valsetRelayer: valsetRelayer,
		batchRelayer:  batchRelayer,
		logger:        logger,
	}
}

func (r *RelayerImpl) Start(ctx context.Context) {
	r.logger.Debug("Relayer started", "pull time", r.config.PullTime())

	ticker := time.NewTicker(r.config.PullTime())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Relayer stopped")

			return
		case <-ticker.C:
		}

		if err := r.Execute(ctx); err != nil {
			r.logger.Error("execute failed", "err", err)
		}
	}
}

// Execute runs one valset pass followed by one batch pass, whichever are enabled
func (r *RelayerImpl) Execute(ctx context.Context) error {
	var errs []error

	if r.config.RelayValsets && r.valsetRelayer != nil {
		if err := r.valsetRelayer.RelayValsets(ctx); err != nil {
			telemetry.IncrPassFailedCounter(string(core.SubmissionKindValset))

			errs = append(errs, fmt.Errorf("valset pass: %w", err))
		}
	}

	if ctx.Err() != nil {
		return errors.Join(append(errs, ctx.Err())...)
	}

	if r.config.RelayBatches && r.batchRelayer != nil {
		if err := r.batchRelayer.RelayBatches(ctx); err != nil {
			telemetry.IncrPassFailedCounter(string(core.SubmissionKindBatch))

			errs = append(errs, fmt.Errorf("batch pass: %w", err))
		}
	}

	return errors.Join(errs...)
}
