package controllers

import (
	"context"
	"net/http"
	"time"

	apiCore "github.com/Ethernal-Tech/peggy-relayer/api/core"
	"github.com/Ethernal-Tech/peggy-relayer/api/model/response"
	apiUtils "github.com/Ethernal-Tech/peggy-relayer/api/utils"
	"github.com/Ethernal-Tech/peggy-relayer/eth"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/hashicorp/go-hclog"
)

const statusRequestTimeout = 30 * time.Second

type ContractStatusProvider interface {
	GetContractStatus(ctx context.Context) (*eth.PeggyContractStatus, error)
}

type StatusControllerImpl struct {
	contract ContractStatusProvider
	source   core.SourceChain
	logger   hclog.Logger
}

var _ apiCore.APIController = (*StatusControllerImpl)(nil)

func NewStatusController(
	contract ContractStatusProvider, source core.SourceChain, logger hclog.Logger,
) *StatusControllerImpl {
	return &StatusControllerImpl{
		contract: contract,
		source:   source,
		logger:   logger,
	}
}

func (*StatusControllerImpl) GetPathPrefix() string {
	return "Status"
}

func (c *StatusControllerImpl) GetEndpoints() []*apiCore.APIEndpoint {
	return []*apiCore.APIEndpoint{
		{Path: "Contract", Method: http.MethodGet, Handler: c.getContract, APIKeyAuth: true},
		{Path: "CurrentValset", Method: http.MethodGet, Handler: c.getCurrentValset, APIKeyAuth: true},
	}
}

// getContract returns the Peggy contract state as seen by the relayer
func (c *StatusControllerImpl) getContract(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), statusRequestTimeout)
	defer cancel()

	status, err := c.contract.GetContractStatus(ctx)
	if err != nil {
		apiUtils.WriteErrorResponse(w, r, http.StatusServiceUnavailable, err, c.logger)

		return
	}

	apiUtils.WriteResponse(w, r, http.StatusOK, status, c.logger)
}

// getCurrentValset returns the current valset of the cosmos peggy module
func (c *StatusControllerImpl) getCurrentValset(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), statusRequestTimeout)
	defer cancel()

	valset, err := c.source.GetCurrentValset(ctx)
	if err != nil {
		apiUtils.WriteErrorResponse(w, r, http.StatusServiceUnavailable, err, c.logger)

		return
	}

	apiUtils.WriteResponse(w, r, http.StatusOK, response.NewValsetResponse(valset), c.logger)
}
