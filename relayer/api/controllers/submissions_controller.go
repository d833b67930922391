package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	apiCore "github.com/Ethernal-Tech/peggy-relayer/api/core"
	"github.com/Ethernal-Tech/peggy-relayer/api/model/response"
	apiUtils "github.com/Ethernal-Tech/peggy-relayer/api/utils"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/hashicorp/go-hclog"
)

const (
	defaultSubmissionsLimit = 50
	maxSubmissionsLimit     = 1000
)

type SubmissionsControllerImpl struct {
	journal core.SubmissionJournal
	logger  hclog.Logger
}

var _ apiCore.APIController = (*SubmissionsControllerImpl)(nil)

func NewSubmissionsController(journal core.SubmissionJournal, logger hclog.Logger) *SubmissionsControllerImpl {
	return &SubmissionsControllerImpl{
		journal: journal,
		logger:  logger,
	}
}

func (*SubmissionsControllerImpl) GetPathPrefix() string {
	return "Submissions"
}

func (c *SubmissionsControllerImpl) GetEndpoints() []*apiCore.APIEndpoint {
	return []*apiCore.APIEndpoint{
		{Path: "GetAll", Method: http.MethodGet, Handler: c.getAll, APIKeyAuth: true},
		{Path: "Get", Method: http.MethodGet, Handler: c.get, APIKeyAuth: true},
	}
}

// getAll lists journaled submissions, newest first
func (c *SubmissionsControllerImpl) getAll(w http.ResponseWriter, r *http.Request) {
	limit := defaultSubmissionsLimit

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		value, err := strconv.Atoi(limitStr)
		if err != nil || value <= 0 || value > maxSubmissionsLimit {
			apiUtils.WriteErrorResponse(w, r, http.StatusBadRequest,
				fmt.Errorf("invalid limit: %s", limitStr), c.logger)

			return
		}

		limit = value
	}

	records, err := c.journal.GetSubmissions(limit)
	if err != nil {
		apiUtils.WriteErrorResponse(w, r, http.StatusInternalServerError, err, c.logger)

		return
	}

	apiUtils.WriteResponse(w, r, http.StatusOK, response.NewSubmissionsResponse(records), c.logger)
}

// get looks a submission up by ethereum tx hash
func (c *SubmissionsControllerImpl) get(w http.ResponseWriter, r *http.Request) {
	txHash := r.URL.Query().Get("txHash")
	if txHash == "" {
		apiUtils.WriteErrorResponse(w, r, http.StatusBadRequest, errors.New("txHash missing from query"), c.logger)

		return
	}

	record, err := c.journal.GetSubmission(txHash)
	if err != nil {
		apiUtils.WriteErrorResponse(w, r, http.StatusInternalServerError, err, c.logger)

		return
	}

	if record == nil {
		apiUtils.WriteErrorResponse(w, r, http.StatusNotFound,
			fmt.Errorf("submission not found: %s", txHash), c.logger)

		return
	}

	apiUtils.WriteResponse(w, r, http.StatusOK, response.NewSubmissionResponse(record), c.logger)
}
