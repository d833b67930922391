package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/api/model/response"
	"github.com/Ethernal-Tech/peggy-relayer/eth"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type contractStatusMock struct {
	status *eth.PeggyContractStatus
	err    error
}

func (m contractStatusMock) GetContractStatus(context.Context) (*eth.PeggyContractStatus, error) {
	return m.status, m.err
}

func TestSubmissionsController(t *testing.T) {
	records := []*core.SubmissionRecord{
		{
			ID: 2, Kind: core.SubmissionKindBatch, Nonce: 5, TxHash: "0x02",
			Status: core.SubmissionStatusIncluded, Time: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{ID: 1, Kind: core.SubmissionKindValset, Nonce: 3, TxHash: "0x01", Status: core.SubmissionStatusReverted},
	}

	t.Run("get all with default limit", func(t *testing.T) {
		journal := &core.SubmissionJournalMock{}
		journal.On("GetSubmissions", defaultSubmissionsLimit).Return(records, nil).Once()

		w := httptest.NewRecorder()
		NewSubmissionsController(journal, hclog.NewNullLogger()).getAll(
			w, httptest.NewRequest(http.MethodGet, "/Submissions/GetAll", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.SubmissionsResponse

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Submissions, 2)
		require.Equal(t, "batch", resp.Submissions[0].Kind)
		require.Equal(t, "2024-06-01T00:00:00Z", resp.Submissions[0].Time)
		require.Equal(t, "reverted", resp.Submissions[1].Status)
	})

	t.Run("get all with invalid limit", func(t *testing.T) {
		journal := &core.SubmissionJournalMock{}

		w := httptest.NewRecorder()
		NewSubmissionsController(journal, hclog.NewNullLogger()).getAll(
			w, httptest.NewRequest(http.MethodGet, "/Submissions/GetAll?limit=abc", nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
		journal.AssertNotCalled(t, "GetSubmissions", mock.Anything)
	})

	t.Run("get by hash", func(t *testing.T) {
		journal := &core.SubmissionJournalMock{}
		journal.On("GetSubmission", "0x01").Return(records[1], nil).Once()
		journal.On("GetSubmission", "0x03").Return(nil, nil).Once()

		controller := NewSubmissionsController(journal, hclog.NewNullLogger())

		w := httptest.NewRecorder()
		controller.get(w, httptest.NewRequest(http.MethodGet, "/Submissions/Get?txHash=0x01", nil))
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		controller.get(w, httptest.NewRequest(http.MethodGet, "/Submissions/Get?txHash=0x03", nil))
		require.Equal(t, http.StatusNotFound, w.Code)

		w = httptest.NewRecorder()
		controller.get(w, httptest.NewRequest(http.MethodGet, "/Submissions/Get", nil))
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStatusController(t *testing.T) {
	t.Run("contract status", func(t *testing.T) {
		contract := contractStatusMock{status: &eth.PeggyContractStatus{PeggyID: "defaultpeggyid", LastValsetNonce: 4}}

		w := httptest.NewRecorder()
		NewStatusController(contract, &core.SourceChainMock{}, hclog.NewNullLogger()).getContract(
			w, httptest.NewRequest(http.MethodGet, "/Status/Contract", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp eth.PeggyContractStatus

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, uint64(4), resp.LastValsetNonce)

		w = httptest.NewRecorder()
		NewStatusController(contractStatusMock{err: errors.New("node down")}, &core.SourceChainMock{},
			hclog.NewNullLogger()).getContract(w, httptest.NewRequest(http.MethodGet, "/Status/Contract", nil))

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("current valset", func(t *testing.T) {
		source := &core.SourceChainMock{}
		source.On("GetCurrentValset", mock.Anything).Return(&core.ValidatorSet{
			Nonce: 7,
			Members: []core.BridgeValidator{
				{EthereumAddress: "0x1111111111111111111111111111111111111111", Power: 3},
				{EthereumAddress: "0x2222222222222222222222222222222222222222", Power: 4},
			},
		}, nil).Once()

		w := httptest.NewRecorder()
		NewStatusController(contractStatusMock{}, source, hclog.NewNullLogger()).getCurrentValset(
			w, httptest.NewRequest(http.MethodGet, "/Status/CurrentValset", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.ValsetResponse

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, uint64(7), resp.Nonce)
		require.Equal(t, uint64(7), resp.TotalPower)
		require.Len(t, resp.Members, 2)
	})
}
