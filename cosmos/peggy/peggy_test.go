package peggy

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/cosmos/contact"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func newTestPeggyClient(t *testing.T, routes map[string]string) *PeggyClient {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, exists := routes[r.URL.Path]
		if !exists {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewPeggyClient(contact.NewContact(server.URL, time.Second), "/peggy/", 0, hclog.NewNullLogger())
}

func TestPeggyClient_Valsets(t *testing.T) {
	client := newTestPeggyClient(t, map[string]string{
		"/peggy/current_valset": `{"height":"40","result":{"nonce":"5","height":"39","members":[
			{"power":"2000","ethereum_address":"0x1111111111111111111111111111111111111111"},
			{"power":"1000","ethereum_address":""}]}}`,
		"/peggy/valset_request/4": `{"height":"40","result":{"nonce":"4","height":"20","members":[]}}`,
		"/peggy/valset_request/9": `{"height":"40","result":null}`,
		"/peggy/valset_requests":  `{"height":"40","result":[{"nonce":"5","members":[]},{"nonce":"4","members":[]}]}`,
		"/peggy/valset_confirm/5": `{"height":"40","result":[{"nonce":"5","orchestrator":"cosmos1abc",
			"eth_address":"0x1111111111111111111111111111111111111111","signature":"0xabcd"}]}`,
	})

	ctx := context.Background()

	current, err := client.GetCurrentValset(ctx)
	require.NoError(t, err)
	require.Equal(t, &core.ValidatorSet{
		Nonce:  5,
		Height: 39,
		Members: []core.BridgeValidator{
			{EthereumAddress: "0x1111111111111111111111111111111111111111", Power: 2000},
			{EthereumAddress: "", Power: 1000},
		},
	}, current)

	valset, err := client.GetValsetRequest(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(4), valset.Nonce)

	valset, err = client.GetValsetRequest(ctx, 9)
	require.NoError(t, err)
	require.Nil(t, valset)

	valset, err = client.GetValsetRequest(ctx, 10)
	require.NoError(t, err)
	require.Nil(t, valset)

	latest, err := client.GetLatestValsets(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	require.Equal(t, uint64(5), latest[0].Nonce)

	confirms, err := client.GetValsetConfirms(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, []*core.ValsetConfirmation{{
		Nonce:        5,
		Orchestrator: "cosmos1abc",
		EthAddress:   "0x1111111111111111111111111111111111111111",
		Signature:    "0xabcd",
	}}, confirms)

	confirms, err = client.GetValsetConfirms(ctx, 6)
	require.NoError(t, err)
	require.Empty(t, confirms)
}

func TestPeggyClient_Batches(t *testing.T) {
	client := newTestPeggyClient(t, map[string]string{
		"/peggy/transaction_batches": `{"height":"40","result":[
			{"batch_nonce":"3","token_contract":"0x4444444444444444444444444444444444444444","block":"12","transactions":[
				{"id":"1","sender":"cosmos1abc","dest_address":"0x2222222222222222222222222222222222222222",
				 "erc20_token":{"amount":"1000","contract":"0x4444444444444444444444444444444444444444"},
				 "erc20_fee":{"amount":"5","contract":"0x4444444444444444444444444444444444444444"}},
				{"id":"2","sender":"cosmos1abc","dest_address":"0x3333333333333333333333333333333333333333",
				 "erc20_token":{"amount":"7","contract":"0x4444444444444444444444444444444444444444"}}]},
			{"batch_nonce":"4","token_contract":"0x4444444444444444444444444444444444444444","transactions":[
				{"id":"3","erc20_token":{"amount":"-1"}}]}]}`,
		"/peggy/batch_confirm/3/0x4444444444444444444444444444444444444444": `{"height":"40","result":[
			{"nonce":"3","token_contract":"0x4444444444444444444444444444444444444444",
			 "eth_signer":"0x1111111111111111111111111111111111111111","orchestrator":"cosmos1abc","signature":"0x01"}]}`,
	})

	ctx := context.Background()

	batches, err := client.GetLatestBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 1)

	batch := batches[0]
	require.Equal(t, uint64(3), batch.Nonce)
	require.Equal(t, uint64(12), batch.Block)
	require.Len(t, batch.Transactions, 2)
	require.Equal(t, 0, batch.Transactions[0].Amount.Cmp(big.NewInt(1000)))
	require.Equal(t, 0, batch.Transactions[0].Fee.Cmp(big.NewInt(5)))
	require.Equal(t, 0, batch.Transactions[1].Fee.Sign())

	confirms, err := client.GetBatchConfirms(ctx, 3, "0x4444444444444444444444444444444444444444")
	require.NoError(t, err)
	require.Len(t, confirms, 1)
	require.Equal(t, "0x1111111111111111111111111111111111111111", confirms[0].EthSigner)

	confirms, err = client.GetBatchConfirms(ctx, 4, "0x4444444444444444444444444444444444444444")
	require.NoError(t, err)
	require.Empty(t, confirms)
}

func TestPeggyClient_LargeBatchList(t *testing.T) {
	const (
		token     = "0x4444444444444444444444444444444444444444"
		transfers = 300
	)

	batches := make([]transactionBatchResponse, 2)
	for i := range batches {
		batches[i] = transactionBatchResponse{
			BatchNonce:    uint64(i + 1),
			TokenContract: token,
			Transactions:  make([]outgoingTransferResponse, transfers),
		}

		for j := range batches[i].Transactions {
			batches[i].Transactions[j] = outgoingTransferResponse{
				ID:          uint64(i*transfers + j),
				Sender:      fmt.Sprintf("cosmos1sender%040d", j),
				DestAddress: fmt.Sprintf("0x%040d", j),
				Erc20Token:  &erc20TokenResponse{Amount: "1000000000000000000", Contract: token},
				Erc20Fee:    &erc20TokenResponse{Amount: "1000", Contract: token},
			}
		}
	}

	body, err := json.Marshal(contact.ResponseWrapper[[]transactionBatchResponse]{
		Height: 10,
		Result: batches,
	})
	require.NoError(t, err)
	require.Greater(t, len(body), 64*1024)

	client := newTestPeggyClient(t, map[string]string{
		"/peggy/transaction_batches": string(body),
	})

	result, err := client.GetLatestBatches(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.Len(t, result[1].Transactions, transfers)
}

func TestPeggyClient_RetriesReads(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte(`{"height":"1","result":[]}`))
	}))
	defer server.Close()

	client := NewPeggyClient(contact.NewContact(server.URL, time.Second), "", 2, hclog.NewNullLogger())

	batches, err := client.GetLatestBatches(context.Background())
	require.NoError(t, err)
	require.Empty(t, batches)
	require.Equal(t, int32(2), calls.Load())
}
