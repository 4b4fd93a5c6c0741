package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
	"github.com/batchlab/batchctl/internal/usecase"
)

func submitFixture(wallet *fakeWallet) (*usecase.SubmitBatch, *memHistory, *recordingSink) {
	cfg := &config.RuntimeConfig{
		From: testSender.Hex(),
		Network: &config.Network{
			Name:    "sepolia",
			ChainID: 11155111,
			RPCURL:  "http://localhost:8545",
		},
	}
	history := &memHistory{}
	sink := &recordingSink{}
	uc := usecase.NewSubmitBatch(cfg, wallet, history, usecase.NewEstimateGas(wallet), sink)
	return uc, history, sink
}

func TestSubmitBatch(t *testing.T) {
	ctx := context.Background()

	inputs := []domain.CallInput{
		{To: testTarget.Hex(), Value: "0.001", Description: "pay alice"},
		{To: otherAddr.Hex(), Data: "0xa9059cbb"},
	}

	t.Run("submits the envelope and records a pending batch", func(t *testing.T) {
		wallet := &fakeWallet{chainID: 11155111}
		uc, history, _ := submitFixture(wallet)

		result, err := uc.Run(ctx, usecase.SubmitBatchParams{Calls: inputs, Notes: "test run"})
		require.NoError(t, err)
		assert.Equal(t, "0xbatch", result.BatchID)

		require.Len(t, wallet.sentRequests, 1)
		req := wallet.sentRequests[0]
		assert.Equal(t, "0xaa36a7", req.ChainID)
		assert.True(t, req.AtomicRequired)
		require.Len(t, req.Calls, 2)
		assert.Equal(t, "0x38d7ea4c68000", req.Calls[0].Value)
		assert.Empty(t, req.Calls[0].Data)
		assert.Equal(t, "0xa9059cbb", req.Calls[1].Data)

		require.Len(t, history.records, 1)
		rec := history.records[0]
		assert.Equal(t, "0xbatch", rec.ID)
		assert.Equal(t, models.BatchStatusPending, rec.Status)
		assert.Equal(t, uint64(11155111), rec.ChainID)
		assert.Equal(t, "1000000000000000", rec.Calls[0].Value)
		assert.Equal(t, "pay alice", rec.Calls[0].Description)
		assert.Equal(t, "test run", rec.Notes)
	})

	t.Run("estimate is attached to the record", func(t *testing.T) {
		wallet := &fakeWallet{chainID: 11155111}
		uc, history, _ := submitFixture(wallet)

		result, err := uc.Run(ctx, usecase.SubmitBatchParams{Calls: inputs})
		require.NoError(t, err)
		require.NotNil(t, result.Estimate)
		require.NotNil(t, history.records[0].GasEstimate)
		assert.Equal(t, result.Estimate.Total.String(), history.records[0].GasEstimate.Total)
	})

	t.Run("estimation failure is advisory, not blocking", func(t *testing.T) {
		wallet := &fakeWallet{chainID: 11155111, gasPriceErr: errors.New("rpc down")}
		uc, history, sink := submitFixture(wallet)

		result, err := uc.Run(ctx, usecase.SubmitBatchParams{Calls: inputs})
		require.NoError(t, err)
		assert.Nil(t, result.Estimate)
		assert.Nil(t, history.records[0].GasEstimate)
		assert.NotEmpty(t, sink.infos)
	})

	t.Run("skip-estimate bypasses the estimator", func(t *testing.T) {
		wallet := &fakeWallet{chainID: 11155111}
		uc, _, _ := submitFixture(wallet)

		result, err := uc.Run(ctx, usecase.SubmitBatchParams{Calls: inputs, SkipEstimate: true})
		require.NoError(t, err)
		assert.Nil(t, result.Estimate)
	})

	t.Run("wallet on the wrong chain is rejected before submission", func(t *testing.T) {
		wallet := &fakeWallet{chainID: 1}
		uc, history, _ := submitFixture(wallet)

		_, err := uc.Run(ctx, usecase.SubmitBatchParams{Calls: inputs})
		assert.ErrorIs(t, err, domain.ErrWrongNetwork)
		assert.Empty(t, wallet.sentRequests)
		assert.Empty(t, history.records)
	})

	t.Run("wallet rejection surfaces without a history record", func(t *testing.T) {
		wallet := &fakeWallet{
			chainID: 11155111,
			sendCallsFn: func(req *domain.SendCallsRequest) (string, error) {
				return "", &domain.WalletRejectionError{Method: "wallet_sendCalls"}
			},
		}
		uc, history, _ := submitFixture(wallet)

		_, err := uc.Run(ctx, usecase.SubmitBatchParams{Calls: inputs})
		assert.True(t, domain.IsUserRejection(err))
		assert.Empty(t, history.records)
	})

	t.Run("empty call list is rejected locally", func(t *testing.T) {
		wallet := &fakeWallet{chainID: 11155111}
		uc, _, _ := submitFixture(wallet)

		_, err := uc.Run(ctx, usecase.SubmitBatchParams{})
		assert.ErrorIs(t, err, domain.ErrEmptyBatch)
		assert.Empty(t, wallet.sentRequests)
	})
}
