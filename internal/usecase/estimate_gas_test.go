package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/usecase"
)

var (
	testSender = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	testTarget = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	otherAddr  = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
)

func TestEstimateGas(t *testing.T) {
	ctx := context.Background()

	t.Run("per-call estimates feed the aggregate", func(t *testing.T) {
		wallet := &fakeWallet{
			estimateGasFn: func(from common.Address, call domain.Call) (uint64, error) {
				return 50_000, nil
			},
			gasPrice: big.NewInt(2_000_000_000),
		}
		uc := usecase.NewEstimateGas(wallet)

		est, err := uc.Run(ctx, usecase.EstimateGasParams{
			From:  testSender,
			Calls: []domain.Call{{To: testTarget}, {To: otherAddr}},
		})
		require.NoError(t, err)
		require.Len(t, est.PerCall, 2)
		assert.Equal(t, "100000", est.Sequential.String())
		assert.Equal(t, "75000", est.Total.String())
		assert.Equal(t, "2000000000", est.GasPrice.String())
	})

	t.Run("a failing call degrades to the fallback constant", func(t *testing.T) {
		wallet := &fakeWallet{
			estimateGasFn: func(from common.Address, call domain.Call) (uint64, error) {
				if call.To == otherAddr {
					return 0, errors.New("execution reverted")
				}
				return 60_000, nil
			},
		}
		uc := usecase.NewEstimateGas(wallet)

		est, err := uc.Run(ctx, usecase.EstimateGasParams{
			From:  testSender,
			Calls: []domain.Call{{To: testTarget}, {To: otherAddr}},
		})
		require.NoError(t, err)
		assert.Equal(t, "60000", est.PerCall[0].String())
		assert.Equal(t, "21000", est.PerCall[1].String())
	})

	t.Run("all calls failing is an estimation error", func(t *testing.T) {
		wallet := &fakeWallet{
			estimateGasFn: func(from common.Address, call domain.Call) (uint64, error) {
				return 0, errors.New("execution reverted")
			},
		}
		uc := usecase.NewEstimateGas(wallet)

		_, err := uc.Run(ctx, usecase.EstimateGasParams{
			From:  testSender,
			Calls: []domain.Call{{To: testTarget}, {To: otherAddr}},
		})
		var estErr *domain.EstimationError
		require.ErrorAs(t, err, &estErr)
		assert.Equal(t, 2, estErr.Calls)
	})

	t.Run("gas price failure is an estimation error", func(t *testing.T) {
		wallet := &fakeWallet{gasPriceErr: errors.New("rpc down")}
		uc := usecase.NewEstimateGas(wallet)

		_, err := uc.Run(ctx, usecase.EstimateGasParams{
			From:  testSender,
			Calls: []domain.Call{{To: testTarget}},
		})
		var estErr *domain.EstimationError
		assert.ErrorAs(t, err, &estErr)
	})

	t.Run("empty batch is rejected locally", func(t *testing.T) {
		uc := usecase.NewEstimateGas(&fakeWallet{})

		_, err := uc.Run(ctx, usecase.EstimateGasParams{From: testSender})
		assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	})

	t.Run("zero sender is rejected locally", func(t *testing.T) {
		uc := usecase.NewEstimateGas(&fakeWallet{})

		_, err := uc.Run(ctx, usecase.EstimateGasParams{
			Calls: []domain.Call{{To: testTarget}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}
