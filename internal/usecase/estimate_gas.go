package usecase

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/batchlab/batchctl/internal/domain"
)

// EstimateGasParams contains parameters for batch gas estimation.
type EstimateGasParams struct {
	From  common.Address
	Calls []domain.Call
}

// EstimateGas computes per-call and aggregate gas estimates for a proposed
// batch, with a modeled comparison against sequential execution.
type EstimateGas struct {
	wallet WalletClient
}

// NewEstimateGas creates a new EstimateGas use case.
func NewEstimateGas(wallet WalletClient) *EstimateGas {
	return &EstimateGas{wallet: wallet}
}

// Run estimates every call, substituting the fallback constant for calls the
// chain refuses to estimate. Only a batch where every single call fails
// produces an EstimationError. Per-call estimates run concurrently; there is
// no ordering dependency between them, and the aggregate is computed only
// after all have settled.
func (uc *EstimateGas) Run(ctx context.Context, params EstimateGasParams) (*domain.GasEstimate, error) {
	if len(params.Calls) == 0 {
		return nil, domain.NewValidationError("calls", "no calls to estimate", domain.ErrEmptyBatch)
	}
	if params.From == (common.Address{}) {
		return nil, domain.NewValidationError("from", "sender is the zero address", domain.ErrInvalidAddress)
	}

	perCall := make([]*big.Int, len(params.Calls))
	var (
		mu       sync.Mutex
		failures int
		firstErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, call := range params.Calls {
		g.Go(func() error {
			gas, err := uc.wallet.EstimateGas(gctx, params.From, call)
			if err != nil {
				mu.Lock()
				failures++
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				gas = domain.FallbackCallGas
			}
			perCall[i] = new(big.Int).SetUint64(gas)
			return nil
		})
	}
	// Estimation failures degrade to the fallback, so the group never errors
	_ = g.Wait()

	if failures == len(params.Calls) {
		return nil, &domain.EstimationError{Calls: len(params.Calls), Err: firstErr}
	}

	gasPrice, err := uc.wallet.SuggestGasPrice(ctx)
	if err != nil {
		return nil, &domain.EstimationError{Calls: len(params.Calls), Err: err}
	}

	return domain.NewGasEstimate(perCall, gasPrice), nil
}
