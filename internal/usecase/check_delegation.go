package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/batchlab/batchctl/internal/domain"
)

// CheckDelegationParams contains parameters for a delegation probe.
type CheckDelegationParams struct {
	Address common.Address
}

// CheckDelegation classifies an account's on-chain code as plain EOA,
// delegated, or ordinary contract. The state is derived fresh from bytecode
// on every call; nothing is cached, so there is no staleness to invalidate.
type CheckDelegation struct {
	wallet WalletClient
}

// NewCheckDelegation creates a new CheckDelegation use case.
func NewCheckDelegation(wallet WalletClient) *CheckDelegation {
	return &CheckDelegation{wallet: wallet}
}

// Run executes the probe. An address with no code is a plain EOA, not an
// error; only a failing code-read RPC produces a ProbeError.
func (uc *CheckDelegation) Run(ctx context.Context, params CheckDelegationParams) (*domain.DelegationState, error) {
	if params.Address == (common.Address{}) {
		return nil, domain.NewValidationError("address", "no account address given", domain.ErrInvalidAddress)
	}

	code, err := uc.wallet.CodeAt(ctx, params.Address)
	if err != nil {
		return nil, &domain.ProbeError{Address: params.Address.Hex(), Err: err}
	}

	state := domain.ParseDelegationCode(code)
	return &state, nil
}
