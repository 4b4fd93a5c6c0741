package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
)

// RevokeDelegationParams contains parameters for clearing a delegation.
type RevokeDelegationParams struct {
	// Address defaults to the configured sender when zero
	Address common.Address
}

// RevokeDelegationResult is the outcome of a successful revocation.
type RevokeDelegationResult struct {
	TxHash string
	Method string

	// Attempts lists the methods that failed before the winning one
	Attempts []domain.RevocationDiagnostic

	// Warning is set when the post-revoke probe still reports delegation,
	// which usually means chain propagation delay rather than failure
	Warning string

	// State is the delegation state probed after the revocation settled
	State *domain.DelegationState
}

// revocationMethod is one entry in the strategy chain. Adding or removing a
// method is a data change, not new control flow.
type revocationMethod struct {
	name    string
	attempt func(ctx context.Context, address common.Address) (string, error)
}

// RevokeDelegation walks an ordered chain of revocation strategies until one
// succeeds: the wallet-native kill switch, generic permission revocation, a
// self-transaction carrying a zero-address authorization, and finally the
// same self-transaction with a client-signed tuple.
type RevokeDelegation struct {
	config *config.RuntimeConfig
	wallet WalletClient
	prober *CheckDelegation
	sink   ProgressSink
}

// NewRevokeDelegation creates a new RevokeDelegation use case.
func NewRevokeDelegation(cfg *config.RuntimeConfig, wallet WalletClient, prober *CheckDelegation, sink ProgressSink) *RevokeDelegation {
	return &RevokeDelegation{config: cfg, wallet: wallet, prober: prober, sink: sink}
}

// Run attempts each method strictly in order; method N+1 starts only after
// method N's outcome is known. An explicit user rejection stops the whole
// chain instead of re-prompting through the remaining methods.
func (uc *RevokeDelegation) Run(ctx context.Context, params RevokeDelegationParams) (*RevokeDelegationResult, error) {
	address, err := uc.account(params)
	if err != nil {
		return nil, err
	}
	if uc.config.Network == nil {
		return nil, domain.NewValidationError("network", "no network selected", nil)
	}

	walletChainID, err := uc.wallet.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet chain: %w", err)
	}
	if walletChainID != uc.config.Network.ChainID {
		return nil, domain.NewValidationError("network",
			fmt.Sprintf("wallet is on chain %d, expected %s (chain %d)",
				walletChainID, uc.config.Network.Name, uc.config.Network.ChainID),
			domain.ErrWrongNetwork)
	}

	if state, err := uc.prober.Run(ctx, CheckDelegationParams{Address: address}); err == nil && !state.IsDelegated {
		uc.sink.Info(fmt.Sprintf("%s is not currently delegated; attempting revoke anyway", address.Hex()))
	}

	result := &RevokeDelegationResult{}
	for _, method := range uc.methods() {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "revoking", Message: "Trying " + method.name, Spinner: true})

		txHash, err := method.attempt(ctx, address)
		if err == nil {
			result.TxHash = txHash
			result.Method = method.name
			break
		}
		if domain.IsUserRejection(err) {
			// The user said no; re-prompting via the next method would be
			// a nasty surprise
			uc.sink.OnProgress(ctx, ProgressEvent{Stage: "rejected"})
			return nil, err
		}
		result.Attempts = append(result.Attempts, domain.RevocationDiagnostic{
			Method:  method.name,
			Message: err.Error(),
		})
	}

	if result.Method == "" {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "failed"})
		return nil, &domain.AllMethodsFailedError{Attempts: result.Attempts}
	}

	uc.confirmRevocation(ctx, address, result)
	return result, nil
}

// confirmRevocation waits for the winning transaction to settle and
// re-probes the account. A designator that still shows up is reported as a
// warning, not a failure; chains take a few blocks to converge.
func (uc *RevokeDelegation) confirmRevocation(ctx context.Context, address common.Address, result *RevokeDelegationResult) {
	if isTxHash(result.TxHash) {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "confirming", Message: "Waiting for confirmation", Spinner: true})
		if _, err := uc.wallet.WaitForReceipt(ctx, common.HexToHash(result.TxHash)); err != nil {
			uc.sink.OnProgress(ctx, ProgressEvent{Stage: "done"})
			result.Warning = fmt.Sprintf("revocation submitted but confirmation wait failed: %v", err)
			return
		}
	}
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "done"})

	state, err := uc.prober.Run(ctx, CheckDelegationParams{Address: address})
	if err != nil {
		result.Warning = fmt.Sprintf("could not verify revocation: %v", err)
		return
	}
	result.State = state
	if state.IsDelegated {
		result.Warning = "account still shows a delegation designator; this may be propagation delay, re-check in a few blocks"
	}
}

// methods returns the strategy chain in attempt order.
func (uc *RevokeDelegation) methods() []revocationMethod {
	return []revocationMethod{
		{
			name: "wallet_disableDelegation",
			attempt: func(ctx context.Context, address common.Address) (string, error) {
				return uc.wallet.DisableDelegation(ctx, address)
			},
		},
		{
			name: "wallet_revokePermissions",
			attempt: func(ctx context.Context, address common.Address) (string, error) {
				return uc.wallet.RevokePermissions(ctx)
			},
		},
		{
			name:    "authorization self-transaction",
			attempt: uc.sendRevokeTransaction,
		},
		{
			name:    "client-signed authorization",
			attempt: uc.sendSignedRevokeTransaction,
		},
	}
}

// sendRevokeTransaction submits a zero-value self-transaction carrying an
// authorization that designates the zero address, which clears delegation.
func (uc *RevokeDelegation) sendRevokeTransaction(ctx context.Context, address common.Address) (string, error) {
	auth, err := uc.revokeAuthorization(ctx, address)
	if err != nil {
		return "", err
	}

	hash, err := uc.wallet.SendTransaction(ctx, WalletTransaction{
		From:           address,
		To:             address,
		Authorizations: []domain.Authorization{auth},
	})
	if err != nil {
		return "", err
	}
	return hash.Hex(), nil
}

// sendSignedRevokeTransaction is the last resort: sign the tuple client-side
// first, then attach it to the same self-transaction.
func (uc *RevokeDelegation) sendSignedRevokeTransaction(ctx context.Context, address common.Address) (string, error) {
	auth, err := uc.revokeAuthorization(ctx, address)
	if err != nil {
		return "", err
	}

	signed, err := uc.wallet.SignAuthorization(ctx, address, auth)
	if err != nil {
		return "", err
	}

	hash, err := uc.wallet.SendTransaction(ctx, WalletTransaction{
		From:                 address,
		To:                   address,
		SignedAuthorizations: []domain.SignedAuthorization{*signed},
	})
	if err != nil {
		return "", err
	}
	return hash.Hex(), nil
}

// revokeAuthorization builds the zero-address tuple. The authorization nonce
// is the account's pending nonce plus one: the self-transaction itself
// consumes the pending nonce before the authorization is processed.
func (uc *RevokeDelegation) revokeAuthorization(ctx context.Context, address common.Address) (domain.Authorization, error) {
	nonce, err := uc.wallet.PendingNonceAt(ctx, address)
	if err != nil {
		return domain.Authorization{}, fmt.Errorf("failed to get account nonce: %w", err)
	}
	return domain.NewRevokeAuthorization(uc.config.Network.ChainID, nonce+1), nil
}

// account resolves the target address, defaulting to the configured sender.
func (uc *RevokeDelegation) account(params RevokeDelegationParams) (common.Address, error) {
	if params.Address != (common.Address{}) {
		return params.Address, nil
	}
	if uc.config.From == "" || !common.IsHexAddress(uc.config.From) {
		return common.Address{}, domain.NewValidationError("from", "no valid account to revoke: set --from or pass an address", domain.ErrInvalidAddress)
	}
	return common.HexToAddress(uc.config.From), nil
}

// isTxHash reports whether the wallet's result looks like a transaction
// hash. wallet_revokePermissions in particular may answer with something
// else entirely.
func isTxHash(s string) bool {
	if len(s) != 66 || s[:2] != "0x" {
		return false
	}
	for _, c := range s[2:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
