package usecase

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
)

// SubmitBatchParams contains parameters for submitting a batch.
type SubmitBatchParams struct {
	Calls    []domain.CallInput
	Template string
	Notes    string

	// SkipEstimate submits without the pre-flight gas estimate
	SkipEstimate bool
}

// SubmitBatchResult is the outcome of a submission.
type SubmitBatchResult struct {
	BatchID  string
	Record   *models.BatchTransactionRecord
	Estimate *domain.GasEstimate
}

// SubmitBatch builds a wallet_sendCalls envelope, submits it, and records
// the pending batch in history. Submission and recording are sequenced here
// so the submitter itself stays free of history side effects.
type SubmitBatch struct {
	config    *config.RuntimeConfig
	wallet    WalletClient
	history   HistoryRepository
	estimator *EstimateGas
	sink      ProgressSink
}

// NewSubmitBatch creates a new SubmitBatch use case.
func NewSubmitBatch(cfg *config.RuntimeConfig, wallet WalletClient, history HistoryRepository, estimator *EstimateGas, sink ProgressSink) *SubmitBatch {
	return &SubmitBatch{
		config:    cfg,
		wallet:    wallet,
		history:   history,
		estimator: estimator,
		sink:      sink,
	}
}

// Run validates everything locally, then submits. Validation failures never
// reach the wallet boundary.
func (uc *SubmitBatch) Run(ctx context.Context, params SubmitBatchParams) (*SubmitBatchResult, error) {
	from, err := uc.sender()
	if err != nil {
		return nil, err
	}
	if uc.config.Network == nil {
		return nil, domain.NewValidationError("network", "no network selected", nil)
	}

	calls, err := domain.ParseCalls(params.Calls)
	if err != nil {
		return nil, err
	}
	if len(calls) == 0 {
		return nil, domain.NewValidationError("calls", "batch contains no calls", domain.ErrEmptyBatch)
	}

	// The wallet must be on the configured chain before anything is sent
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

	result := &SubmitBatchResult{}

	if !params.SkipEstimate {
		uc.sink.OnProgress(ctx, ProgressEvent{Stage: "estimating", Message: "Estimating gas", Spinner: true})
		estimate, err := uc.estimator.Run(ctx, EstimateGasParams{From: from, Calls: calls})
		if err != nil {
			// Estimation is advisory; a failed estimate never blocks submission
			uc.sink.Info(fmt.Sprintf("gas estimate unavailable: %v", err))
		} else {
			result.Estimate = estimate
		}
	}

	req, err := domain.NewSendCallsRequest(uc.config.Network.ChainID, from, calls)
	if err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "submitting", Message: "Waiting for wallet approval", Spinner: true})
	batchID, err := uc.wallet.SendCalls(ctx, req)
	if err != nil {
		return nil, err
	}
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "submitted"})

	record := &models.BatchTransactionRecord{
		ID:       batchID,
		Status:   models.BatchStatusPending,
		ChainID:  uc.config.Network.ChainID,
		From:     from.Hex(),
		Template: params.Template,
		Notes:    params.Notes,
	}
	for i, call := range calls {
		record.Calls = append(record.Calls, call.Model(params.Calls[i].Description))
	}
	if result.Estimate != nil {
		record.GasEstimate = snapshotEstimate(result.Estimate)
	}

	result.BatchID = batchID
	result.Record = uc.history.AddRecord(ctx, record)
	return result, nil
}

// sender resolves and validates the configured from address.
func (uc *SubmitBatch) sender() (common.Address, error) {
	if uc.config.From == "" {
		return common.Address{}, domain.NewValidationError("from", "no sender configured: set --from or from in "+config.ConfigFile, domain.ErrInvalidAddress)
	}
	if !common.IsHexAddress(uc.config.From) {
		return common.Address{}, domain.NewValidationError("from", "not a hex address: "+uc.config.From, domain.ErrInvalidAddress)
	}
	return common.HexToAddress(uc.config.From), nil
}

// snapshotEstimate freezes the estimate shown at submission time into the
// record; it is never re-derived later.
func snapshotEstimate(est *domain.GasEstimate) *models.GasSnapshot {
	return &models.GasSnapshot{
		Total:           est.Total.String(),
		TotalEther:      est.TotalEther,
		Sequential:      est.Sequential.String(),
		SequentialEther: est.SequentialEther,
		Savings:         est.Savings.String(),
		SavingsEther:    est.SavingsEther,
		SavingsPercent:  est.SavingsPercent,
	}
}
