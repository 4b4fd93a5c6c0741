package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
)

// CheckBatchStatusParams contains parameters for a status check.
type CheckBatchStatusParams struct {
	BatchID string
}

// CheckBatchStatusResult is the outcome of one status check.
type CheckBatchStatusResult struct {
	BatchID  string
	Status   models.BatchStatus
	Receipts []models.CallReceipt

	// Record is the reconciled history record, nil when the batch id is not
	// in history
	Record *models.BatchTransactionRecord

	// Updated is true when this check moved the record to a terminal state
	Updated bool
}

// CheckBatchStatus performs a one-shot settlement query and reconciles the
// result into history. Polling cadence is the caller's decision; there is no
// built-in interval timer.
type CheckBatchStatus struct {
	wallet  WalletClient
	history HistoryRepository
}

// NewCheckBatchStatus creates a new CheckBatchStatus use case.
func NewCheckBatchStatus(wallet WalletClient, history HistoryRepository) *CheckBatchStatus {
	return &CheckBatchStatus{wallet: wallet, history: history}
}

// Run queries the wallet and, on a terminal outcome, writes receipts or the
// failure into the stored record. The query itself never mutates history;
// only the reconciliation step does.
func (uc *CheckBatchStatus) Run(ctx context.Context, params CheckBatchStatusParams) (*CheckBatchStatusResult, error) {
	if params.BatchID == "" {
		return nil, domain.NewValidationError("batch-id", "no batch id given", nil)
	}

	status, err := uc.wallet.GetCallsStatus(ctx, params.BatchID)
	if err != nil {
		return nil, err
	}

	result := &CheckBatchStatusResult{
		BatchID:  params.BatchID,
		Status:   status.Status,
		Receipts: status.Receipts,
	}

	record, err := uc.history.GetRecord(ctx, params.BatchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Checking a batch submitted elsewhere is fine; nothing to reconcile
			return result, nil
		}
		return nil, err
	}

	if status.Status.Terminal() && record.Status == models.BatchStatusPending {
		patch := models.RecordPatch{Status: &status.Status}
		if status.Status == models.BatchStatusConfirmed {
			patch.Receipts = status.Receipts
		} else {
			msg := fmt.Sprintf("batch reported %s by wallet", status.Status)
			patch.Error = &msg
		}
		if err := uc.history.UpdateRecord(ctx, params.BatchID, patch); err != nil {
			return nil, err
		}
		result.Updated = true
	}

	record, err = uc.history.GetRecord(ctx, params.BatchID)
	if err == nil {
		result.Record = record
	}
	return result, nil
}
