package usecase

import (
	"context"

	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
)

// ListHistory returns persisted batch records, newest first.
type ListHistory struct {
	history HistoryRepository
}

// NewListHistory creates a new ListHistory use case.
func NewListHistory(history HistoryRepository) *ListHistory {
	return &ListHistory{history: history}
}

func (uc *ListHistory) Run(ctx context.Context, filter domain.HistoryFilter) ([]*models.BatchTransactionRecord, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status "+string(filter.Status), nil)
	}
	return uc.history.ListRecords(ctx, filter), nil
}
