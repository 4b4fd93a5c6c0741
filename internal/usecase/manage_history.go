package usecase

import (
	"context"

	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
)

// ShowRecord fetches a single batch record by id.
type ShowRecord struct {
	history HistoryRepository
}

// NewShowRecord creates a new ShowRecord use case.
func NewShowRecord(history HistoryRepository) *ShowRecord {
	return &ShowRecord{history: history}
}

func (uc *ShowRecord) Run(ctx context.Context, id string) (*models.BatchTransactionRecord, error) {
	if id == "" {
		return nil, domain.NewValidationError("id", "record id is required", nil)
	}
	return uc.history.GetRecord(ctx, id)
}

// DeleteRecord removes a single batch record by id.
type DeleteRecord struct {
	history HistoryRepository
}

// NewDeleteRecord creates a new DeleteRecord use case.
func NewDeleteRecord(history HistoryRepository) *DeleteRecord {
	return &DeleteRecord{history: history}
}

func (uc *DeleteRecord) Run(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidationError("id", "record id is required", nil)
	}
	return uc.history.DeleteRecord(ctx, id)
}

// ClearHistory drops every persisted record.
type ClearHistory struct {
	history HistoryRepository
}

// NewClearHistory creates a new ClearHistory use case.
func NewClearHistory(history HistoryRepository) *ClearHistory {
	return &ClearHistory{history: history}
}

func (uc *ClearHistory) Run(ctx context.Context) error {
	return uc.history.ClearAll(ctx)
}

// ExportHistory serializes the full history as a JSON array.
type ExportHistory struct {
	history HistoryRepository
}

// NewExportHistory creates a new ExportHistory use case.
func NewExportHistory(history HistoryRepository) *ExportHistory {
	return &ExportHistory{history: history}
}

func (uc *ExportHistory) Run(ctx context.Context) ([]byte, error) {
	return uc.history.ExportJSON(ctx)
}

// ImportHistory merges a previously exported JSON array into the store and
// reports how many records were actually added.
type ImportHistory struct {
	history HistoryRepository
}

// NewImportHistory creates a new ImportHistory use case.
func NewImportHistory(history HistoryRepository) *ImportHistory {
	return &ImportHistory{history: history}
}

func (uc *ImportHistory) Run(ctx context.Context, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, domain.NewValidationError("data", "import payload is empty", nil)
	}
	return uc.history.ImportJSON(ctx, data)
}

// QueryHistoryStats summarizes the store.
type QueryHistoryStats struct {
	history HistoryRepository
}

// NewQueryHistoryStats creates a new QueryHistoryStats use case.
func NewQueryHistoryStats(history HistoryRepository) *QueryHistoryStats {
	return &QueryHistoryStats{history: history}
}

func (uc *QueryHistoryStats) Run(ctx context.Context) *HistoryStats {
	return uc.history.Stats(ctx)
}
