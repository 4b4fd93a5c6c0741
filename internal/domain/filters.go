package domain

import (
	"strings"

	"github.com/batchlab/batchctl/internal/domain/models"
)

// HistoryFilter narrows history reads. Zero values match everything.
type HistoryFilter struct {
	Status  models.BatchStatus
	ChainID uint64
	From    string
	Limit   int
}

// Matches reports whether a record passes the filter.
func (f HistoryFilter) Matches(rec *models.BatchTransactionRecord) bool {
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.ChainID != 0 && rec.ChainID != f.ChainID {
		return false
	}
	if f.From != "" && !strings.EqualFold(rec.From, f.From) {
		return false
	}
	return true
}
