package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
	"github.com/batchlab/batchctl/internal/usecase"
)

const (
	// HistoryFile is the single JSON document holding the collection
	HistoryFile = "history.json"

	// MaxRecords caps the persisted collection at the most recent entries
	MaxRecords = 100
)

// FileRepository stores batch history as one JSON array on disk,
// newest-first. It is the sole mutator of the collection; all mutations are
// serialized read-modify-write steps so back-to-back calls cannot lose
// updates.
type FileRepository struct {
	dataDir string
	log     *slog.Logger

	mu      sync.RWMutex
	records []*models.BatchTransactionRecord
}

// NewFileRepository creates the data directory if needed and loads any
// existing history.
func NewFileRepository(cfg *config.RuntimeConfig, log *slog.Logger) (*FileRepository, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", config.DataDirName, err)
	}

	r := &FileRepository{dataDir: cfg.DataDir, log: log}
	if err := r.load(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return r, nil
}

func (r *FileRepository) path() string {
	return filepath.Join(r.dataDir, HistoryFile)
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var records []*models.BatchTransactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	sortRecords(records)
	r.records = records
	return nil
}

// save writes the collection atomically: temp file first, then rename.
// Callers must hold the write lock.
func (r *FileRepository) save() error {
	data, err := json.MarshalIndent(r.records, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := r.path() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, r.path())
}

// persist logs a save failure instead of surfacing it; the in-memory view
// keeps serving reads for the rest of the session.
func (r *FileRepository) persist(op string) {
	if err := r.save(); err != nil {
		perr := &domain.PersistenceError{Op: op, Err: err}
		r.log.Error("history persistence failed", "op", op, "error", perr)
	}
}

// AddRecord stamps the creation time, prepends the record, and applies the
// retention cap.
func (r *FileRepository) AddRecord(ctx context.Context, rec *models.BatchTransactionRecord) *models.BatchTransactionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamped := rec.Clone()
	stamped.Timestamp = time.Now().UnixMilli()
	if stamped.ID == "" {
		stamped.ID = models.NewLocalRecordID(time.Now())
	}
	if stamped.Status == "" {
		stamped.Status = models.BatchStatusPending
	}

	r.records = append([]*models.BatchTransactionRecord{stamped}, r.records...)
	if len(r.records) > MaxRecords {
		r.records = r.records[:MaxRecords]
	}

	r.persist("add")

	return stamped.Clone()
}

// UpdateRecord merges a shallow patch into the record with the given id.
// A missing id is a no-op. A terminal record never goes back to pending.
func (r *FileRepository) UpdateRecord(ctx context.Context, id string, patch models.RecordPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slicesIndex(r.records, id)
	if idx == -1 {
		return nil
	}
	rec := r.records[idx]

	if patch.Status != nil {
		if !patch.Status.Valid() {
			return domain.NewValidationError("status", fmt.Sprintf("unknown status %q", *patch.Status), nil)
		}
		if rec.Status.Terminal() && *patch.Status != rec.Status {
			return domain.ErrTerminalRecord
		}
		rec.Status = *patch.Status
	}
	if patch.Receipts != nil {
		rec.Receipts = slices.Clone(patch.Receipts)
	}
	if patch.GasEstimate != nil {
		snapshot := *patch.GasEstimate
		rec.GasEstimate = &snapshot
	}
	if patch.Notes != nil {
		rec.Notes = *patch.Notes
	}
	if patch.Error != nil {
		rec.Error = *patch.Error
	}

	r.persist("update")
	return nil
}

// GetRecord returns a copy of one record or domain.ErrNotFound.
func (r *FileRepository) GetRecord(ctx context.Context, id string) (*models.BatchTransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := slicesIndex(r.records, id)
	if idx == -1 {
		return nil, domain.ErrNotFound
	}
	return r.records[idx].Clone(), nil
}

// ListRecords returns matching record copies, newest-first.
func (r *FileRepository) ListRecords(ctx context.Context, filter domain.HistoryFilter) []*models.BatchTransactionRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.BatchTransactionRecord
	for _, rec := range r.records {
		if !filter.Matches(rec) {
			continue
		}
		result = append(result, rec.Clone())
		if filter.Limit > 0 && len(result) == filter.Limit {
			break
		}
	}
	return result
}

// DeleteRecord removes one record; missing ids are a no-op.
func (r *FileRepository) DeleteRecord(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slicesIndex(r.records, id)
	if idx == -1 {
		return nil
	}

	r.records = append(r.records[:idx], r.records[idx+1:]...)
	r.persist("delete")
	return nil
}

// ClearAll removes every record.
func (r *FileRepository) ClearAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = nil
	r.persist("clear")
	return nil
}

// ExportJSON serializes the full collection verbatim.
func (r *FileRepository) ExportJSON(ctx context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.records == nil {
		return []byte("[]"), nil
	}
	return json.MarshalIndent(r.records, "", "  ")
}

// ImportJSON merges records from an export. Existing records win on id
// collisions; the merged set is re-sorted newest-first and re-capped.
// Malformed input mutates nothing.
func (r *FileRepository) ImportJSON(ctx context.Context, data []byte) (int, error) {
	var imported []*models.BatchTransactionRecord
	if err := json.Unmarshal(data, &imported); err != nil {
		return 0, fmt.Errorf("invalid history export: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(r.records))
	for _, rec := range r.records {
		seen[rec.ID] = true
	}

	added := 0
	merged := r.records
	for _, rec := range imported {
		if rec == nil || rec.ID == "" || seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		merged = append(merged, rec)
		added++
	}

	sortRecords(merged)
	if len(merged) > MaxRecords {
		merged = merged[:MaxRecords]
	}
	r.records = merged

	r.persist("import")
	return added, nil
}

// Stats derives summary statistics by scanning the current collection.
func (r *FileRepository) Stats(ctx context.Context) *usecase.HistoryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &usecase.HistoryStats{Total: len(r.records)}
	stats.Confirmed = lo.CountBy(r.records, func(rec *models.BatchTransactionRecord) bool {
		return rec.Status == models.BatchStatusConfirmed
	})
	stats.Pending = lo.CountBy(r.records, func(rec *models.BatchTransactionRecord) bool {
		return rec.Status == models.BatchStatusPending
	})
	stats.Failed = lo.CountBy(r.records, func(rec *models.BatchTransactionRecord) bool {
		return rec.Status == models.BatchStatusFailed
	})
	stats.TotalCalls = lo.SumBy(r.records, func(rec *models.BatchTransactionRecord) int {
		return len(rec.Calls)
	})

	if len(r.records) > 0 {
		stats.NewestTimestamp = r.records[0].Timestamp
		stats.OldestTimestamp = r.records[len(r.records)-1].Timestamp
	}
	return stats
}

// sortRecords orders newest-first. The sort is stable so same-timestamp
// records keep their relative order within one read.
func sortRecords(records []*models.BatchTransactionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
}

func slicesIndex(records []*models.BatchTransactionRecord, id string) int {
	for i, rec := range records {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

// Ensure the repository implements the port
var _ usecase.HistoryRepository = (*FileRepository)(nil)
