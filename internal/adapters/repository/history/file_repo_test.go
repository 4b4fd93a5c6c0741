package history_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batchlab/batchctl/internal/adapters/repository/history"
	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
)

func newRepo(t *testing.T) (*history.FileRepository, string) {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), ".batchctl")
	cfg := &config.RuntimeConfig{DataDir: dataDir}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo, err := history.NewFileRepository(cfg, log)
	require.NoError(t, err)
	return repo, dataDir
}

func record(id string) *models.BatchTransactionRecord {
	return &models.BatchTransactionRecord{
		ID:      id,
		Status:  models.BatchStatusPending,
		ChainID: 11155111,
		From:    "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Calls:   []models.Call{{To: "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"}},
	}
}

func TestFileRepositoryAddRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("stamps timestamp and defaults", func(t *testing.T) {
		repo, _ := newRepo(t)

		rec := repo.AddRecord(ctx, &models.BatchTransactionRecord{ID: "0xbatch"})
		assert.NotZero(t, rec.Timestamp)
		assert.Equal(t, models.BatchStatusPending, rec.Status)
	})

	t.Run("generates a local id when the wallet gave none", func(t *testing.T) {
		repo, _ := newRepo(t)

		rec := repo.AddRecord(ctx, &models.BatchTransactionRecord{})
		assert.Regexp(t, `^tx_\d+_`, rec.ID)
	})

	t.Run("newest record comes back first", func(t *testing.T) {
		repo, _ := newRepo(t)
		repo.AddRecord(ctx, record("first"))
		repo.AddRecord(ctx, record("second"))

		records := repo.ListRecords(ctx, domain.HistoryFilter{})
		require.Len(t, records, 2)
		assert.Equal(t, "second", records[0].ID)
	})

	t.Run("collection is capped at the most recent records", func(t *testing.T) {
		repo, _ := newRepo(t)
		for i := 0; i < history.MaxRecords+50; i++ {
			repo.AddRecord(ctx, record(fmt.Sprintf("rec-%d", i)))
		}

		records := repo.ListRecords(ctx, domain.HistoryFilter{})
		require.Len(t, records, history.MaxRecords)
		// The newest survives, the oldest 50 were evicted
		assert.Equal(t, fmt.Sprintf("rec-%d", history.MaxRecords+49), records[0].ID)
		_, err := repo.GetRecord(ctx, "rec-0")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("returned records do not alias the store", func(t *testing.T) {
		repo, _ := newRepo(t)
		repo.AddRecord(ctx, record("isolated"))

		got, err := repo.GetRecord(ctx, "isolated")
		require.NoError(t, err)
		got.Calls[0].To = "0xmangled"

		listed := repo.ListRecords(ctx, domain.HistoryFilter{})
		require.Len(t, listed, 1)
		assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", listed[0].Calls[0].To)

		listed[0].Calls[0].To = "0xmangled-again"
		fresh, err := repo.GetRecord(ctx, "isolated")
		require.NoError(t, err)
		assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", fresh.Calls[0].To)
	})

	t.Run("persists across reopen", func(t *testing.T) {
		dataDir := filepath.Join(t.TempDir(), ".batchctl")
		cfg := &config.RuntimeConfig{DataDir: dataDir}
		log := slog.New(slog.NewTextHandler(io.Discard, nil))

		repo, err := history.NewFileRepository(cfg, log)
		require.NoError(t, err)
		repo.AddRecord(ctx, record("0xbatch"))

		reopened, err := history.NewFileRepository(cfg, log)
		require.NoError(t, err)
		rec, err := reopened.GetRecord(ctx, "0xbatch")
		require.NoError(t, err)
		assert.Equal(t, uint64(11155111), rec.ChainID)
	})
}

func TestFileRepositoryUpdateRecord(t *testing.T) {
	ctx := context.Background()
	confirmed := models.BatchStatusConfirmed
	pending := models.BatchStatusPending

	t.Run("patch settles a pending record", func(t *testing.T) {
		repo, _ := newRepo(t)
		repo.AddRecord(ctx, record("0xbatch"))

		receipts := []models.CallReceipt{{TransactionHash: "0xabc"}}
		err := repo.UpdateRecord(ctx, "0xbatch", models.RecordPatch{
			Status:   &confirmed,
			Receipts: receipts,
		})
		require.NoError(t, err)

		rec, err := repo.GetRecord(ctx, "0xbatch")
		require.NoError(t, err)
		assert.Equal(t, models.BatchStatusConfirmed, rec.Status)
		assert.Len(t, rec.Receipts, 1)
	})

	t.Run("terminal records never go back to pending", func(t *testing.T) {
		repo, _ := newRepo(t)
		repo.AddRecord(ctx, record("0xbatch"))
		require.NoError(t, repo.UpdateRecord(ctx, "0xbatch", models.RecordPatch{Status: &confirmed}))

		err := repo.UpdateRecord(ctx, "0xbatch", models.RecordPatch{Status: &pending})
		assert.ErrorIs(t, err, domain.ErrTerminalRecord)

		rec, _ := repo.GetRecord(ctx, "0xbatch")
		assert.Equal(t, models.BatchStatusConfirmed, rec.Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		repo, _ := newRepo(t)
		repo.AddRecord(ctx, record("0xbatch"))

		bogus := models.BatchStatus("settledish")
		err := repo.UpdateRecord(ctx, "0xbatch", models.RecordPatch{Status: &bogus})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("missing id is a quiet no-op", func(t *testing.T) {
		repo, _ := newRepo(t)
		err := repo.UpdateRecord(ctx, "nope", models.RecordPatch{Status: &confirmed})
		assert.NoError(t, err)
	})

	t.Run("unset patch fields leave values alone", func(t *testing.T) {
		repo, _ := newRepo(t)
		rec := record("0xbatch")
		rec.Notes = "keep me"
		repo.AddRecord(ctx, rec)

		require.NoError(t, repo.UpdateRecord(ctx, "0xbatch", models.RecordPatch{Status: &confirmed}))

		got, err := repo.GetRecord(ctx, "0xbatch")
		require.NoError(t, err)
		assert.Equal(t, "keep me", got.Notes)
	})
}

func TestFileRepositoryFiltering(t *testing.T) {
	ctx := context.Background()
	confirmed := models.BatchStatusConfirmed

	repo, _ := newRepo(t)
	repo.AddRecord(ctx, record("a"))
	repo.AddRecord(ctx, record("b"))
	repo.AddRecord(ctx, record("c"))
	require.NoError(t, repo.UpdateRecord(ctx, "b", models.RecordPatch{Status: &confirmed}))

	t.Run("by status", func(t *testing.T) {
		records := repo.ListRecords(ctx, domain.HistoryFilter{Status: models.BatchStatusConfirmed})
		require.Len(t, records, 1)
		assert.Equal(t, "b", records[0].ID)
	})

	t.Run("by sender, case-insensitive", func(t *testing.T) {
		records := repo.ListRecords(ctx, domain.HistoryFilter{
			From: "0XF39FD6E51AAD88F6F4CE6AB8827279CFFFB92266",
		})
		assert.Len(t, records, 3)
	})

	t.Run("limit", func(t *testing.T) {
		records := repo.ListRecords(ctx, domain.HistoryFilter{Limit: 2})
		assert.Len(t, records, 2)
	})
}

func TestFileRepositoryImportExport(t *testing.T) {
	ctx := context.Background()

	t.Run("export and import round-trip the same id set", func(t *testing.T) {
		source, _ := newRepo(t)
		source.AddRecord(ctx, record("a"))
		source.AddRecord(ctx, record("b"))

		data, err := source.ExportJSON(ctx)
		require.NoError(t, err)

		dest, _ := newRepo(t)
		added, err := dest.ImportJSON(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, 2, added)

		records := dest.ListRecords(ctx, domain.HistoryFilter{})
		assert.Len(t, records, 2)
	})

	t.Run("existing records win on id collision", func(t *testing.T) {
		repo, _ := newRepo(t)
		local := record("shared")
		local.Notes = "local copy"
		repo.AddRecord(ctx, local)

		foreign := record("shared")
		foreign.Notes = "imported copy"
		data, err := json.Marshal([]*models.BatchTransactionRecord{foreign, record("new")})
		require.NoError(t, err)

		added, err := repo.ImportJSON(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, 1, added)

		rec, err := repo.GetRecord(ctx, "shared")
		require.NoError(t, err)
		assert.Equal(t, "local copy", rec.Notes)
	})

	t.Run("malformed input mutates nothing", func(t *testing.T) {
		repo, _ := newRepo(t)
		repo.AddRecord(ctx, record("keep"))

		added, err := repo.ImportJSON(ctx, []byte("{not json"))
		assert.Error(t, err)
		assert.Zero(t, added)
		assert.Len(t, repo.ListRecords(ctx, domain.HistoryFilter{}), 1)
	})

	t.Run("empty collection exports an empty array", func(t *testing.T) {
		repo, _ := newRepo(t)
		data, err := repo.ExportJSON(ctx)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data))
	})
}

func TestFileRepositoryStats(t *testing.T) {
	ctx := context.Background()
	confirmed := models.BatchStatusConfirmed
	failed := models.BatchStatusFailed

	repo, _ := newRepo(t)
	repo.AddRecord(ctx, record("a"))
	repo.AddRecord(ctx, record("b"))
	repo.AddRecord(ctx, record("c"))
	require.NoError(t, repo.UpdateRecord(ctx, "a", models.RecordPatch{Status: &confirmed}))
	require.NoError(t, repo.UpdateRecord(ctx, "b", models.RecordPatch{Status: &failed}))

	stats := repo.Stats(ctx)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 3, stats.TotalCalls)
	assert.NotZero(t, stats.NewestTimestamp)
}

func TestFileRepositoryDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes one record", func(t *testing.T) {
		repo, dataDir := newRepo(t)
		repo.AddRecord(ctx, record("a"))
		repo.AddRecord(ctx, record("b"))

		require.NoError(t, repo.DeleteRecord(ctx, "a"))
		_, err := repo.GetRecord(ctx, "a")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		// On disk too
		data, err := os.ReadFile(filepath.Join(dataDir, history.HistoryFile))
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"a"`)
	})

	t.Run("clear empties the collection", func(t *testing.T) {
		repo, _ := newRepo(t)
		repo.AddRecord(ctx, record("a"))

		require.NoError(t, repo.ClearAll(ctx))
		assert.Empty(t, repo.ListRecords(ctx, domain.HistoryFilter{}))
	})

	t.Run("deleting a missing id is a no-op", func(t *testing.T) {
		repo, _ := newRepo(t)
		assert.NoError(t, repo.DeleteRecord(ctx, "nope"))
	})
}
