package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/batchlab/batchctl/internal/domain/models"
)

func TestBatchStatus(t *testing.T) {
	assert.True(t, models.BatchStatusConfirmed.Terminal())
	assert.True(t, models.BatchStatusFailed.Terminal())
	assert.False(t, models.BatchStatusPending.Terminal())

	assert.True(t, models.BatchStatusPending.Valid())
	assert.False(t, models.BatchStatus("settledish").Valid())
}

func TestNewLocalRecordID(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	id := models.NewLocalRecordID(now)
	assert.Regexp(t, `^tx_1700000000000_[0-9a-f]+$`, id)

	// Random suffix keeps same-millisecond ids distinct
	assert.NotEqual(t, id, models.NewLocalRecordID(now))
}
