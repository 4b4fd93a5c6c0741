//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/batchlab/batchctl/internal/adapters"
	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/logging"
	"github.com/batchlab/batchctl/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(cfg *config.RuntimeConfig, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Logging
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewCheckDelegation,
		usecase.NewSubmitBatch,
		usecase.NewEstimateGas,
		usecase.NewCheckBatchStatus,
		usecase.NewRevokeDelegation,
		usecase.NewListHistory,
		usecase.NewShowRecord,
		usecase.NewDeleteRecord,
		usecase.NewClearHistory,
		usecase.NewExportHistory,
		usecase.NewImportHistory,
		usecase.NewQueryHistoryStats,
		usecase.NewListTemplates,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
