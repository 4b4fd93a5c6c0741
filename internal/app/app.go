package app

import (
	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Shared dependencies
	Selector  usecase.TemplateSelector
	Confirmer usecase.Confirmer
	Templates usecase.TemplateCatalog

	// Use cases
	CheckDelegation  *usecase.CheckDelegation
	SubmitBatch      *usecase.SubmitBatch
	EstimateGas      *usecase.EstimateGas
	CheckBatchStatus *usecase.CheckBatchStatus
	RevokeDelegation *usecase.RevokeDelegation
	ListHistory      *usecase.ListHistory
	ShowRecord       *usecase.ShowRecord
	DeleteRecord     *usecase.DeleteRecord
	ClearHistory     *usecase.ClearHistory
	ExportHistory    *usecase.ExportHistory
	ImportHistory    *usecase.ImportHistory
	HistoryStats     *usecase.QueryHistoryStats
	ListTemplates    *usecase.ListTemplates
	ListNetworks     *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	selector usecase.TemplateSelector,
	confirmer usecase.Confirmer,
	templates usecase.TemplateCatalog,
	checkDelegation *usecase.CheckDelegation,
	submitBatch *usecase.SubmitBatch,
	estimateGas *usecase.EstimateGas,
	checkBatchStatus *usecase.CheckBatchStatus,
	revokeDelegation *usecase.RevokeDelegation,
	listHistory *usecase.ListHistory,
	showRecord *usecase.ShowRecord,
	deleteRecord *usecase.DeleteRecord,
	clearHistory *usecase.ClearHistory,
	exportHistory *usecase.ExportHistory,
	importHistory *usecase.ImportHistory,
	historyStats *usecase.QueryHistoryStats,
	listTemplates *usecase.ListTemplates,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:           cfg,
		Selector:         selector,
		Confirmer:        confirmer,
		Templates:        templates,
		CheckDelegation:  checkDelegation,
		SubmitBatch:      submitBatch,
		EstimateGas:      estimateGas,
		CheckBatchStatus: checkBatchStatus,
		RevokeDelegation: revokeDelegation,
		ListHistory:      listHistory,
		ShowRecord:       showRecord,
		DeleteRecord:     deleteRecord,
		ClearHistory:     clearHistory,
		ExportHistory:    exportHistory,
		ImportHistory:    importHistory,
		HistoryStats:     historyStats,
		ListTemplates:    listTemplates,
		ListNetworks:     listNetworks,
	}, nil
}
