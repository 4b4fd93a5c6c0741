package adapters

import (
	"github.com/google/wire"

	"github.com/batchlab/batchctl/internal/adapters/fs"
	"github.com/batchlab/batchctl/internal/adapters/interactive"
	"github.com/batchlab/batchctl/internal/adapters/repository/history"
	"github.com/batchlab/batchctl/internal/adapters/wallet"
	"github.com/batchlab/batchctl/internal/usecase"
)

// WalletSet provides the JSON-RPC wallet boundary
var WalletSet = wire.NewSet(
	wallet.NewClient,
	wire.Bind(new(usecase.WalletClient), new(*wallet.Client)),
)

// HistorySet provides the file-backed batch history
var HistorySet = wire.NewSet(
	history.NewFileRepository,
	wire.Bind(new(usecase.HistoryRepository), new(*history.FileRepository)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewTemplateCatalogAdapter,
	wire.Bind(new(usecase.TemplateCatalog), new(*fs.TemplateCatalogAdapter)),
)

// InteractiveSet provides interactive prompt implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.TemplateSelector), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	WalletSet,
	HistorySet,
	FSSet,
	InteractiveSet,
)
