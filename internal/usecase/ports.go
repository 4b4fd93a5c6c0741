package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
)

// WalletTransaction is a transaction request routed through the wallet
// boundary, optionally carrying an EIP-7702 authorization list.
type WalletTransaction struct {
	From  common.Address
	To    common.Address
	Value *big.Int
	Data  []byte

	// At most one of the two lists is populated
	Authorizations       []domain.Authorization
	SignedAuthorizations []domain.SignedAuthorization
}

// BatchStatusResult is the normalized form of a wallet batch-status query.
type BatchStatusResult struct {
	Status   models.BatchStatus
	Receipts []models.CallReceipt
}

// WalletClient is the wallet RPC boundary. Request and response shapes are
// asserted at the adapter so internal logic never handles untyped payloads.
type WalletClient interface {
	// ChainID returns the chain the wallet endpoint is connected to
	ChainID(ctx context.Context) (uint64, error)

	// CodeAt reads the raw bytecode at an address
	CodeAt(ctx context.Context, address common.Address) ([]byte, error)

	// SendCalls submits an atomic batch and returns the batch identifier,
	// normalized whether the wallet answers with a bare string or an object
	SendCalls(ctx context.Context, req *domain.SendCallsRequest) (string, error)

	// GetCallsStatus queries settlement of a previously submitted batch
	GetCallsStatus(ctx context.Context, batchID string) (*BatchStatusResult, error)

	// SendTransaction submits a single transaction, returning its hash
	SendTransaction(ctx context.Context, tx WalletTransaction) (common.Hash, error)

	// SignAuthorization produces a signed EIP-7702 tuple client-side
	SignAuthorization(ctx context.Context, from common.Address, auth domain.Authorization) (*domain.SignedAuthorization, error)

	// DisableDelegation invokes the wallet-native delegation kill switch.
	// Support is detected via error, not a capability flag.
	DisableDelegation(ctx context.Context, address common.Address) (string, error)

	// RevokePermissions invokes the generic permission-revocation capability
	RevokePermissions(ctx context.Context) (string, error)

	// PendingNonceAt returns the account's next nonce including pending txs
	PendingNonceAt(ctx context.Context, address common.Address) (uint64, error)

	// SuggestGasPrice samples the current gas price
	SuggestGasPrice(ctx context.Context) (*big.Int, error)

	// EstimateGas estimates a single call issued by from
	EstimateGas(ctx context.Context, from common.Address, call domain.Call) (uint64, error)

	// WaitForReceipt blocks until the transaction is mined
	WaitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// HistoryStats summarizes the current history collection. It is derived by
// scanning on every call, never cached independently.
type HistoryStats struct {
	Total      int
	Confirmed  int
	Pending    int
	Failed     int
	TotalCalls int

	// Zero when the history is empty
	OldestTimestamp int64
	NewestTimestamp int64
}

// HistoryRepository owns the persisted batch history. It is the sole mutator
// of the collection; every read returns records newest-first.
type HistoryRepository interface {
	// AddRecord stamps the creation time, prepends the record, and applies
	// the retention cap. Persistence failures are logged, not returned; the
	// in-memory view stays serviceable for the session either way.
	AddRecord(ctx context.Context, rec *models.BatchTransactionRecord) *models.BatchTransactionRecord

	// UpdateRecord merges a shallow patch into the record with the given id.
	// A missing id is a no-op. A patch that would move a terminal record
	// back to pending fails with domain.ErrTerminalRecord.
	UpdateRecord(ctx context.Context, id string, patch models.RecordPatch) error

	// GetRecord returns one record or domain.ErrNotFound
	GetRecord(ctx context.Context, id string) (*models.BatchTransactionRecord, error)

	// ListRecords returns matching records, newest-first
	ListRecords(ctx context.Context, filter domain.HistoryFilter) []*models.BatchTransactionRecord

	// DeleteRecord removes one record; missing ids are a no-op
	DeleteRecord(ctx context.Context, id string) error

	// ClearAll removes every record
	ClearAll(ctx context.Context) error

	// ExportJSON serializes the full collection
	ExportJSON(ctx context.Context) ([]byte, error)

	// ImportJSON merges records from an export, de-duplicating by id with
	// the existing record winning. Malformed input leaves the store
	// untouched and returns the parse error.
	ImportJSON(ctx context.Context, data []byte) (added int, err error)

	// Stats derives summary statistics from the current collection
	Stats(ctx context.Context) *HistoryStats
}

// TemplateCatalog provides named batch presets.
type TemplateCatalog interface {
	ListTemplates(ctx context.Context) ([]*domain.BatchTemplate, error)
	GetTemplate(ctx context.Context, name string) (*domain.BatchTemplate, error)
}

// TemplateSelector handles interactive template selection.
type TemplateSelector interface {
	SelectTemplate(ctx context.Context, templates []*domain.BatchTemplate, prompt string) (*domain.BatchTemplate, error)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
