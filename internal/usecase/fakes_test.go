package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
	"github.com/batchlab/batchctl/internal/usecase"
)

// fakeWallet implements the WalletClient port with per-method hooks. Methods
// without a hook return zero values.
type fakeWallet struct {
	chainID           uint64
	chainIDErr        error
	code              []byte
	codeErr           error
	sendCallsFn       func(req *domain.SendCallsRequest) (string, error)
	callsStatusFn     func(batchID string) (*usecase.BatchStatusResult, error)
	sendTxFn          func(tx usecase.WalletTransaction) (common.Hash, error)
	signAuthFn        func(from common.Address, auth domain.Authorization) (*domain.SignedAuthorization, error)
	disableFn         func(address common.Address) (string, error)
	revokePermsFn     func() (string, error)
	pendingNonce      uint64
	pendingNonceErr   error
	gasPrice          *big.Int
	gasPriceErr       error
	estimateGasFn     func(from common.Address, call domain.Call) (uint64, error)
	waitForReceiptFn  func(txHash common.Hash) (*types.Receipt, error)
	sentRequests      []*domain.SendCallsRequest
	attemptedMethods  []string
}

func (f *fakeWallet) ChainID(ctx context.Context) (uint64, error) {
	return f.chainID, f.chainIDErr
}

func (f *fakeWallet) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	return f.code, f.codeErr
}

func (f *fakeWallet) SendCalls(ctx context.Context, req *domain.SendCallsRequest) (string, error) {
	f.sentRequests = append(f.sentRequests, req)
	if f.sendCallsFn != nil {
		return f.sendCallsFn(req)
	}
	return "0xbatch", nil
}

func (f *fakeWallet) GetCallsStatus(ctx context.Context, batchID string) (*usecase.BatchStatusResult, error) {
	if f.callsStatusFn != nil {
		return f.callsStatusFn(batchID)
	}
	return &usecase.BatchStatusResult{Status: models.BatchStatusPending}, nil
}

func (f *fakeWallet) SendTransaction(ctx context.Context, tx usecase.WalletTransaction) (common.Hash, error) {
	f.attemptedMethods = append(f.attemptedMethods, "eth_sendTransaction")
	if f.sendTxFn != nil {
		return f.sendTxFn(tx)
	}
	return common.Hash{}, errors.New("not supported")
}

func (f *fakeWallet) SignAuthorization(ctx context.Context, from common.Address, auth domain.Authorization) (*domain.SignedAuthorization, error) {
	f.attemptedMethods = append(f.attemptedMethods, "eth_signAuthorization")
	if f.signAuthFn != nil {
		return f.signAuthFn(from, auth)
	}
	return nil, errors.New("not supported")
}

func (f *fakeWallet) DisableDelegation(ctx context.Context, address common.Address) (string, error) {
	f.attemptedMethods = append(f.attemptedMethods, "wallet_disableDelegation")
	if f.disableFn != nil {
		return f.disableFn(address)
	}
	return "", errors.New("not supported")
}

func (f *fakeWallet) RevokePermissions(ctx context.Context) (string, error) {
	f.attemptedMethods = append(f.attemptedMethods, "wallet_revokePermissions")
	if f.revokePermsFn != nil {
		return f.revokePermsFn()
	}
	return "", errors.New("not supported")
}

func (f *fakeWallet) PendingNonceAt(ctx context.Context, address common.Address) (uint64, error) {
	return f.pendingNonce, f.pendingNonceErr
}

func (f *fakeWallet) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	if f.gasPriceErr != nil {
		return nil, f.gasPriceErr
	}
	if f.gasPrice != nil {
		return f.gasPrice, nil
	}
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeWallet) EstimateGas(ctx context.Context, from common.Address, call domain.Call) (uint64, error) {
	if f.estimateGasFn != nil {
		return f.estimateGasFn(from, call)
	}
	return 21000, nil
}

func (f *fakeWallet) WaitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	if f.waitForReceiptFn != nil {
		return f.waitForReceiptFn(txHash)
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

var _ usecase.WalletClient = (*fakeWallet)(nil)

// memHistory is an in-memory HistoryRepository for use case tests.
type memHistory struct {
	records []*models.BatchTransactionRecord
}

func (m *memHistory) AddRecord(ctx context.Context, rec *models.BatchTransactionRecord) *models.BatchTransactionRecord {
	if rec.Status == "" {
		rec.Status = models.BatchStatusPending
	}
	m.records = append([]*models.BatchTransactionRecord{rec}, m.records...)
	return rec
}

func (m *memHistory) UpdateRecord(ctx context.Context, id string, patch models.RecordPatch) error {
	for _, rec := range m.records {
		if rec.ID != id {
			continue
		}
		if patch.Status != nil {
			if rec.Status.Terminal() && *patch.Status != rec.Status {
				return domain.ErrTerminalRecord
			}
			rec.Status = *patch.Status
		}
		if patch.Receipts != nil {
			rec.Receipts = patch.Receipts
		}
		if patch.Notes != nil {
			rec.Notes = *patch.Notes
		}
		if patch.Error != nil {
			rec.Error = *patch.Error
		}
		return nil
	}
	return nil
}

func (m *memHistory) GetRecord(ctx context.Context, id string) (*models.BatchTransactionRecord, error) {
	for _, rec := range m.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memHistory) ListRecords(ctx context.Context, filter domain.HistoryFilter) []*models.BatchTransactionRecord {
	var out []*models.BatchTransactionRecord
	for _, rec := range m.records {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

func (m *memHistory) DeleteRecord(ctx context.Context, id string) error {
	for i, rec := range m.records {
		if rec.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memHistory) ClearAll(ctx context.Context) error {
	m.records = nil
	return nil
}

func (m *memHistory) ExportJSON(ctx context.Context) ([]byte, error) {
	return json.Marshal(m.records)
}

func (m *memHistory) ImportJSON(ctx context.Context, data []byte) (int, error) {
	var incoming []*models.BatchTransactionRecord
	if err := json.Unmarshal(data, &incoming); err != nil {
		return 0, err
	}
	added := 0
	for _, rec := range incoming {
		if _, err := m.GetRecord(ctx, rec.ID); err == nil {
			continue
		}
		m.records = append(m.records, rec)
		added++
	}
	return added, nil
}

func (m *memHistory) Stats(ctx context.Context) *usecase.HistoryStats {
	stats := &usecase.HistoryStats{Total: len(m.records)}
	for _, rec := range m.records {
		switch rec.Status {
		case models.BatchStatusConfirmed:
			stats.Confirmed++
		case models.BatchStatusPending:
			stats.Pending++
		case models.BatchStatusFailed:
			stats.Failed++
		}
		stats.TotalCalls += len(rec.Calls)
	}
	return stats
}

var _ usecase.HistoryRepository = (*memHistory)(nil)

// recordingSink captures progress events and advisory messages.
type recordingSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errs   []string
}

func (s *recordingSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	s.events = append(s.events, event)
}

func (s *recordingSink) Info(message string)  { s.infos = append(s.infos, message) }
func (s *recordingSink) Error(message string) { s.errs = append(s.errs, message) }
