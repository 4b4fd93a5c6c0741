package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"
	"time"
)

// BatchStatus is the lifecycle state of a submitted batch. A record is
// created pending and transitions once, terminally, to confirmed or failed.
type BatchStatus string

const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusConfirmed BatchStatus = "confirmed"
	BatchStatusFailed    BatchStatus = "failed"
)

// Terminal reports whether the status permits no further transitions.
func (s BatchStatus) Terminal() bool {
	return s == BatchStatusConfirmed || s == BatchStatusFailed
}

// Valid reports whether s is one of the known lifecycle states.
func (s BatchStatus) Valid() bool {
	return s == BatchStatusPending || s.Terminal()
}

// Call is the persisted form of one call within a batch. Value is a decimal
// wei string; Data is 0x-prefixed hex or empty.
type Call struct {
	To          string `json:"to"`
	Value       string `json:"value,omitempty"`
	Data        string `json:"data,omitempty"`
	Description string `json:"description,omitempty"`
}

// CallReceipt is the per-call settlement receipt reported by the wallet,
// populated only when a record transitions to confirmed.
type CallReceipt struct {
	TransactionHash string `json:"transactionHash"`
	BlockNumber     string `json:"blockNumber,omitempty"`
	GasUsed         string `json:"gasUsed,omitempty"`
	Status          string `json:"status,omitempty"`
}

// GasSnapshot preserves the estimate shown to the user before submission.
// It is never re-derived after the fact.
type GasSnapshot struct {
	Total           string `json:"total"`
	TotalEther      string `json:"totalEther"`
	Sequential      string `json:"sequential,omitempty"`
	SequentialEther string `json:"sequentialEther,omitempty"`
	Savings         string `json:"savings,omitempty"`
	SavingsEther    string `json:"savingsEther,omitempty"`
	SavingsPercent  int    `json:"savingsPercent,omitempty"`
}

// BatchTransactionRecord is the durable unit of history.
type BatchTransactionRecord struct {
	// ID is wallet-issued when known, otherwise locally generated
	ID string `json:"id"`

	// Timestamp is the creation instant in milliseconds since epoch. It is
	// immutable and the primary (descending) sort key.
	Timestamp int64 `json:"timestamp"`

	Status  BatchStatus `json:"status"`
	ChainID uint64      `json:"chainId"`
	From    string      `json:"from"`
	Calls   []Call      `json:"calls"`

	Receipts    []CallReceipt `json:"receipts,omitempty"`
	GasEstimate *GasSnapshot  `json:"gasEstimate,omitempty"`

	Template string `json:"template,omitempty"`
	Notes    string `json:"notes,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Clone returns a deep copy. Mutating the result never writes through to r.
func (r *BatchTransactionRecord) Clone() *BatchTransactionRecord {
	clone := *r
	clone.Calls = slices.Clone(r.Calls)
	clone.Receipts = slices.Clone(r.Receipts)
	if r.GasEstimate != nil {
		snapshot := *r.GasEstimate
		clone.GasEstimate = &snapshot
	}
	return &clone
}

// RecordPatch is a shallow field overwrite applied by the store. Nil fields
// leave the stored value untouched.
type RecordPatch struct {
	Status      *BatchStatus
	Receipts    []CallReceipt
	GasEstimate *GasSnapshot
	Notes       *string
	Error       *string
}

// NewLocalRecordID generates an identifier for a record whose wallet batch id
// is not yet known, in the form tx_<timestamp>_<random>.
func NewLocalRecordID(now time.Time) string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Timestamp alone still orders records; randomness only guards
		// against same-millisecond collisions.
		return fmt.Sprintf("tx_%d_0", now.UnixMilli())
	}
	return fmt.Sprintf("tx_%d_%s", now.UnixMilli(), hex.EncodeToString(buf[:]))
}
