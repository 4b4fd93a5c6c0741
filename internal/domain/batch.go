package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/batchlab/batchctl/internal/domain/models"
)

// SendCallsVersion is the wallet_sendCalls protocol version we speak.
const SendCallsVersion = "2.0.0"

// Call is one atomic operation within a batch.
type Call struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// HasValue reports whether the call transfers a non-zero amount.
func (c Call) HasValue() bool {
	return c.Value != nil && c.Value.Sign() > 0
}

// Validate checks a single call before it is placed in an envelope.
func (c Call) Validate() error {
	if c.To == (common.Address{}) {
		return NewValidationError("to", "call target is the zero address", ErrInvalidAddress)
	}
	if c.Value != nil && c.Value.Sign() < 0 {
		return NewValidationError("value", "call value is negative", nil)
	}
	return nil
}

// CallInput is a call as authored in a template or calls file. Value is a
// decimal ether amount; the persisted record form uses wei.
type CallInput struct {
	To          string `yaml:"to" json:"to"`
	Value       string `yaml:"value,omitempty" json:"value,omitempty"`
	Data        string `yaml:"data,omitempty" json:"data,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// ParseCall converts an authored call into its typed form.
func ParseCall(in CallInput) (Call, error) {
	if !common.IsHexAddress(in.To) {
		return Call{}, NewValidationError("to", "not a hex address: "+in.To, ErrInvalidAddress)
	}

	call := Call{To: common.HexToAddress(in.To)}

	if in.Value != "" {
		value, err := ParseEther(in.Value)
		if err != nil {
			return Call{}, NewValidationError("value", err.Error(), err)
		}
		call.Value = value
	}

	if in.Data != "" && in.Data != "0x" {
		data, err := hexutil.Decode(in.Data)
		if err != nil {
			return Call{}, NewValidationError("data", "not well-formed hex: "+in.Data, err)
		}
		call.Data = data
	}

	if err := call.Validate(); err != nil {
		return Call{}, err
	}
	return call, nil
}

// ParseCalls converts a whole authored call list, failing on the first bad
// entry.
func ParseCalls(in []CallInput) ([]Call, error) {
	calls := make([]Call, 0, len(in))
	for _, entry := range in {
		call, err := ParseCall(entry)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// Model returns the persisted form of the call: checksummed address, wei as
// a decimal string, data as hex.
func (c Call) Model(description string) models.Call {
	out := models.Call{To: c.To.Hex(), Description: description}
	if c.HasValue() {
		out.Value = c.Value.String()
	}
	if len(c.Data) > 0 {
		out.Data = hexutil.Encode(c.Data)
	}
	return out
}

// SendCallsCall is the wire form of a single call. Wallets reject an explicit
// empty data field and a zero value field, so both are omitted entirely
// rather than sent as "0x".
type SendCallsCall struct {
	To    string `json:"to"`
	Value string `json:"value,omitempty"`
	Data  string `json:"data,omitempty"`
}

// SendCallsRequest is the wallet_sendCalls envelope: one structured object,
// not an array of positional arguments.
type SendCallsRequest struct {
	Version        string          `json:"version"`
	ChainID        string          `json:"chainId"`
	From           string          `json:"from"`
	Calls          []SendCallsCall `json:"calls"`
	AtomicRequired bool            `json:"atomicRequired"`
}

// NewSendCallsRequest builds an atomic batch envelope. Validation failures
// here are local and never reach the wallet boundary.
func NewSendCallsRequest(chainID uint64, from common.Address, calls []Call) (*SendCallsRequest, error) {
	if len(calls) == 0 {
		return nil, NewValidationError("calls", "batch contains no calls", ErrEmptyBatch)
	}
	if chainID == 0 {
		return nil, NewValidationError("chainId", "chain ID is zero", ErrInvalidChainID)
	}
	if from == (common.Address{}) {
		return nil, NewValidationError("from", "sender is the zero address", ErrInvalidAddress)
	}

	req := &SendCallsRequest{
		Version: SendCallsVersion,
		// Minimal hex, lowercase, no leading zeros
		ChainID:        hexutil.EncodeUint64(chainID),
		From:           from.Hex(),
		Calls:          make([]SendCallsCall, 0, len(calls)),
		AtomicRequired: true,
	}

	for _, call := range calls {
		if err := call.Validate(); err != nil {
			return nil, err
		}
		// Address.Hex applies the EIP-55 checksum the wallet requires
		wire := SendCallsCall{To: call.To.Hex()}
		if call.HasValue() {
			wire.Value = hexutil.EncodeBig(call.Value)
		}
		if len(call.Data) > 0 {
			wire.Data = hexutil.Encode(call.Data)
		}
		req.Calls = append(req.Calls, wire)
	}

	return req, nil
}

// Validate re-checks the envelope immediately before transmission. The wallet
// boundary is loosely typed, so a malformed field must surface locally as a
// ValidationError instead of a wallet-side decode failure.
func (r *SendCallsRequest) Validate() error {
	if r.Version == "" {
		return NewValidationError("version", "missing protocol version", nil)
	}
	if _, err := hexutil.DecodeUint64(r.ChainID); err != nil {
		return NewValidationError("chainId", "not a minimal hex quantity", ErrInvalidChainID)
	}
	if !common.IsHexAddress(r.From) {
		return NewValidationError("from", "not a hex address", ErrInvalidAddress)
	}
	if len(r.Calls) == 0 {
		return NewValidationError("calls", "batch contains no calls", ErrEmptyBatch)
	}
	for _, call := range r.Calls {
		if !common.IsHexAddress(call.To) {
			return NewValidationError("calls", "call target is not a hex address", ErrInvalidAddress)
		}
		if call.Value != "" {
			if _, err := hexutil.DecodeBig(call.Value); err != nil {
				return NewValidationError("calls", "call value is not a hex quantity", err)
			}
		}
		if call.Data != "" {
			if _, err := hexutil.Decode(call.Data); err != nil {
				return NewValidationError("calls", "call data is not well-formed hex", err)
			}
		}
	}
	return nil
}
