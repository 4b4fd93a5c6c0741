package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrEmptyBatch is returned when a batch is submitted with no calls
	ErrEmptyBatch = errors.New("batch contains no calls")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrWrongNetwork is returned when the wallet is connected to a different
	// chain than the one configured for the command
	ErrWrongNetwork = errors.New("wrong network")

	// ErrTerminalRecord is returned when an update would move a confirmed or
	// failed record back to pending
	ErrTerminalRecord = errors.New("record already settled")
)

// ValidationError reports malformed local input. It is always raised before
// any wallet RPC is issued.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

// NewValidationError wraps a sentinel into a field-scoped validation error.
func NewValidationError(field, reason string, err error) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Err: err}
}

// WalletRejectionError reports an explicit user decline at the wallet
// (EIP-1193 code 4001). It is terminal for the attempt and never retried.
type WalletRejectionError struct {
	Method  string
	Message string
}

func (e *WalletRejectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("user rejected %s: %s", e.Method, e.Message)
	}
	return fmt.Sprintf("user rejected %s", e.Method)
}

// WalletProtocolError reports that the wallet boundary rejected the request
// shape or does not support the method. The wallet-provided message is kept
// verbatim so the presentation layer can show the full diagnostic.
type WalletProtocolError struct {
	Method  string
	Code    int
	Message string
}

func (e *WalletProtocolError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("wallet rejected %s (code %d): %s", e.Method, e.Code, e.Message)
	}
	return fmt.Sprintf("wallet rejected %s: %s", e.Method, e.Message)
}

// ProbeError reports that the code-read RPC itself failed. An address with no
// code is not a probe error.
type ProbeError struct {
	Address string
	Err     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("failed to read code at %s: %v", e.Address, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// EstimationError reports that gas estimation failed for every call in the
// batch. A subset of failing calls degrades to the fallback constant instead.
type EstimationError struct {
	Calls int
	Err   error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("gas estimation failed for all %d calls: %v", e.Calls, e.Err)
}

func (e *EstimationError) Unwrap() error { return e.Err }

// RevocationDiagnostic records the outcome of one attempted revocation method.
type RevocationDiagnostic struct {
	Method  string
	Message string
}

// AllMethodsFailedError aggregates the diagnostic from every attempted
// revocation method. The full list is user-facing, not just the last failure.
type AllMethodsFailedError struct {
	Attempts []RevocationDiagnostic
}

func (e *AllMethodsFailedError) Error() string {
	var b strings.Builder
	b.WriteString("all revocation methods failed:")
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "\n  %s: %s", a.Method, a.Message)
	}
	return b.String()
}

// PersistenceError reports a local history store read/write failure. Mutating
// store calls log it instead of returning it; reads stay best-effort.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsUserRejection reports whether err is an explicit user decline rather than
// a technical failure.
func IsUserRejection(err error) bool {
	var rej *WalletRejectionError
	return errors.As(err, &rej)
}
