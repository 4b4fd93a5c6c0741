package domain

import (
	"bytes"

	"github.com/ethereum/go-ethereum/common"
)

// EIP-7702 delegation designators are fixed-width: a 3-byte marker followed by
// the 20-byte delegate address.
var DelegationMarker = []byte{0xef, 0x01, 0x00}

const (
	// DelegationMarkerLength is the length of the 0xef0100 prefix
	DelegationMarkerLength = 3

	// DelegationCodeLength is the minimum length of a delegation designator
	DelegationCodeLength = DelegationMarkerLength + common.AddressLength
)

// DelegationState classifies the on-chain code of an account.
type DelegationState struct {
	// IsDelegated is true only for well-formed EIP-7702 designators
	IsDelegated bool

	// DelegatedTo is the delegate address; nil unless IsDelegated
	DelegatedTo *common.Address

	// HasCode is true for any non-empty code, including ordinary contracts
	HasCode bool

	// Code is the raw bytecode the state was derived from
	Code []byte
}

// ParseDelegationCode derives the delegation state from raw account bytecode.
// The delegate address is taken from the fixed byte offset after the marker,
// never by pattern search; trailing bytes beyond the designator are ignored.
func ParseDelegationCode(code []byte) DelegationState {
	state := DelegationState{Code: code}

	if len(code) == 0 {
		// Plain EOA
		return state
	}
	state.HasCode = true

	if len(code) < DelegationCodeLength || !bytes.HasPrefix(code, DelegationMarker) {
		// Ordinary contract code
		return state
	}

	delegate := common.BytesToAddress(code[DelegationMarkerLength:DelegationCodeLength])
	state.IsDelegated = true
	state.DelegatedTo = &delegate
	return state
}
