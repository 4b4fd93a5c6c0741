package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Authorization is an EIP-7702 authorization tuple in its wire form. An
// authorization designating the zero address clears the account's delegation.
type Authorization struct {
	ChainID string `json:"chainId"`
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

// SignedAuthorization is an authorization tuple carrying the signature fields
// produced by a client-side signing primitive.
type SignedAuthorization struct {
	Authorization
	YParity string `json:"yParity,omitempty"`
	R       string `json:"r,omitempty"`
	S       string `json:"s,omitempty"`
}

// NewRevokeAuthorization builds the tuple that clears delegation: the zero
// address as delegate, bound to the given chain and nonce.
func NewRevokeAuthorization(chainID, nonce uint64) Authorization {
	return Authorization{
		ChainID: hexutil.EncodeUint64(chainID),
		Address: common.Address{}.Hex(),
		Nonce:   hexutil.EncodeUint64(nonce),
	}
}
