package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/batchlab/batchctl/internal/config"
	"github.com/batchlab/batchctl/internal/domain"
	"github.com/batchlab/batchctl/internal/domain/models"
	"github.com/batchlab/batchctl/internal/usecase"
)

// EIP-1193 provider error codes
const (
	codeUserRejected      = 4001
	codeUnsupportedMethod = 4200
)

// receiptPollInterval is how often WaitForReceipt re-queries the chain.
const receiptPollInterval = 2 * time.Second

// Client implements the WalletClient port over two endpoints: the wallet
// extension RPC for batch/signing methods and the chain RPC for reads.
type Client struct {
	wallet *rpc.Client
	chain  *ethclient.Client
	log    *slog.Logger
}

// NewClient dials both endpoints. When no separate wallet_rpc is configured,
// the network RPC serves both roles.
func NewClient(cfg *config.RuntimeConfig, log *slog.Logger) (*Client, error) {
	if cfg.Network == nil {
		return nil, fmt.Errorf("no network selected: set --network or default_network in %s", config.ConfigFile)
	}

	walletURL := cfg.WalletRPC
	if walletURL == "" {
		walletURL = cfg.Network.RPCURL
	}

	walletRPC, err := rpc.Dial(walletURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to wallet RPC: %w", err)
	}

	chainRPC, err := rpc.Dial(cfg.Network.RPCURL)
	if err != nil {
		walletRPC.Close()
		return nil, fmt.Errorf("failed to connect to %s RPC: %w", cfg.Network.Name, err)
	}

	return &Client{
		wallet: walletRPC,
		chain:  ethclient.NewClient(chainRPC),
		log:    log,
	}, nil
}

// Close releases both connections.
func (c *Client) Close() {
	c.wallet.Close()
	c.chain.Close()
}

// ChainID returns the chain the wallet endpoint reports.
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	var raw hexutil.Big
	if err := c.wallet.CallContext(ctx, &raw, "eth_chainId"); err != nil {
		return 0, c.classify("eth_chainId", err)
	}
	return raw.ToInt().Uint64(), nil
}

// CodeAt reads raw bytecode from the chain endpoint.
func (c *Client) CodeAt(ctx context.Context, address common.Address) ([]byte, error) {
	return c.chain.CodeAt(ctx, address, nil)
}

// SendCalls submits an atomic batch via wallet_sendCalls. The envelope is one
// structured object; wallets answer with either a bare id string or an object
// carrying an id field, and both are normalized here.
func (c *Client) SendCalls(ctx context.Context, req *domain.SendCallsRequest) (string, error) {
	var raw json.RawMessage
	if err := c.wallet.CallContext(ctx, &raw, "wallet_sendCalls", req); err != nil {
		return "", c.classify("wallet_sendCalls", err)
	}

	id, err := normalizeBatchID(raw)
	if err != nil {
		return "", &domain.WalletProtocolError{
			Method:  "wallet_sendCalls",
			Message: fmt.Sprintf("unrecognized batch id response: %s", raw),
		}
	}

	c.log.Debug("batch submitted", "batchId", id, "calls", len(req.Calls))
	return id, nil
}

// callsStatusResponse is the raw wallet_getCallsStatus answer. Status comes
// back as a string on current wallets and a numeric code on newer ones.
type callsStatusResponse struct {
	Status   json.RawMessage `json:"status"`
	Receipts []struct {
		TransactionHash string `json:"transactionHash"`
		BlockNumber     string `json:"blockNumber"`
		GasUsed         string `json:"gasUsed"`
		Status          string `json:"status"`
	} `json:"receipts"`
}

// GetCallsStatus queries settlement of a batch via wallet_getCallsStatus.
func (c *Client) GetCallsStatus(ctx context.Context, batchID string) (*usecase.BatchStatusResult, error) {
	var resp callsStatusResponse
	if err := c.wallet.CallContext(ctx, &resp, "wallet_getCallsStatus", batchID); err != nil {
		return nil, c.classify("wallet_getCallsStatus", err)
	}

	result := &usecase.BatchStatusResult{Status: normalizeBatchStatus(resp.Status)}
	for _, r := range resp.Receipts {
		result.Receipts = append(result.Receipts, models.CallReceipt{
			TransactionHash: r.TransactionHash,
			BlockNumber:     r.BlockNumber,
			GasUsed:         r.GasUsed,
			Status:          r.Status,
		})
	}
	return result, nil
}

// sendTxParams is the eth_sendTransaction request object, optionally carrying
// an EIP-7702 authorization list.
type sendTxParams struct {
	From              string `json:"from"`
	To                string `json:"to"`
	Value             string `json:"value"`
	Data              string `json:"data"`
	AuthorizationList []any  `json:"authorizationList,omitempty"`
}

// SendTransaction routes a single transaction through the wallet.
func (c *Client) SendTransaction(ctx context.Context, tx usecase.WalletTransaction) (common.Hash, error) {
	value := big.NewInt(0)
	if tx.Value != nil {
		value = tx.Value
	}

	params := sendTxParams{
		From:  tx.From.Hex(),
		To:    tx.To.Hex(),
		Value: hexutil.EncodeBig(value),
		Data:  hexutil.Encode(tx.Data),
	}
	for _, auth := range tx.Authorizations {
		params.AuthorizationList = append(params.AuthorizationList, auth)
	}
	for _, auth := range tx.SignedAuthorizations {
		params.AuthorizationList = append(params.AuthorizationList, auth)
	}

	var hash common.Hash
	if err := c.wallet.CallContext(ctx, &hash, "eth_sendTransaction", params); err != nil {
		return common.Hash{}, c.classify("eth_sendTransaction", err)
	}
	return hash, nil
}

// signAuthorizationParams is the eth_signAuthorization request object.
type signAuthorizationParams struct {
	From    string `json:"from"`
	ChainID string `json:"chainId"`
	Address string `json:"address"`
	Nonce   string `json:"nonce"`
}

// SignAuthorization asks the wallet to sign an authorization tuple without
// submitting anything.
func (c *Client) SignAuthorization(ctx context.Context, from common.Address, auth domain.Authorization) (*domain.SignedAuthorization, error) {
	params := signAuthorizationParams{
		From:    from.Hex(),
		ChainID: auth.ChainID,
		Address: auth.Address,
		Nonce:   auth.Nonce,
	}

	var signed domain.SignedAuthorization
	if err := c.wallet.CallContext(ctx, &signed, "eth_signAuthorization", params); err != nil {
		return nil, c.classify("eth_signAuthorization", err)
	}

	// Some wallets echo only the signature; keep the tuple we asked for
	if signed.Address == "" {
		signed.Authorization = auth
	}
	return &signed, nil
}

// DisableDelegation invokes the wallet-native delegation kill switch.
func (c *Client) DisableDelegation(ctx context.Context, address common.Address) (string, error) {
	var result string
	if err := c.wallet.CallContext(ctx, &result, "wallet_disableDelegation", address.Hex()); err != nil {
		return "", c.classify("wallet_disableDelegation", err)
	}
	return result, nil
}

// RevokePermissions invokes the generic permission-revocation capability.
func (c *Client) RevokePermissions(ctx context.Context) (string, error) {
	params := map[string]any{"eth_accounts": map[string]any{}}

	var result string
	if err := c.wallet.CallContext(ctx, &result, "wallet_revokePermissions", params); err != nil {
		return "", c.classify("wallet_revokePermissions", err)
	}
	return result, nil
}

// PendingNonceAt returns the account nonce including pending transactions.
func (c *Client) PendingNonceAt(ctx context.Context, address common.Address) (uint64, error) {
	return c.chain.PendingNonceAt(ctx, address)
}

// SuggestGasPrice samples the current gas price from the chain endpoint.
func (c *Client) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return c.chain.SuggestGasPrice(ctx)
}

// EstimateGas estimates one call issued by from.
func (c *Client) EstimateGas(ctx context.Context, from common.Address, call domain.Call) (uint64, error) {
	msg := ethereum.CallMsg{
		From:  from,
		To:    &call.To,
		Value: call.Value,
		Data:  call.Data,
	}
	return c.chain.EstimateGas(ctx, msg)
}

// WaitForReceipt polls until the transaction is mined or ctx expires. The
// underlying action is not cancellable; abandoning the wait does not mean
// the transaction did not happen.
func (c *Client) WaitForReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.chain.TransactionReceipt(ctx, txHash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// classify maps wallet endpoint failures onto the domain taxonomy while
// keeping the wallet's own message intact.
func (c *Client) classify(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch code := rpcErr.ErrorCode(); code {
		case codeUserRejected:
			return &domain.WalletRejectionError{Method: method, Message: rpcErr.Error()}
		default:
			return &domain.WalletProtocolError{Method: method, Code: code, Message: rpcErr.Error()}
		}
	}

	// Some providers only signal rejection in the message text
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "user rejected") || strings.Contains(msg, "user denied") {
		return &domain.WalletRejectionError{Method: method, Message: err.Error()}
	}

	return &domain.WalletProtocolError{Method: method, Message: err.Error()}
}

// normalizeBatchID accepts either a bare string id or an object with an id
// field and returns a printable identifier.
func normalizeBatchID(raw json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil && id != "" {
		return id, nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ID != "" {
		return obj.ID, nil
	}

	return "", fmt.Errorf("no id in response")
}

// normalizeBatchStatus folds the wallet's status field (string name or
// numeric code) into the record lifecycle states.
func normalizeBatchStatus(raw json.RawMessage) models.BatchStatus {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		switch strings.ToUpper(name) {
		case "CONFIRMED":
			return models.BatchStatusConfirmed
		case "FAILED":
			return models.BatchStatusFailed
		default:
			return models.BatchStatusPending
		}
	}

	var code int
	if err := json.Unmarshal(raw, &code); err == nil {
		switch {
		case code == 200:
			return models.BatchStatusConfirmed
		case code >= 400:
			return models.BatchStatusFailed
		}
	}

	return models.BatchStatusPending
}

// Ensure the adapter implements the port
var _ usecase.WalletClient = (*Client)(nil)
