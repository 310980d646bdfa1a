package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AlexZinkM/near-credentials/internal/model"

	"go.uber.org/zap"
)

const (
	jsonRPCVersion = "2.0"
	requestID      = "dontcare"
	methodQuery    = "query"
	finalityFinal  = "final"

	requestViewAccount       = "view_account"
	requestViewAccessKeyList = "view_access_key_list"
	requestViewState         = "view_state"

	causeUnknownAccount = "UNKNOWN_ACCOUNT"
	accountMissingText  = "does not exist while viewing"

	// codeServerError is reported for failures older nodes return inside a result
	codeServerError = -32000

	defaultTimeout = 15 * time.Second
)

// NearClient is a JSON-RPC client for a NEAR node
type NearClient struct {
	rpcURL string
	client *http.Client
	logger *zap.Logger
}

// NewNearClient creates a new client for the given node URL.
// A nil httpClient gets a client with the given timeout (15s when timeout is zero).
func NewNearClient(rpcURL string, httpClient *http.Client, timeout time.Duration, logger *zap.Logger) *NearClient {
	if httpClient == nil {
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NearClient{
		rpcURL: rpcURL,
		client: httpClient,
		logger: logger,
	}
}

// URL returns the node URL
func (c *NearClient) URL() string {
	return c.rpcURL
}

type rpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *model.RPCError `json:"error"`
}

// legacyResult is how older nodes report query failures inside a successful result
type legacyResult struct {
	Error string `json:"error"`
}

// ViewAccount gets the on-chain state of an account
func (c *NearClient) ViewAccount(ctx context.Context, accountID string) (*model.AccountState, error) {
	var state model.AccountState
	err := c.query(ctx, model.AccountQuery{
		RequestType: requestViewAccount,
		Finality:    finalityFinal,
		AccountID:   accountID,
	}, &state)
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// ViewAccessKeyList gets all access keys of an account
func (c *NearClient) ViewAccessKeyList(ctx context.Context, accountID string) (*model.AccessKeyList, error) {
	var list model.AccessKeyList
	err := c.query(ctx, model.AccountQuery{
		RequestType: requestViewAccessKeyList,
		Finality:    finalityFinal,
		AccountID:   accountID,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// ViewState gets contract storage of an account and returns the response body as is
func (c *NearClient) ViewState(ctx context.Context, accountID string) ([]byte, error) {
	body, status, err := c.post(ctx, model.ViewStateRequest{
		RequestType:  requestViewState,
		Finality:     finalityFinal,
		AccountID:    accountID,
		PrefixBase64: "",
	})
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, statusError(status, body)
	}
	return body, nil
}

// query calls the "query" method and decodes the result into out
func (c *NearClient) query(ctx context.Context, params interface{}, out interface{}) error {
	body, status, err := c.post(ctx, params)
	if err != nil {
		return err
	}

	var resp rpcResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if status != http.StatusOK {
			return statusError(status, body)
		}
		return fmt.Errorf("failed to decode rpc response: %w", err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	if status != http.StatusOK {
		return statusError(status, body)
	}

	if len(resp.Result) == 0 || string(resp.Result) == "null" {
		return errors.New("rpc response has no result")
	}

	var legacy legacyResult
	if err := json.Unmarshal(resp.Result, &legacy); err == nil && legacy.Error != "" {
		return &model.RPCError{Code: codeServerError, Message: legacy.Error}
	}

	if err := json.Unmarshal(resp.Result, out); err != nil {
		return fmt.Errorf("failed to decode rpc result: %w", err)
	}
	return nil
}

// post sends a JSON-RPC request and returns the raw body and HTTP status
func (c *NearClient) post(ctx context.Context, params interface{}) ([]byte, int, error) {
	buff, err := json.Marshal(rpcRequest{
		JSONRPC: jsonRPCVersion,
		ID:      requestID,
		Method:  methodQuery,
		Params:  params,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rpcURL, bytes.NewReader(buff))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to call %s: %w", c.rpcURL, err)
	}
	defer func() {
		if errClose := resp.Body.Close(); errClose != nil {
			c.logger.Warn("rpc: close body", zap.String("url", c.rpcURL), zap.Error(errClose))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

func statusError(status int, body []byte) error {
	return fmt.Errorf("rpc request failed: status %d: %s", status, strings.TrimSpace(string(body)))
}

// IsAccountMissing checks if error indicates that the account doesn't exist
func IsAccountMissing(err error) bool {
	if err == nil {
		return false
	}

	var rpcErr *model.RPCError
	if errors.As(err, &rpcErr) {
		if rpcErr.Cause != nil && rpcErr.Cause.Name == causeUnknownAccount {
			return true
		}
		return strings.Contains(rpcErr.Message, accountMissingText) ||
			strings.Contains(rpcErr.DataString(), accountMissingText)
	}

	return strings.Contains(err.Error(), accountMissingText)
}
