package near

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	aliceAccount = `{"amount":"12500000000000000000000000","locked":"0","code_hash":"11111111111111111111111111111111","storage_usage":182,"storage_paid_at":0,"block_height":10,"block_hash":"h"}`
	appAccount   = `{"amount":"1000000000000000000000000","locked":"0","code_hash":"E8jZ1giWcVrps8PcV75ATauu6gFRkcwjNtKp7NKmipZG","storage_usage":9000,"storage_paid_at":0,"block_height":10,"block_hash":"h"}`
	appState     = `{"jsonrpc":"2.0","id":"dontcare","result":{"values":[{"key":"U1RBVEU=","value":"AQ=="}],"block_height":10}}`
	appKeys      = `{"keys":[{"public_key":"ed25519:full","access_key":{"nonce":1,"permission":"FullAccess"}}],"block_height":10,"block_hash":"h"}`
)

// newFakeNode serves alice.testnet and app.testnet; broken.testnet answers with a server error, anything else is unknown
func newFakeNode(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Params struct {
				RequestType string `json:"request_type"`
				AccountID   string `json:"account_id"`
			} `json:"params"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}

		result := func(body string) {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":"dontcare","result":%s}`, body)
		}

		account, params := req.Params.AccountID, req.Params
		switch {
		case account == "broken.testnet":
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, "internal error")
		case params.RequestType == "view_account" && account == "alice.testnet":
			result(aliceAccount)
		case params.RequestType == "view_account" && account == "app.testnet":
			result(appAccount)
		case params.RequestType == "view_access_key_list" && account == "app.testnet":
			result(appKeys)
		case params.RequestType == "view_state" && account == "app.testnet":
			fmt.Fprint(w, appState)
		default:
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":"dontcare","error":{"name":"HANDLER_ERROR","cause":{"name":"UNKNOWN_ACCOUNT","info":{}},"code":-32000,"message":"Server error","data":"account %s does not exist while viewing"}}`, account)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	srv := newFakeNode(t)
	c, err := NewClient(&NetworkConfig{NetworkID: "testnet", NodeURL: srv.URL}, opts...)
	require.NoError(t, err)
	return c
}

func TestFetchState(t *testing.T) {
	c := newTestClient(t)

	state, err := c.FetchState(context.Background(), "alice.testnet")
	require.NoError(t, err)
	assert.Equal(t, "12500000000000000000000000", state.Amount)
	assert.Equal(t, "12.5", state.FormattedAmount)
	assert.Equal(t, uint64(182), state.StorageUsage)

	_, hasCode := HasDeployedCode(state)
	assert.False(t, hasCode)

	state, err = c.FetchState(context.Background(), "app.testnet")
	require.NoError(t, err)
	prefix, hasCode := HasDeployedCode(state)
	assert.True(t, hasCode)
	assert.Equal(t, "E8jZ1g", prefix)
}

func TestFetchStateMissingAccount(t *testing.T) {
	c := newTestClient(t)

	_, err := c.FetchState(context.Background(), "ghost.testnet")
	require.Error(t, err)
	assert.True(t, IsRemoteError(err))
	assert.True(t, IsAccountMissing(err))
}

func TestFetchAccessKeys(t *testing.T) {
	c := newTestClient(t)

	keys, err := c.FetchAccessKeys(context.Background(), "app.testnet")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "ed25519:full", keys[0].PublicKey)
	assert.True(t, keys[0].AccessKey.Permission.IsFullAccess())

	_, err = c.FetchAccessKeys(context.Background(), "broken.testnet")
	assert.True(t, IsRemoteError(err))
	assert.False(t, IsAccountMissing(err))
}

func TestCheckAccount(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	check := c.CheckAccount(ctx, "alice.testnet")
	assert.Equal(t, AccountExists, check.Status)
	assert.True(t, check.Exists())
	require.NotNil(t, check.State)
	assert.NoError(t, check.Err)

	check = c.CheckAccount(ctx, "ghost.testnet")
	assert.Equal(t, AccountMissing, check.Status)
	assert.False(t, check.Exists())
	assert.NoError(t, check.Err)

	check = c.CheckAccount(ctx, "broken.testnet")
	assert.Equal(t, AccountCheckFailed, check.Status)
	assert.True(t, IsRemoteError(check.Err))

	check = c.CheckAccount(ctx, "NOT VALID")
	assert.Equal(t, AccountCheckFailed, check.Status)
	assert.True(t, IsInvalidAccountIDError(check.Err))
}

func TestIsValidLogsOnlyFailures(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := newTestClient(t, WithLogger(zap.New(core)))
	ctx := context.Background()

	assert.True(t, c.IsValid(ctx, "alice.testnet"))
	assert.False(t, c.IsValid(ctx, "ghost.testnet"))
	assert.Equal(t, 0, logs.Len())

	assert.False(t, c.IsValid(ctx, "broken.testnet"))
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "account check failed", entry.Message)
	assert.Equal(t, "broken.testnet", entry.ContextMap()["account"])
	assert.Equal(t, "testnet", entry.ContextMap()["network"])
}

func TestFetchStorage(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	body, err := c.FetchStorage(ctx, "app.testnet")
	require.NoError(t, err)
	assert.Equal(t, appState, string(body))

	body, err = c.FetchStorage(ctx, "ghost.testnet")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))

	_, err = c.FetchStorage(ctx, "broken.testnet")
	assert.True(t, IsRemoteError(err))
}

func TestAccountStatusString(t *testing.T) {
	assert.Equal(t, "exists", AccountExists.String())
	assert.Equal(t, "missing", AccountMissing.String())
	assert.Equal(t, "failed", AccountCheckFailed.String())
}

func TestNewClientRequiresNodeURL(t *testing.T) {
	_, err := NewClient(nil)
	assert.True(t, IsConfigError(err))

	_, err = NewClient(&NetworkConfig{NetworkID: "testnet"})
	assert.True(t, IsConfigError(err))

	_, err = NewClientFromProvider(nil, "testnet")
	assert.True(t, IsConfigError(err))
}
