package near

import (
	"context"
	"fmt"
	"net/http"

	"github.com/AlexZinkM/near-credentials/internal/client"
	"github.com/AlexZinkM/near-credentials/internal/common"
	"github.com/AlexZinkM/near-credentials/internal/model"

	"go.uber.org/zap"
)

const (
	opViewAccount       = "view_account"
	opViewAccessKeyList = "view_access_key_list"
	opViewState         = "view_state"
)

// AccessKeyInfo is an access key of an account with its permission
type AccessKeyInfo = model.AccessKeyInfo

// accountRPC is the subset of node calls the client needs
type accountRPC interface {
	ViewAccount(ctx context.Context, accountID string) (*model.AccountState, error)
	ViewAccessKeyList(ctx context.Context, accountID string) (*model.AccessKeyList, error)
	ViewState(ctx context.Context, accountID string) ([]byte, error)
}

// Client queries accounts of one network. It holds no mutable state and is safe for concurrent use.
type Client struct {
	network string
	rpc     accountRPC
	logger  *zap.Logger
}

type clientOptions struct {
	logger     *zap.Logger
	httpClient *http.Client
}

// Option configures a Client
type Option func(*clientOptions)

// WithLogger sets the logger used for swallowed errors. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithHTTPClient replaces the HTTP client; NetworkConfig.Timeout is then ignored
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = httpClient }
}

// NewClient creates a client for the node described by cfg
func NewClient(cfg *NetworkConfig, opts ...Option) (*Client, error) {
	if cfg == nil || cfg.NodeURL == "" {
		return nil, &ConfigError{Message: "missing node url"}
	}

	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	logger := o.logger.With(zap.String("network", cfg.NetworkID))

	return &Client{
		network: cfg.NetworkID,
		rpc:     client.NewNearClient(cfg.NodeURL, o.httpClient, cfg.Timeout, logger),
		logger:  logger,
	}, nil
}

// NewClientFromProvider creates a client for a network known to provider
func NewClientFromProvider(provider Provider, network string, opts ...Option) (*Client, error) {
	if provider == nil {
		return nil, &ConfigError{Message: "missing network config provider"}
	}
	cfg, err := provider.NetworkConfig(network)
	if err != nil {
		return nil, err
	}
	return NewClient(cfg, opts...)
}

// NewClientFromEnv creates a client for the network selected by NEAR_ENV
func NewClientFromEnv(opts ...Option) (*Client, error) {
	env, err := LoadEnv()
	if err != nil {
		return nil, err
	}
	return NewClientFromProvider(env, env.Network, opts...)
}

// Network returns the network id the client talks to
func (c *Client) Network() string {
	return c.network
}

// FetchState gets the account state with the balance formatted in NEAR
func (c *Client) FetchState(ctx context.Context, accountID string) (*AccountState, error) {
	state, err := c.rpc.ViewAccount(ctx, accountID)
	if err != nil {
		return nil, &RemoteError{Op: opViewAccount, AccountID: accountID, Err: err}
	}

	formatted, err := common.FormatNearAmount(state.Amount)
	if err != nil {
		return nil, &RemoteError{Op: opViewAccount, AccountID: accountID, Err: fmt.Errorf("invalid amount: %w", err)}
	}
	state.FormattedAmount = formatted

	return state, nil
}

// FetchAccessKeys gets all access keys of an account
func (c *Client) FetchAccessKeys(ctx context.Context, accountID string) ([]AccessKeyInfo, error) {
	list, err := c.rpc.ViewAccessKeyList(ctx, accountID)
	if err != nil {
		return nil, &RemoteError{Op: opViewAccessKeyList, AccountID: accountID, Err: err}
	}
	if list.Keys == nil {
		return []AccessKeyInfo{}, nil
	}
	return list.Keys, nil
}

// FetchStorage gets the contract storage of an account as the raw RPC response body.
// A missing account yields an empty JSON object.
func (c *Client) FetchStorage(ctx context.Context, accountID string) ([]byte, error) {
	check := c.CheckAccount(ctx, accountID)
	switch check.Status {
	case AccountMissing:
		return []byte("{}"), nil
	case AccountCheckFailed:
		return nil, check.Err
	}

	body, err := c.rpc.ViewState(ctx, accountID)
	if err != nil {
		return nil, &RemoteError{Op: opViewState, AccountID: accountID, Err: err}
	}
	return body, nil
}
