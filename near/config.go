package near

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/AlexZinkM/near-credentials/internal/config"
)

// DefaultNetwork is used when NEAR_ENV is not set
const DefaultNetwork = config.DefaultNetwork

// NetworkConfig describes how to reach the node of one network
type NetworkConfig struct {
	NetworkID string
	NodeURL   string
	Timeout   time.Duration // zero means the client default
}

// Provider supplies network configuration. Host applications implement it to plug in their own settings.
type Provider interface {
	NetworkConfig(network string) (*NetworkConfig, error)
}

// ProviderFunc adapts a function to Provider
type ProviderFunc func(network string) (*NetworkConfig, error)

func (f ProviderFunc) NetworkConfig(network string) (*NetworkConfig, error) {
	return f(network)
}

// DefaultProvider returns the public near.org endpoints, or localhost:3030 for "local"
func DefaultProvider() Provider {
	return ProviderFunc(func(network string) (*NetworkConfig, error) {
		if network == "" {
			return nil, &ConfigError{Message: "missing network name"}
		}
		return &NetworkConfig{
			NetworkID: network,
			NodeURL:   config.NodeURL(network),
			Timeout:   config.DefaultTimeout,
		}, nil
	})
}

// fileNetwork is one entry of a network config file
type fileNetwork struct {
	NodeURL string `json:"node_url"`
	Timeout string `json:"timeout,omitempty"` // e.g. "10s"
}

type fileProvider map[string]*NetworkConfig

func (p fileProvider) NetworkConfig(network string) (*NetworkConfig, error) {
	cfg, ok := p[network]
	if !ok {
		return nil, &ConfigError{Message: fmt.Sprintf("network %q is not configured", network)}
	}
	out := *cfg
	return &out, nil
}

// FileProvider reads a JSON file that maps network names to node settings:
//
//	{"testnet": {"node_url": "https://rpc.testnet.near.org", "timeout": "10s"}}
func FileProvider(path string) (Provider, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Message: "failed to read network config " + path, Err: err}
	}

	var entries map[string]fileNetwork
	if err := json.Unmarshal(fileContent, &entries); err != nil {
		return nil, &ConfigError{Message: "failed to parse network config " + path, Err: err}
	}

	provider := make(fileProvider, len(entries))
	for network, entry := range entries {
		if entry.NodeURL == "" {
			return nil, &ConfigError{Message: fmt.Sprintf("network %q has no node_url", network)}
		}
		cfg := &NetworkConfig{NetworkID: network, NodeURL: entry.NodeURL}
		if entry.Timeout != "" {
			timeout, err := time.ParseDuration(entry.Timeout)
			if err != nil {
				return nil, &ConfigError{Message: fmt.Sprintf("network %q has invalid timeout", network), Err: err}
			}
			cfg.Timeout = timeout
		}
		provider[network] = cfg
	}

	return provider, nil
}

// Env is the configuration taken from NEAR_ENV, NEAR_RPC_URL, NEAR_RPC_TIMEOUT and NEAR_CREDENTIALS_DIR.
// It is also a Provider: the selected network may have its node URL overridden, other networks use the defaults.
type Env struct {
	Network        string
	RPCURL         string
	RPCTimeout     time.Duration
	CredentialsDir string
}

// LoadEnv reads configuration from environment variables
func LoadEnv() (*Env, error) {
	env, err := config.Load()
	if err != nil {
		return nil, &ConfigError{Message: "invalid environment", Err: err}
	}

	return &Env{
		Network:        env.Network,
		RPCURL:         env.RPCURL,
		RPCTimeout:     env.RPCTimeout,
		CredentialsDir: env.CredentialsDir,
	}, nil
}

// OpenStore opens the credential store named by NEAR_CREDENTIALS_DIR
func (e *Env) OpenStore() (*Store, error) {
	return OpenStore(e.CredentialsDir)
}

func (e *Env) NetworkConfig(network string) (*NetworkConfig, error) {
	cfg, err := DefaultProvider().NetworkConfig(network)
	if err != nil {
		return nil, err
	}
	if network == e.Network && e.RPCURL != "" {
		cfg.NodeURL = e.RPCURL
	}
	if e.RPCTimeout > 0 {
		cfg.Timeout = e.RPCTimeout
	}
	return cfg, nil
}
