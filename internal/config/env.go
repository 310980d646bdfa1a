package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DefaultNetwork = "testnet"
	DefaultTimeout = 15 * time.Second
)

// Env contains the configuration read from environment variables.
// RPCURL, when set, overrides the node URL of the selected network only.
type Env struct {
	Network        string        `envconfig:"NEAR_ENV" default:"testnet"`
	RPCURL         string        `envconfig:"NEAR_RPC_URL"`
	RPCTimeout     time.Duration `envconfig:"NEAR_RPC_TIMEOUT" default:"15s"`
	CredentialsDir string        `envconfig:"NEAR_CREDENTIALS_DIR"`
}

// Load reads configuration from environment variables.
func Load() (*Env, error) {
	env := &Env{}
	if err := envconfig.Process("", env); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return env, nil
}

// NodeURL returns the public RPC endpoint for a network
func NodeURL(network string) string {
	if network == "local" {
		return "http://localhost:3030"
	}
	return fmt.Sprintf("https://rpc.%s.near.org", network)
}
