package model

// KeyFile represents a <accountId>.json credential file
type KeyFile struct {
	AccountID  string `json:"account_id,omitempty"`
	PublicKey  string `json:"public_key,omitempty"`
	PrivateKey string `json:"private_key"` // "ed25519:<base58>"
}

// KeyPair is a decoded signing key pair
type KeyPair struct {
	PublicKey string `json:"publicKey"` // "ed25519:<base58>"
	SecretKey string `json:"secretKey"` // base58 of the 64-byte extended secret key
}
