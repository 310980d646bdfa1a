package crypto

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/AlexZinkM/near-credentials/internal/model"

	"github.com/gagliardetto/solana-go"
)

const (
	KeyTypeED25519 = "ed25519"
	keyTypeSep     = ":"
)

var ErrKeyMismatch = errors.New("public half does not match secret seed")

// DecodeSecretKey decodes "ed25519:<base58>" (prefix optional) into a 64-byte extended secret key.
// Caller should zero the returned key after use.
func DecodeSecretKey(encoded string) (solana.PrivateKey, error) {
	data := strings.TrimSpace(encoded)
	if keyType, rest, ok := strings.Cut(data, keyTypeSep); ok {
		if !strings.EqualFold(keyType, KeyTypeED25519) {
			return nil, fmt.Errorf("unsupported key type %q", keyType)
		}
		data = rest
	}
	if data == "" {
		return nil, errors.New("empty key")
	}

	key, err := solana.PrivateKeyFromBase58(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base58 key: %w", err)
	}

	// Full 64-byte key: 32-byte seed followed by the public key
	if len(key) != ed25519.PrivateKeySize {
		clear(key)
		return nil, fmt.Errorf("invalid secret key length %d, expected %d bytes", len(key), ed25519.PrivateKeySize)
	}

	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	defer clear(derived)
	if !bytes.Equal(derived[ed25519.SeedSize:], key[ed25519.SeedSize:]) {
		clear(key)
		return nil, ErrKeyMismatch
	}

	return key, nil
}

// KeyPairFromString decodes an encoded secret key and returns its public key and canonical secret
func KeyPairFromString(encoded string) (*model.KeyPair, error) {
	key, err := DecodeSecretKey(encoded)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	return &model.KeyPair{
		PublicKey: EncodePublicKey(key.PublicKey()),
		SecretKey: key.String(),
	}, nil
}

// EncodePublicKey returns the "ed25519:<base58>" form of a public key
func EncodePublicKey(pub solana.PublicKey) string {
	return KeyTypeED25519 + keyTypeSep + pub.String()
}
