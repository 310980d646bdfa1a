package near

import (
	"path/filepath"

	"github.com/AlexZinkM/near-credentials/internal/crypto"
	"github.com/AlexZinkM/near-credentials/internal/model"

	"github.com/go-git/go-billy/v5/osfs"
)

// KeyPair is a decoded Ed25519 signing key pair
type KeyPair = model.KeyPair

// LoadPrivateKey returns the private_key field of a key file in the store
func (s *Store) LoadPrivateKey(path string) (string, error) {
	keyFile, err := crypto.ReadKeyFile(s.fs, path)
	if err != nil {
		if notFound(err) {
			return "", &NotFoundError{Path: path, Err: err}
		}
		return "", &MalformedKeyFileError{Path: path, Err: err}
	}
	return keyFile.PrivateKey, nil
}

// KeyPairFromFile decodes the key pair stored in a key file
func (s *Store) KeyPairFromFile(path string) (*KeyPair, error) {
	privateKey, err := s.LoadPrivateKey(path)
	if err != nil {
		return nil, err
	}
	return DerivePublicKey(privateKey)
}

// PublicKeyFromFile returns the "ed25519:<base58>" public key of a key file
func (s *Store) PublicKeyFromFile(path string) (string, error) {
	keyPair, err := s.KeyPairFromFile(path)
	if err != nil {
		return "", err
	}
	return keyPair.PublicKey, nil
}

// DerivePublicKey decodes an "ed25519:<base58>" secret key into its public key and canonical secret
func DerivePublicKey(privateKey string) (*KeyPair, error) {
	keyPair, err := crypto.KeyPairFromString(privateKey)
	if err != nil {
		return nil, &InvalidKeyFormatError{Err: err}
	}
	return keyPair, nil
}

// PublicKeyFromPrivate returns the "ed25519:<base58>" public key of a secret key
func PublicKeyFromPrivate(privateKey string) (string, error) {
	keyPair, err := DerivePublicKey(privateKey)
	if err != nil {
		return "", err
	}
	return keyPair.PublicKey, nil
}

// LoadPrivateKey reads the private_key field of a key file on the OS filesystem
func LoadPrivateKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &NotFoundError{Path: path, Err: err}
	}
	return osStore().LoadPrivateKey(abs)
}

// PublicKeyFromFile returns the public key of a key file on the OS filesystem
func PublicKeyFromFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &NotFoundError{Path: path, Err: err}
	}
	return osStore().PublicKeyFromFile(abs)
}

// osStore serves single-file reads by absolute path
func osStore() *Store {
	root := string(filepath.Separator)
	return &Store{fs: osfs.New(root), root: root}
}
