package near

import (
	"errors"
	"fmt"

	"github.com/AlexZinkM/near-credentials/internal/client"
)

// NotFoundError is an error when a credential store root or key file does not exist or cannot be accessed
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// IsNotFoundError checks if error is NotFoundError
func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ConfigError is an error when required configuration is missing or invalid
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsConfigError checks if error is ConfigError
func IsConfigError(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}

// MalformedKeyFileError is an error when a key file is not valid JSON or lacks private_key
type MalformedKeyFileError struct {
	Path string
	Err  error
}

func (e *MalformedKeyFileError) Error() string {
	return fmt.Sprintf("malformed key file %s: %v", e.Path, e.Err)
}

func (e *MalformedKeyFileError) Unwrap() error { return e.Err }

// IsMalformedKeyFileError checks if error is MalformedKeyFileError
func IsMalformedKeyFileError(err error) bool {
	var target *MalformedKeyFileError
	return errors.As(err, &target)
}

// InvalidKeyFormatError is an error when a key string cannot be decoded
type InvalidKeyFormatError struct {
	Err error
}

func (e *InvalidKeyFormatError) Error() string {
	return fmt.Sprintf("invalid key format: %v", e.Err)
}

func (e *InvalidKeyFormatError) Unwrap() error { return e.Err }

// IsInvalidKeyFormatError checks if error is InvalidKeyFormatError
func IsInvalidKeyFormatError(err error) bool {
	var target *InvalidKeyFormatError
	return errors.As(err, &target)
}

// InvalidAccountIDError is an error when an account id breaks the naming rules
type InvalidAccountIDError struct {
	AccountID string
	Reason    string
}

func (e *InvalidAccountIDError) Error() string {
	return fmt.Sprintf("invalid account id %q: %s", e.AccountID, e.Reason)
}

// IsInvalidAccountIDError checks if error is InvalidAccountIDError
func IsInvalidAccountIDError(err error) bool {
	var target *InvalidAccountIDError
	return errors.As(err, &target)
}

// RemoteError is an error returned by the node or the transport to it
type RemoteError struct {
	Op        string // e.g. "view_account"
	AccountID string
	Err       error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.AccountID, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// AccountMissing reports whether the node answered that the account does not exist
func (e *RemoteError) AccountMissing() bool {
	return client.IsAccountMissing(e.Err)
}

// IsRemoteError checks if error is RemoteError
func IsRemoteError(err error) bool {
	var target *RemoteError
	return errors.As(err, &target)
}

// IsAccountMissing checks if error is a RemoteError for an account that does not exist
func IsAccountMissing(err error) bool {
	var target *RemoteError
	return errors.As(err, &target) && target.AccountMissing()
}
