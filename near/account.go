package near

import (
	"regexp"

	"github.com/AlexZinkM/near-credentials/internal/model"
)

const (
	minAccountIDLen = 2
	maxAccountIDLen = 64

	// NoContractCodeHash is the code hash of an account without a contract (base58 of 32 zero bytes)
	NoContractCodeHash = "11111111111111111111111111111111"

	codeHashPrefixLen = 6
)

var accountIDPattern = regexp.MustCompile(`^(([a-z\d]+[\-_])*[a-z\d]+\.)*([a-z\d]+[\-_])*[a-z\d]+$`)

// AccountState is the on-chain state of an account
type AccountState = model.AccountState

// ValidateAccountID checks an account id against the chain naming rules.
// Implicit accounts (64 lowercase hex characters) pass as well.
func ValidateAccountID(accountID string) error {
	if len(accountID) < minAccountIDLen {
		return &InvalidAccountIDError{AccountID: accountID, Reason: "too short"}
	}
	if len(accountID) > maxAccountIDLen {
		return &InvalidAccountIDError{AccountID: accountID, Reason: "too long"}
	}
	if !accountIDPattern.MatchString(accountID) {
		return &InvalidAccountIDError{
			AccountID: accountID,
			Reason:    "must be lowercase letters and digits separated by single '-', '_' or '.'",
		}
	}
	return nil
}

// HasDeployedCode returns the first 6 characters of the code hash when the account has a contract.
// ok is false for the no-contract sentinel hash.
func HasDeployedCode(state *AccountState) (prefix string, ok bool) {
	if state == nil || state.CodeHash == "" || state.CodeHash == NoContractCodeHash {
		return "", false
	}
	if len(state.CodeHash) <= codeHashPrefixLen {
		return state.CodeHash, true
	}
	return state.CodeHash[:codeHashPrefixLen], true
}
