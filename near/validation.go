package near

import (
	"context"

	"go.uber.org/zap"
)

// AccountStatus is the outcome of an account existence check
type AccountStatus int

const (
	AccountCheckFailed AccountStatus = iota
	AccountExists
	AccountMissing
)

func (s AccountStatus) String() string {
	switch s {
	case AccountExists:
		return "exists"
	case AccountMissing:
		return "missing"
	default:
		return "failed"
	}
}

// AccountCheck is the typed result of CheckAccount.
// State is set when the account exists, Err when the check failed.
type AccountCheck struct {
	AccountID string
	Status    AccountStatus
	State     *AccountState
	Err       error
}

// Exists reports whether the account was found
func (c AccountCheck) Exists() bool {
	return c.Status == AccountExists
}

// CheckAccount tells an existing account from a missing one and from a failed lookup.
// Ids that break the naming rules fail without a network call.
func (c *Client) CheckAccount(ctx context.Context, accountID string) AccountCheck {
	if err := ValidateAccountID(accountID); err != nil {
		return AccountCheck{AccountID: accountID, Status: AccountCheckFailed, Err: err}
	}

	state, err := c.FetchState(ctx, accountID)
	switch {
	case err == nil:
		return AccountCheck{AccountID: accountID, Status: AccountExists, State: state}
	case IsAccountMissing(err):
		return AccountCheck{AccountID: accountID, Status: AccountMissing}
	default:
		return AccountCheck{AccountID: accountID, Status: AccountCheckFailed, Err: err}
	}
}

// IsValid reports whether the account exists. Failed checks are logged and reported as false;
// use CheckAccount to tell them apart.
func (c *Client) IsValid(ctx context.Context, accountID string) bool {
	check := c.CheckAccount(ctx, accountID)
	if check.Status == AccountCheckFailed {
		c.logger.Warn("account check failed", zap.String("account", accountID), zap.Error(check.Err))
	}
	return check.Exists()
}
