package model

// AccountState represents the result of a view_account query
type AccountState struct {
	Amount        string `json:"amount"` // yoctoNEAR
	Locked        string `json:"locked"` // yoctoNEAR staked
	CodeHash      string `json:"code_hash"`
	StorageUsage  uint64 `json:"storage_usage"`
	StoragePaidAt uint64 `json:"storage_paid_at"`
	BlockHeight   uint64 `json:"block_height"`
	BlockHash     string `json:"block_hash"`

	// FormattedAmount is Amount in NEAR, filled in by the library
	FormattedAmount string `json:"formattedAmount,omitempty"`
}

// ViewStateRequest represents params of a view_state query
type ViewStateRequest struct {
	RequestType  string `json:"request_type"`
	Finality     string `json:"finality"`
	AccountID    string `json:"account_id"`
	PrefixBase64 string `json:"prefix_base64"`
}

// AccountQuery represents params of view_account and view_access_key_list queries
type AccountQuery struct {
	RequestType string `json:"request_type"`
	Finality    string `json:"finality"`
	AccountID   string `json:"account_id"`
}
