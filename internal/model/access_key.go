package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const permissionFullAccess = "FullAccess"

// AccessKeyList represents the result of a view_access_key_list query
type AccessKeyList struct {
	Keys        []AccessKeyInfo `json:"keys"`
	BlockHeight uint64          `json:"block_height"`
	BlockHash   string          `json:"block_hash"`
}

// AccessKeyInfo is a single key of an account
type AccessKeyInfo struct {
	PublicKey string    `json:"public_key"`
	AccessKey AccessKey `json:"access_key"`
}

// AccessKey holds the nonce and permission of a key
type AccessKey struct {
	Nonce      uint64     `json:"nonce"`
	Permission Permission `json:"permission"`
}

// FunctionCallPermission restricts a key to calls on a single contract
type FunctionCallPermission struct {
	Allowance   *string  `json:"allowance"` // yoctoNEAR, nil means unlimited
	ReceiverID  string   `json:"receiver_id"`
	MethodNames []string `json:"method_names"`
}

// Permission is either "FullAccess" or a FunctionCall object on the wire
type Permission struct {
	FullAccess   bool
	FunctionCall *FunctionCallPermission
}

// IsFullAccess reports whether the key can sign any transaction
func (p Permission) IsFullAccess() bool {
	return p.FullAccess
}

func (p Permission) MarshalJSON() ([]byte, error) {
	if p.FullAccess {
		return json.Marshal(permissionFullAccess)
	}
	return json.Marshal(struct {
		FunctionCall *FunctionCallPermission `json:"FunctionCall"`
	}{p.FunctionCall})
}

func (p *Permission) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s != permissionFullAccess {
			return fmt.Errorf("unknown access key permission %q", s)
		}
		*p = Permission{FullAccess: true}
		return nil
	}

	var obj struct {
		FunctionCall *FunctionCallPermission `json:"FunctionCall"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.FunctionCall == nil {
		return fmt.Errorf("unknown access key permission %s", string(data))
	}
	*p = Permission{FunctionCall: obj.FunctionCall}
	return nil
}
