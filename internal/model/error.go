package model

import (
	"encoding/json"
	"fmt"
)

// RPCError is the error object of a JSON-RPC response
type RPCError struct {
	Name    string          `json:"name,omitempty"`
	Cause   *RPCErrorCause  `json:"cause,omitempty"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RPCErrorCause is the structured cause reported by the node
type RPCErrorCause struct {
	Name string          `json:"name"`
	Info json.RawMessage `json:"info,omitempty"`
}

func (e *RPCError) Error() string {
	msg := e.Message
	if data := e.DataString(); data != "" {
		msg += ": " + data
	}
	if e.Cause != nil && e.Cause.Name != "" {
		return fmt.Sprintf("rpc error %d (%s): %s", e.Code, e.Cause.Name, msg)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, msg)
}

// DataString returns Data as text; the node sends either a string or an object
func (e *RPCError) DataString() string {
	if len(e.Data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(e.Data, &s); err == nil {
		return s
	}
	return string(e.Data)
}
