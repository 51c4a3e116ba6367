// Package jsonrpc models JSON-RPC 2.0 messages: correlation identifiers,
// immutable requests and responses, deferred-validation builders, and the
// parse/validate pipeline that turns raw text into a message or a
// classified failure. It covers message shape only; transports, batching,
// and connection handling live elsewhere.
package jsonrpc

import (
	"fmt"

	"mcpist/jsonwire/pkg/jsonval"
)

// Version is the protocol version string carried by well-formed messages.
const Version = "2.0"

// JSON-RPC 2.0 standard error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Server-defined error code range (-32099 ... -32000). Application codes
// outside the reserved ranges are free-form.
const (
	ServerErrorMin = -32099
	ServerErrorMax = -32000
)

// Error is a JSON-RPC 2.0 error member: an application-level outcome
// carried inside a response. Constructing one never aborts parsing.
type Error struct {
	Code    int64
	Message string
	Data    jsonval.Value // nil when absent
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewError builds an error member without data.
func NewError(code int64, message string) *Error {
	return &Error{Code: code, Message: message}
}
