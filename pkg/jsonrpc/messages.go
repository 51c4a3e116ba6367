package jsonrpc

import "mcpist/jsonwire/pkg/jsonval"

// Request is an immutable JSON-RPC 2.0 request. Instances are created by
// the builder or the parse pipeline only.
type Request struct {
	version string
	id      ID
	method  string
	params  jsonval.Value // nil when absent; Array or Object otherwise
}

func (r *Request) Version() string { return r.version }
func (r *Request) ID() ID          { return r.id }
func (r *Request) Method() string  { return r.method }

// Params returns the params member and whether it is present.
func (r *Request) Params() (jsonval.Value, bool) {
	return r.params, r.params != nil
}

// IsNotification reports whether the id field is absent.
func (r *Request) IsNotification() bool { return r.id.IsUndefined() }

// Response is an immutable JSON-RPC 2.0 response. Exactly one of the
// result and error members is set.
type Response struct {
	version string
	id      ID
	result  jsonval.Value
	err     *Error
}

func (r *Response) Version() string { return r.version }
func (r *Response) ID() ID          { return r.id }

// Result returns the result member and whether the response is a success.
func (r *Response) Result() (jsonval.Value, bool) {
	if r.err != nil {
		return nil, false
	}
	return r.result, true
}

// Err returns the error member, nil for a success response.
func (r *Response) Err() *Error { return r.err }
