package jsonrpc

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"mcpist/jsonwire/pkg/jsonval"
)

// ValidationError enumerates every constraint a builder left unmet. Build
// returns it instead of a generic failure so each violation is observable.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid message: " + strings.Join(e.Violations, "; ")
}

// RequestBuilder accumulates request fields. Setters validate nothing;
// Build runs the whole checklist. Builders are single-writer accumulators
// and must not be shared across goroutines.
type RequestBuilder struct {
	version string
	id      ID
	method  string
	params  jsonval.Value
}

// NewRequest returns an empty request builder.
func NewRequest() *RequestBuilder { return &RequestBuilder{} }

func (b *RequestBuilder) Version(v string) *RequestBuilder {
	b.version = v
	return b
}

func (b *RequestBuilder) ID(id ID) *RequestBuilder {
	b.id = id
	return b
}

func (b *RequestBuilder) Method(m string) *RequestBuilder {
	b.method = m
	return b
}

func (b *RequestBuilder) Params(p jsonval.Value) *RequestBuilder {
	b.params = p
	return b
}

// Build yields the immutable request, or a *ValidationError listing every
// unmet constraint: version set, method set, and params (when set) of
// array or object type.
func (b *RequestBuilder) Build() (*Request, error) {
	var violations []string
	if b.version == "" {
		violations = append(violations, "version is not set")
	}
	if b.method == "" {
		violations = append(violations, "method is not set")
	}
	if b.params != nil {
		if k := b.params.Kind(); k != jsonval.KindArray && k != jsonval.KindObject {
			violations = append(violations, fmt.Sprintf("params must be an array or object, got %s", k))
		}
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return &Request{version: b.version, id: b.id, method: b.method, params: b.params}, nil
}

// ResponseBuilder accumulates response fields. Exactly one of the result
// and error members must be set by Build time.
type ResponseBuilder struct {
	version   string
	id        ID
	result    jsonval.Value
	resultSet bool
	rpcErr    *Error
	deferred  func() (jsonval.Value, error)
}

// NewResponse returns an empty response builder.
func NewResponse() *ResponseBuilder { return &ResponseBuilder{} }

func (b *ResponseBuilder) Version(v string) *ResponseBuilder {
	b.version = v
	return b
}

func (b *ResponseBuilder) ID(id ID) *ResponseBuilder {
	b.id = id
	return b
}

// Result sets the result member. A nil value stores JSON null.
func (b *ResponseBuilder) Result(v jsonval.Value) *ResponseBuilder {
	if v == nil {
		v = jsonval.Null()
	}
	b.result = v
	b.resultSet = true
	return b
}

// Error sets the error member.
func (b *ResponseBuilder) Error(e *Error) *ResponseBuilder {
	b.rpcErr = e
	return b
}

// ResultOrError defers the outcome to fn, run at Build time. When fn
// returns an *Error it becomes the error member; a nil error stores the
// result member; any other failure propagates out of Build instead of
// being coerced into a response field.
func (b *ResponseBuilder) ResultOrError(fn func() (jsonval.Value, error)) *ResponseBuilder {
	b.deferred = fn
	return b
}

// Build yields the immutable response, or a *ValidationError listing every
// unmet constraint: version set, and exactly one of result and error.
func (b *ResponseBuilder) Build() (*Response, error) {
	result, resultSet, rpcErr := b.result, b.resultSet, b.rpcErr
	if b.deferred != nil {
		v, err := b.deferred()
		switch {
		case err == nil:
			if v == nil {
				v = jsonval.Null()
			}
			result, resultSet = v, true
		default:
			var re *Error
			if !errors.As(err, &re) {
				return nil, errors.Wrap(err, "result computation")
			}
			rpcErr = re
		}
	}

	var violations []string
	if b.version == "" {
		violations = append(violations, "version is not set")
	}
	switch {
	case resultSet && rpcErr != nil:
		violations = append(violations, "result and error are mutually exclusive")
	case !resultSet && rpcErr == nil:
		violations = append(violations, "one of result or error is required")
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	if rpcErr != nil {
		return &Response{version: b.version, id: b.id, err: rpcErr}, nil
	}
	return &Response{version: b.version, id: b.id, result: result}, nil
}
