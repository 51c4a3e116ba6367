package jsonrpc

import (
	"fmt"

	"mcpist/jsonwire/pkg/jsonstream"
	"mcpist/jsonwire/pkg/jsonval"
)

// ProtocolError classifies a parse pipeline failure: Code is ParseError for
// text that never formed a JSON value (the syntax cause is wrapped), and
// InvalidRequest for well-formed JSON with the wrong protocol shape. The
// pipeline performs no recovery; answering with a wire-level error stays
// the caller's job, via RPCError.
type ProtocolError struct {
	Code     int64
	Message  string
	response bool
	cause    error
}

func (e *ProtocolError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("jsonrpc: %s: %v", e.Message, e.cause)
	}
	return "jsonrpc: " + e.Message
}

func (e *ProtocolError) Unwrap() error { return e.cause }

// IsInvalidResponse reports a response-side shape violation. JSON-RPC
// reserves no wire code for invalid responses, so these carry the
// InvalidRequest code but classify separately.
func (e *ProtocolError) IsInvalidResponse() bool { return e.response }

// RPCError converts the failure to a wire error member.
func (e *ProtocolError) RPCError() *Error {
	return &Error{Code: e.Code, Message: e.Message}
}

func parseFailure(err error) *ProtocolError {
	return &ProtocolError{Code: ParseError, Message: "parse error", cause: err}
}

func invalidRequest(format string, args ...any) *ProtocolError {
	return &ProtocolError{Code: InvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func invalidResponse(format string, args ...any) *ProtocolError {
	return &ProtocolError{Code: InvalidRequest, Message: fmt.Sprintf(format, args...), response: true}
}

// ParseRequest turns raw text into a validated request. Failures are
// *ProtocolError: syntax failures carry the ParseError code and wrap the
// underlying cause, shape violations carry InvalidRequest and name the
// violated constraint. The jsonrpc member is checked for string type only;
// its content is not compared against a literal.
func ParseRequest(data []byte) (*Request, error) {
	root, err := jsonstream.ParseBytes(data)
	if err != nil {
		return nil, parseFailure(err)
	}
	obj, err := jsonval.AsObject(root)
	if err != nil {
		return nil, invalidRequest("request must be an object, got %s", root.Kind())
	}

	vv, ok := obj.Get("jsonrpc")
	if !ok {
		return nil, invalidRequest("missing jsonrpc member")
	}
	version, err := jsonval.AsString(vv)
	if err != nil {
		return nil, invalidRequest("jsonrpc member must be a string, got %s", vv.Kind())
	}

	mv, ok := obj.Get("method")
	if !ok {
		return nil, invalidRequest("missing method member")
	}
	method, err := jsonval.AsString(mv)
	if err != nil {
		return nil, invalidRequest("method member must be a string, got %s", mv.Kind())
	}

	var params jsonval.Value
	if pv, ok := obj.Get("params"); ok {
		if k := pv.Kind(); k != jsonval.KindArray && k != jsonval.KindObject {
			return nil, invalidRequest("params member must be an object or array, got %s", k)
		}
		params = pv
	}

	id, perr := idMember(obj)
	if perr != nil {
		return nil, perr
	}

	return &Request{version: version, id: id, method: method, params: params}, nil
}

// ParseResponse turns raw text into a validated response: the root must be
// an object carrying exactly one of the result and error members, and an
// error member must itself be an object with an integral code and a string
// message, plus optional data.
func ParseResponse(data []byte) (*Response, error) {
	root, err := jsonstream.ParseBytes(data)
	if err != nil {
		return nil, parseFailure(err)
	}
	obj, err := jsonval.AsObject(root)
	if err != nil {
		return nil, invalidResponse("response must be an object, got %s", root.Kind())
	}

	// The version member is read when present but not required; shape
	// validation covers id and the result/error pair.
	var version string
	if vv, ok := obj.Get("jsonrpc"); ok {
		if version, err = jsonval.AsString(vv); err != nil {
			return nil, invalidResponse("jsonrpc member must be a string, got %s", vv.Kind())
		}
	}

	id, perr := idMember(obj)
	if perr != nil {
		return nil, &ProtocolError{Code: perr.Code, Message: perr.Message, response: true, cause: perr.cause}
	}

	result, hasResult := obj.Get("result")
	ev, hasError := obj.Get("error")
	switch {
	case hasResult && hasError:
		return nil, invalidResponse("result and error are mutually exclusive")
	case !hasResult && !hasError:
		return nil, invalidResponse("one of result or error is required")
	case hasResult:
		return &Response{version: version, id: id, result: result}, nil
	}

	rpcErr, perr := errorMember(ev)
	if perr != nil {
		return nil, perr
	}
	return &Response{version: version, id: id, err: rpcErr}, nil
}

// idMember builds the identifier from the optional id member: absent means
// undefined, JSON null means nullified, strings and numbers carry through.
func idMember(obj jsonval.ObjectView) (ID, *ProtocolError) {
	v, ok := obj.Get("id")
	if !ok {
		return ID{}, nil
	}
	switch v.Kind() {
	case jsonval.KindNull:
		return NullID(), nil
	case jsonval.KindString:
		s, _ := jsonval.AsString(v)
		return StringID(s), nil
	case jsonval.KindNumber:
		n, _ := jsonval.AsNumber(v)
		return NumberID(n), nil
	default:
		return ID{}, invalidRequest("id member must be a string, number, or null, got %s", v.Kind())
	}
}

func errorMember(v jsonval.Value) (*Error, *ProtocolError) {
	obj, err := jsonval.AsObject(v)
	if err != nil {
		return nil, invalidResponse("error member must be an object, got %s", v.Kind())
	}
	cv, ok := obj.Get("code")
	if !ok {
		return nil, invalidResponse("error member is missing code")
	}
	cn, err := jsonval.AsNumber(cv)
	if err != nil {
		return nil, invalidResponse("error code must be a number, got %s", cv.Kind())
	}
	code, err := cn.Int64()
	if err != nil {
		return nil, invalidResponse("error code must be an integer, got %s", cn.Text())
	}
	mv, ok := obj.Get("message")
	if !ok {
		return nil, invalidResponse("error member is missing message")
	}
	message, err := jsonval.AsString(mv)
	if err != nil {
		return nil, invalidResponse("error message must be a string, got %s", mv.Kind())
	}
	e := &Error{Code: code, Message: message}
	if dv, ok := obj.Get("data"); ok {
		e.Data = dv
	}
	return e, nil
}
