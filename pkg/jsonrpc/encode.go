package jsonrpc

import (
	"mcpist/jsonwire/pkg/jsonstream"
	"mcpist/jsonwire/pkg/jsonval"
)

// EncodeRequest renders a request in compact wire form. An undefined id
// omits the member, making the text a notification.
func EncodeRequest(r *Request) ([]byte, error) {
	fields := []jsonval.Field{
		{Key: "jsonrpc", Value: jsonval.String(r.version)},
		{Key: "method", Value: jsonval.String(r.method)},
	}
	if r.params != nil {
		fields = append(fields, jsonval.Field{Key: "params", Value: r.params})
	}
	if v, ok := idValue(r.id); ok {
		fields = append(fields, jsonval.Field{Key: "id", Value: v})
	}
	return jsonstream.Serialize(jsonval.NewObject(fields...), "")
}

// EncodeResponse renders a response in compact wire form.
func EncodeResponse(r *Response) ([]byte, error) {
	version := r.version
	if version == "" {
		version = Version
	}
	fields := []jsonval.Field{
		{Key: "jsonrpc", Value: jsonval.String(version)},
	}
	if v, ok := idValue(r.id); ok {
		fields = append(fields, jsonval.Field{Key: "id", Value: v})
	} else {
		fields = append(fields, jsonval.Field{Key: "id", Value: jsonval.Null()})
	}
	if r.err != nil {
		fields = append(fields, jsonval.Field{Key: "error", Value: errorValue(r.err)})
	} else {
		result := r.result
		if result == nil {
			result = jsonval.Null()
		}
		fields = append(fields, jsonval.Field{Key: "result", Value: result})
	}
	return jsonstream.Serialize(jsonval.NewObject(fields...), "")
}

func errorValue(e *Error) jsonval.Value {
	fields := []jsonval.Field{
		{Key: "code", Value: jsonval.Int64Number(e.Code)},
		{Key: "message", Value: jsonval.String(e.Message)},
	}
	if e.Data != nil {
		fields = append(fields, jsonval.Field{Key: "data", Value: e.Data})
	}
	return jsonval.NewObject(fields...)
}

func idValue(id ID) (jsonval.Value, bool) {
	switch {
	case id.IsNull():
		return jsonval.Null(), true
	case id.IsString():
		s, _ := id.StringValue()
		return jsonval.String(s), true
	case id.IsNumber():
		n, _ := id.NumberValue()
		return n, true
	default:
		return nil, false
	}
}
