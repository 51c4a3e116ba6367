package jsonstream

import (
	"bytes"
	"io"
	"strings"

	"mcpist/jsonwire/pkg/jsonval"
)

// Parse reads exactly one JSON value from r. Trailing non-whitespace is a
// *SyntacticError. Parse does not close r; pair NewParser with Close when
// the source must be released.
func Parse(r io.Reader) (jsonval.Value, error) {
	p := NewParser(r)
	v, err := p.ReadValue()
	if err != nil {
		return nil, err
	}
	if _, err := p.Next(); err != io.EOF {
		if err == nil {
			return nil, syntaxErr(p.off, "unexpected data after top-level value")
		}
		return nil, err
	}
	return v, nil
}

// ParseBytes parses a single JSON value from b.
func ParseBytes(b []byte) (jsonval.Value, error) {
	return Parse(bytes.NewReader(b))
}

// ParseString parses a single JSON value from s.
func ParseString(s string) (jsonval.Value, error) {
	return Parse(strings.NewReader(s))
}

// Serialize renders v as JSON text, compact when indent is empty and pretty
// otherwise. Round-trips preserve logical structure and number text, not
// whitespace.
func Serialize(v jsonval.Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	g := NewGenerator(&buf)
	if indent != "" {
		g.SetIndent(indent)
	}
	if err := g.Write(v); err != nil {
		return nil, err
	}
	if err := g.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeString is Serialize returning a string.
func SerializeString(v jsonval.Value, indent string) (string, error) {
	b, err := Serialize(v, indent)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
