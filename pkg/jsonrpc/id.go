package jsonrpc

import (
	"fmt"

	"github.com/google/uuid"

	"mcpist/jsonwire/pkg/jsonval"
)

type idKind uint8

const (
	idUndefined idKind = iota
	idNull
	idString
	idNumber
)

// ID is the correlation identifier of a request or response. It is one of
// four mutually exclusive variants: undefined (the id field is absent,
// which makes a request a notification), null (the field is explicitly
// JSON null), a string, or a number with exact decimal text. The zero
// value is undefined.
type ID struct {
	kind idKind
	str  string
	num  jsonval.Number
}

// StringID returns a string identifier.
func StringID(s string) ID { return ID{kind: idString, str: s} }

// NumberID returns a numeric identifier with exact decimal text.
func NumberID(n jsonval.Number) ID { return ID{kind: idNumber, num: n} }

// Int64ID returns a numeric identifier for i.
func Int64ID(i int64) ID { return NumberID(jsonval.Int64Number(i)) }

// NullID returns the explicit-null identifier.
func NullID() ID { return ID{kind: idNull} }

// RandomID returns a fresh string identifier built from a random UUID.
func RandomID() ID { return StringID(uuid.NewString()) }

func (id ID) IsUndefined() bool { return id.kind == idUndefined }
func (id ID) IsNull() bool      { return id.kind == idNull }
func (id ID) IsString() bool    { return id.kind == idString }
func (id ID) IsNumber() bool    { return id.kind == idNumber }

// LookupError reports an identifier accessor applied to the wrong variant.
type LookupError struct {
	Want string
	Got  string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("id is %s, not %s", e.Got, e.Want)
}

// StringValue returns the string payload. It fails with a *LookupError
// unless IsString holds.
func (id ID) StringValue() (string, error) {
	if id.kind != idString {
		return "", &LookupError{Want: "a string", Got: id.kindName()}
	}
	return id.str, nil
}

// NumberValue returns the numeric payload. It fails with a *LookupError
// unless IsNumber holds.
func (id ID) NumberValue() (jsonval.Number, error) {
	if id.kind != idNumber {
		return jsonval.Number{}, &LookupError{Want: "a number", Got: id.kindName()}
	}
	return id.num, nil
}

// Equal reports whether two identifiers correlate: same variant, and equal
// payloads (numbers compare by decimal value).
func (id ID) Equal(other ID) bool {
	if id.kind != other.kind {
		return false
	}
	switch id.kind {
	case idString:
		return id.str == other.str
	case idNumber:
		return id.num.Decimal().Equal(other.num.Decimal())
	default:
		return true
	}
}

// String renders the identifier for logs and error messages.
func (id ID) String() string {
	switch id.kind {
	case idNull:
		return "null"
	case idString:
		return fmt.Sprintf("%q", id.str)
	case idNumber:
		return id.num.Text()
	default:
		return "<undefined>"
	}
}

func (id ID) kindName() string {
	switch id.kind {
	case idNull:
		return "null"
	case idString:
		return "a string"
	case idNumber:
		return "a number"
	default:
		return "undefined"
	}
}
