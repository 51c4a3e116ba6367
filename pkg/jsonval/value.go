// Package jsonval models immutable JSON documents.
//
// A Value is one of the six JSON variants (null, boolean, number, string,
// array, object). Values are immutable after construction and safe to share
// across goroutines without synchronization. Numbers keep their exact decimal
// text so integral and decimal extraction never loses precision.
package jsonval

// Kind identifies the JSON variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is an immutable JSON value. The implementation set is closed: values
// are created through the package constructors or by parsing.
type Value interface {
	Kind() Kind
	isValue()
}

// ArrayView is the contract shared by plain arrays and array compositions.
// At returns an *IndexError for indexes outside [0, Len()).
type ArrayView interface {
	Value
	Len() int
	At(i int) (Value, error)
}

// ObjectView is the contract shared by plain objects and object overlays.
// Keys returns keys in their observable order; Get reports whether the key
// is present.
type ObjectView interface {
	Value
	Len() int
	Keys() []string
	Get(key string) (Value, bool)
}

type nullValue struct{}

func (nullValue) Kind() Kind { return KindNull }
func (nullValue) isValue()   {}

// Null returns the JSON null value.
func Null() Value { return nullValue{} }

type boolValue bool

func (boolValue) Kind() Kind { return KindBool }
func (boolValue) isValue()   {}

// Bool returns a JSON boolean.
func Bool(b bool) Value { return boolValue(b) }

type stringValue string

func (stringValue) Kind() Kind { return KindString }
func (stringValue) isValue()   {}

// String returns a JSON string.
func String(s string) Value { return stringValue(s) }

type arrayValue struct {
	items []Value
}

func (*arrayValue) Kind() Kind { return KindArray }
func (*arrayValue) isValue()   {}

func (a *arrayValue) Len() int { return len(a.items) }

func (a *arrayValue) At(i int) (Value, error) {
	if i < 0 || i >= len(a.items) {
		return nil, &IndexError{Index: i, Length: len(a.items)}
	}
	return a.items[i], nil
}

// NewArray returns a JSON array holding the given items in order.
// The items slice is copied.
func NewArray(items ...Value) ArrayView {
	a := &arrayValue{items: make([]Value, len(items))}
	copy(a.items, items)
	return a
}

// Field is a single object member.
type Field struct {
	Key   string
	Value Value
}

type objectValue struct {
	keys   []string
	fields map[string]Value
}

func (*objectValue) Kind() Kind { return KindObject }
func (*objectValue) isValue()   {}

func (o *objectValue) Len() int { return len(o.keys) }

func (o *objectValue) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

func (o *objectValue) Get(key string) (Value, bool) {
	v, ok := o.fields[key]
	return v, ok
}

// NewObject returns a JSON object holding the given members. Duplicate keys
// resolve last-write-wins while keeping the first-seen position in key order.
func NewObject(fields ...Field) ObjectView {
	o := &objectValue{fields: make(map[string]Value, len(fields))}
	for _, f := range fields {
		if _, seen := o.fields[f.Key]; !seen {
			o.keys = append(o.keys, f.Key)
		}
		o.fields[f.Key] = f.Value
	}
	return o
}

// AsString extracts the text of a JSON string.
func AsString(v Value) (string, error) {
	s, ok := v.(stringValue)
	if !ok {
		return "", &KindError{Want: KindString, Got: v.Kind()}
	}
	return string(s), nil
}

// AsBool extracts the value of a JSON boolean.
func AsBool(v Value) (bool, error) {
	b, ok := v.(boolValue)
	if !ok {
		return false, &KindError{Want: KindBool, Got: v.Kind()}
	}
	return bool(b), nil
}

// AsNumber extracts a JSON number.
func AsNumber(v Value) (Number, error) {
	n, ok := v.(Number)
	if !ok {
		return Number{}, &KindError{Want: KindNumber, Got: v.Kind()}
	}
	return n, nil
}

// AsArray extracts the array contract from an array value or composition.
func AsArray(v Value) (ArrayView, error) {
	a, ok := v.(ArrayView)
	if !ok || v.Kind() != KindArray {
		return nil, &KindError{Want: KindArray, Got: v.Kind()}
	}
	return a, nil
}

// AsObject extracts the object contract from an object value or overlay.
func AsObject(v Value) (ObjectView, error) {
	o, ok := v.(ObjectView)
	if !ok || v.Kind() != KindObject {
		return nil, &KindError{Want: KindObject, Got: v.Kind()}
	}
	return o, nil
}
