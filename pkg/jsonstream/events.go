// Package jsonstream converts between JSON text and a sequence of
// structural events, single-pass and forward-only. The Parser turns text
// into events and can aggregate the rest of any open container into a
// jsonval.Value; the Generator is its dual, an explicitly sequenced writer
// that enforces the same nesting grammar.
package jsonstream

import "mcpist/jsonwire/pkg/jsonval"

// EventKind identifies a structural event.
type EventKind uint8

const (
	// EventValue carries a primitive value (null, boolean, number, string).
	EventValue EventKind = iota
	// EventFieldName carries an object member name. It is legal only inside
	// an object and is always followed by exactly one value or container.
	EventFieldName
	EventBeginObject
	EventEndObject
	EventBeginArray
	EventEndArray
)

func (k EventKind) String() string {
	switch k {
	case EventValue:
		return "value"
	case EventFieldName:
		return "field name"
	case EventBeginObject:
		return "begin object"
	case EventEndObject:
		return "end object"
	case EventBeginArray:
		return "begin array"
	case EventEndArray:
		return "end array"
	default:
		return "invalid"
	}
}

// Event is one step of a JSON document. Name is set for EventFieldName,
// Value for EventValue; Value is always a primitive.
type Event struct {
	Kind  EventKind
	Name  string
	Value jsonval.Value
}
