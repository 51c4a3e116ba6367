package jsonrpc

import (
	"errors"
	"testing"

	"mcpist/jsonwire/pkg/jsonval"
)

func TestIDVariantsAreExclusive(t *testing.T) {
	tests := []struct {
		name      string
		id        ID
		isString  bool
		isNumber  bool
		isNull    bool
		undefined bool
	}{
		{"string", StringID("abc"), true, false, false, false},
		{"number", Int64ID(123), false, true, false, false},
		{"null", NullID(), false, false, true, false},
		{"undefined", ID{}, false, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsString(); got != tt.isString {
				t.Errorf("IsString = %v, want %v", got, tt.isString)
			}
			if got := tt.id.IsNumber(); got != tt.isNumber {
				t.Errorf("IsNumber = %v, want %v", got, tt.isNumber)
			}
			if got := tt.id.IsNull(); got != tt.isNull {
				t.Errorf("IsNull = %v, want %v", got, tt.isNull)
			}
			if got := tt.id.IsUndefined(); got != tt.undefined {
				t.Errorf("IsUndefined = %v, want %v", got, tt.undefined)
			}
		})
	}
}

func TestIDAccessors(t *testing.T) {
	s := StringID("abc")
	if v, err := s.StringValue(); err != nil || v != "abc" {
		t.Errorf("StringValue = %q, %v", v, err)
	}
	if _, err := s.NumberValue(); err == nil {
		t.Error("NumberValue on a string id should fail")
	} else {
		var le *LookupError
		if !errors.As(err, &le) {
			t.Errorf("error = %v, want *LookupError", err)
		}
	}

	n := Int64ID(123)
	num, err := n.NumberValue()
	if err != nil {
		t.Fatalf("NumberValue: %v", err)
	}
	if i, _ := num.Int64(); i != 123 {
		t.Errorf("NumberValue = %s", num.Text())
	}
	if _, err := n.StringValue(); err == nil {
		t.Error("StringValue on a number id should fail")
	}

	for _, id := range []ID{NullID(), {}} {
		if _, err := id.StringValue(); err == nil {
			t.Errorf("StringValue on %s should fail", id)
		}
		if _, err := id.NumberValue(); err == nil {
			t.Errorf("NumberValue on %s should fail", id)
		}
	}
}

func TestIDEqual(t *testing.T) {
	frac, err := jsonval.NewNumber("123.0")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		a, b ID
		want bool
	}{
		{"strings", StringID("a"), StringID("a"), true},
		{"strings differ", StringID("a"), StringID("b"), false},
		{"numbers by value", Int64ID(123), NumberID(frac), true},
		{"nulls", NullID(), NullID(), true},
		{"undefined", ID{}, ID{}, true},
		{"variant mismatch", StringID("1"), Int64ID(1), false},
		{"null vs undefined", NullID(), ID{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRandomID(t *testing.T) {
	a, b := RandomID(), RandomID()
	if !a.IsString() {
		t.Fatal("RandomID must be a string id")
	}
	if a.Equal(b) {
		t.Error("two random ids should differ")
	}
}
