package jsonval

import (
	"errors"
	"math"
	"testing"
)

func TestNewNumberGrammar(t *testing.T) {
	valid := []string{
		"0", "-0", "1", "-1", "123", "0.5", "-0.5", "1.25",
		"1e5", "1E5", "1e+5", "1e-5", "1.5e10", "-1.5E-10",
	}
	for _, text := range valid {
		if _, err := NewNumber(text); err != nil {
			t.Errorf("NewNumber(%q) failed: %v", text, err)
		}
	}

	invalid := []string{
		"", "-", "+1", "01", "1.", ".5", "1e", "1e+", "1.2.3",
		"0x10", "NaN", "Infinity", "1 ", " 1", "--1",
	}
	for _, text := range invalid {
		if _, err := NewNumber(text); err == nil {
			t.Errorf("NewNumber(%q) should fail", text)
		}
	}
}

func TestNumberInt64(t *testing.T) {
	tests := []struct {
		text    string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"123", 123, false},
		{"-9223372036854775808", -9223372036854775808, false},
		{"9223372036854775807", 9223372036854775807, false},
		{"2e3", 2000, false},
		{"1.0", 1, false},
		{"1.5", 0, true},
		{"9223372036854775808", 0, true},
		{"-9223372036854775809", 0, true},
		{"1e19", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			n := mustNumber(t, tt.text)
			got, err := n.Int64()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Int64() = %d, want error", got)
				}
				var ne *NumericError
				if !errors.As(err, &ne) {
					t.Errorf("error = %v, want *NumericError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int64(): %v", err)
			}
			if got != tt.want {
				t.Errorf("Int64() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNumberFloat64(t *testing.T) {
	n := mustNumber(t, "1.5")
	if got := n.Float64(); got != 1.5 {
		t.Errorf("Float64() = %v, want 1.5", got)
	}
	// Float extraction is lossy by contract; it must still succeed for any
	// number variant.
	big := mustNumber(t, "123456789012345678901234567890")
	_ = big.Float64()
}

func TestNumberTextPreserved(t *testing.T) {
	n := mustNumber(t, "0.30000000000000004")
	if n.Text() != "0.30000000000000004" {
		t.Errorf("Text() = %q", n.Text())
	}
	i, err := mustNumber(t, "12345678901234567").Int64()
	if err != nil || i != 12345678901234567 {
		t.Errorf("Int64() = %d, %v (precision must survive)", i, err)
	}
}

func TestFloat64Number(t *testing.T) {
	if _, err := Float64Number(0.25); err != nil {
		t.Errorf("Float64Number(0.25): %v", err)
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Float64Number(f); err == nil {
			t.Errorf("Float64Number(%v) should fail", f)
		}
	}
}
