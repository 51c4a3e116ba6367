package jsonval

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// Number is a JSON number. It keeps the exact decimal text it was built
// from, so Decimal and Int64 extraction never lose precision. Float64 is
// lossy by contract.
type Number struct {
	text string
}

func (Number) Kind() Kind { return KindNumber }
func (Number) isValue()   {}

// NewNumber builds a Number from decimal text. The text must match the JSON
// number grammar (optional sign, integer part, optional fraction, optional
// exponent).
func NewNumber(text string) (Number, error) {
	if !validNumberText(text) {
		return Number{}, &NumericError{Text: text, Reason: "not a valid JSON number"}
	}
	return Number{text: text}, nil
}

// Int64Number builds a Number from an integer.
func Int64Number(i int64) Number {
	return Number{text: strconv.FormatInt(i, 10)}
}

// Float64Number builds a Number from a float. NaN and infinities have no
// JSON representation and are rejected.
func Float64Number(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Number{}, &NumericError{
			Text:   strconv.FormatFloat(f, 'g', -1, 64),
			Reason: "no JSON representation",
		}
	}
	return Number{text: strconv.FormatFloat(f, 'g', -1, 64)}, nil
}

// DecimalNumber builds a Number from an exact decimal.
func DecimalNumber(d decimal.Decimal) Number {
	return Number{text: d.String()}
}

// Text returns the exact decimal text.
func (n Number) Text() string { return n.text }

// Decimal returns the exact decimal value.
func (n Number) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(n.text)
	if err != nil {
		// The constructors validate the grammar, so this only trips on a
		// zero Number, which reads as 0.
		return decimal.Zero
	}
	return d
}

// Float64 returns the nearest float64. Rounding is allowed by contract.
func (n Number) Float64() float64 {
	f, _ := n.Decimal().Float64()
	return f
}

// Int64 returns the exact integral value. It fails with a *NumericError if
// the number has a fractional part or does not fit in an int64.
func (n Number) Int64() (int64, error) {
	d := n.Decimal()
	if !d.IsInteger() {
		return 0, &NumericError{Text: n.text, Reason: "has a fractional part"}
	}
	if d.Cmp(decimal.NewFromInt(math.MaxInt64)) > 0 || d.Cmp(decimal.NewFromInt(math.MinInt64)) < 0 {
		return 0, &NumericError{Text: n.text, Reason: "out of int64 range"}
	}
	return d.IntPart(), nil
}

// validNumberText checks the RFC 8259 number grammar.
func validNumberText(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	switch {
	case i < len(s) && s[i] == '0':
		i++
	case i < len(s) && s[i] >= '1' && s[i] <= '9':
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}
