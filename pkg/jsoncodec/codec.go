// Package jsoncodec converts between native Go values and jsonval values
// through explicit codecs. There is no ambient registry: the caller names
// the codec at each call site, composing the built-ins with the container
// combinators.
package jsoncodec

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"mcpist/jsonwire/pkg/jsonval"
)

// Codec converts a native value to and from its JSON representation.
type Codec[T any] interface {
	Encode(v T) (jsonval.Value, error)
	Decode(j jsonval.Value) (T, error)
}

type boolCodec struct{}

func (boolCodec) Encode(v bool) (jsonval.Value, error) { return jsonval.Bool(v), nil }

func (boolCodec) Decode(j jsonval.Value) (bool, error) {
	b, err := jsonval.AsBool(j)
	if err != nil {
		return false, errors.Wrap(err, "decode bool")
	}
	return b, nil
}

// Bool converts JSON booleans.
func Bool() Codec[bool] { return boolCodec{} }

type stringCodec struct{}

func (stringCodec) Encode(v string) (jsonval.Value, error) { return jsonval.String(v), nil }

func (stringCodec) Decode(j jsonval.Value) (string, error) {
	s, err := jsonval.AsString(j)
	if err != nil {
		return "", errors.Wrap(err, "decode string")
	}
	return s, nil
}

// String converts JSON strings.
func String() Codec[string] { return stringCodec{} }

type int64Codec struct{}

func (int64Codec) Encode(v int64) (jsonval.Value, error) {
	return jsonval.Int64Number(v), nil
}

func (int64Codec) Decode(j jsonval.Value) (int64, error) {
	n, err := jsonval.AsNumber(j)
	if err != nil {
		return 0, errors.Wrap(err, "decode int64")
	}
	i, err := n.Int64()
	if err != nil {
		return 0, errors.Wrap(err, "decode int64")
	}
	return i, nil
}

// Int64 converts exactly integral JSON numbers.
func Int64() Codec[int64] { return int64Codec{} }

type float64Codec struct{}

func (float64Codec) Encode(v float64) (jsonval.Value, error) {
	return jsonval.Float64Number(v)
}

func (float64Codec) Decode(j jsonval.Value) (float64, error) {
	n, err := jsonval.AsNumber(j)
	if err != nil {
		return 0, errors.Wrap(err, "decode float64")
	}
	return n.Float64(), nil
}

// Float64 converts JSON numbers with float rounding.
func Float64() Codec[float64] { return float64Codec{} }

type decimalCodec struct{}

func (decimalCodec) Encode(v decimal.Decimal) (jsonval.Value, error) {
	return jsonval.DecimalNumber(v), nil
}

func (decimalCodec) Decode(j jsonval.Value) (decimal.Decimal, error) {
	n, err := jsonval.AsNumber(j)
	if err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "decode decimal")
	}
	return n.Decimal(), nil
}

// Decimal converts JSON numbers without precision loss.
func Decimal() Codec[decimal.Decimal] { return decimalCodec{} }

type rawCodec struct{}

func (rawCodec) Encode(v jsonval.Value) (jsonval.Value, error) {
	if v == nil {
		return jsonval.Null(), nil
	}
	return v, nil
}

func (rawCodec) Decode(j jsonval.Value) (jsonval.Value, error) { return j, nil }

// Raw passes jsonval values through unchanged.
func Raw() Codec[jsonval.Value] { return rawCodec{} }

type sliceCodec[T any] struct {
	elem Codec[T]
}

func (c sliceCodec[T]) Encode(v []T) (jsonval.Value, error) {
	items := make([]jsonval.Value, len(v))
	for i, e := range v {
		j, err := c.elem.Encode(e)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		items[i] = j
	}
	return jsonval.NewArray(items...), nil
}

func (c sliceCodec[T]) Decode(j jsonval.Value) ([]T, error) {
	a, err := jsonval.AsArray(j)
	if err != nil {
		return nil, errors.Wrap(err, "decode slice")
	}
	out := make([]T, a.Len())
	for i := 0; i < a.Len(); i++ {
		item, err := a.At(i)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		if out[i], err = c.elem.Decode(item); err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
	}
	return out, nil
}

// Slice converts homogeneous JSON arrays.
func Slice[T any](elem Codec[T]) Codec[[]T] { return sliceCodec[T]{elem: elem} }

type stringMapCodec[T any] struct {
	elem Codec[T]
}

func (c stringMapCodec[T]) Encode(v map[string]T) (jsonval.Value, error) {
	fields := make([]jsonval.Field, 0, len(v))
	for k, e := range v {
		j, err := c.elem.Encode(e)
		if err != nil {
			return nil, errors.Wrapf(err, "member %q", k)
		}
		fields = append(fields, jsonval.Field{Key: k, Value: j})
	}
	return jsonval.NewObject(fields...), nil
}

func (c stringMapCodec[T]) Decode(j jsonval.Value) (map[string]T, error) {
	o, err := jsonval.AsObject(j)
	if err != nil {
		return nil, errors.Wrap(err, "decode map")
	}
	out := make(map[string]T, o.Len())
	for _, k := range o.Keys() {
		member, _ := o.Get(k)
		v, err := c.elem.Decode(member)
		if err != nil {
			return nil, errors.Wrapf(err, "member %q", k)
		}
		out[k] = v
	}
	return out, nil
}

// StringMap converts homogeneous JSON objects.
func StringMap[T any](elem Codec[T]) Codec[map[string]T] {
	return stringMapCodec[T]{elem: elem}
}

type optionalCodec[T any] struct {
	elem Codec[T]
}

func (c optionalCodec[T]) Encode(v *T) (jsonval.Value, error) {
	if v == nil {
		return jsonval.Null(), nil
	}
	return c.elem.Encode(*v)
}

func (c optionalCodec[T]) Decode(j jsonval.Value) (*T, error) {
	if j == nil || j.Kind() == jsonval.KindNull {
		return nil, nil
	}
	v, err := c.elem.Decode(j)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Optional converts JSON null (or an absent member passed as nil) to a nil
// pointer and anything else through elem.
func Optional[T any](elem Codec[T]) Codec[*T] { return optionalCodec[T]{elem: elem} }
