package jsonval

import (
	"encoding/binary"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeebo/blake3"
)

// Equal reports recursive logical equality. Numbers compare by decimal
// value, objects compare by key set and per-key value regardless of key
// order, and views compare by logical contents rather than representation.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		av, _ := AsBool(a)
		bv, _ := AsBool(b)
		return av == bv
	case KindNumber:
		an, _ := AsNumber(a)
		bn, _ := AsNumber(b)
		return an.Decimal().Equal(bn.Decimal())
	case KindString:
		as, _ := AsString(a)
		bs, _ := AsString(b)
		return as == bs
	case KindArray:
		aa, _ := AsArray(a)
		ba, _ := AsArray(b)
		if aa.Len() != ba.Len() {
			return false
		}
		for i := 0; i < aa.Len(); i++ {
			av, err := aa.At(i)
			if err != nil {
				return false
			}
			bv, err := ba.At(i)
			if err != nil {
				return false
			}
			if !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindObject:
		ao, _ := AsObject(a)
		bo, _ := AsObject(b)
		if ao.Len() != bo.Len() {
			return false
		}
		for _, k := range ao.Keys() {
			av, _ := ao.Get(k)
			bv, ok := bo.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash returns a 256-bit digest of the value's logical contents. Equal
// values hash identically: the digest is taken over a canonical walk with
// sorted object keys and canonical decimal text.
func Hash(v Value) [32]byte {
	h := blake3.New()
	hashValue(h, v)
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func hashValue(h *blake3.Hasher, v Value) {
	switch v.Kind() {
	case KindNull:
		h.Write([]byte{'n'})
	case KindBool:
		b, _ := AsBool(v)
		if b {
			h.Write([]byte{'t'})
		} else {
			h.Write([]byte{'f'})
		}
	case KindNumber:
		n, _ := AsNumber(v)
		hashString(h, 'd', canonicalDecimal(n.Decimal()))
	case KindString:
		s, _ := AsString(v)
		hashString(h, 's', s)
	case KindArray:
		a, _ := AsArray(v)
		h.Write(binary.AppendUvarint([]byte{'a'}, uint64(a.Len())))
		for i := 0; i < a.Len(); i++ {
			item, _ := a.At(i)
			hashValue(h, item)
		}
	case KindObject:
		o, _ := AsObject(v)
		keys := o.Keys()
		sort.Strings(keys)
		h.Write(binary.AppendUvarint([]byte{'o'}, uint64(len(keys))))
		for _, k := range keys {
			hashString(h, 'k', k)
			member, _ := o.Get(k)
			hashValue(h, member)
		}
	}
}

// canonicalDecimal strips trailing fraction zeros so that numerically equal
// decimals ("1", "1.0", "1.00") hash identically.
func canonicalDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func hashString(h *blake3.Hasher, tag byte, s string) {
	h.Write(binary.AppendUvarint([]byte{tag}, uint64(len(s))))
	h.Write([]byte(s))
}
