package jsonval

// Structural views compose immutable values without copying. A view holds
// shared read-only references to its operands and satisfies the full Value
// contract; because the operands are immutable, a view's observed contents
// never change. Construction is O(1); each read walks the composition chain,
// so read cost grows with chain depth.

type combinedArray struct {
	left  ArrayView
	right ArrayView
}

func (*combinedArray) Kind() Kind { return KindArray }
func (*combinedArray) isValue()   {}

func (c *combinedArray) Len() int { return c.left.Len() + c.right.Len() }

func (c *combinedArray) At(i int) (Value, error) {
	if i < 0 || i >= c.Len() {
		return nil, &IndexError{Index: i, Length: c.Len()}
	}
	if i < c.left.Len() {
		return c.left.At(i)
	}
	return c.right.At(i - c.left.Len())
}

// CombineArrays returns the logical concatenation of left and right without
// copying either. Views compose: the result can itself be an operand.
func CombineArrays(left, right ArrayView) ArrayView {
	return &combinedArray{left: left, right: right}
}

type mergedObject struct {
	base    ObjectView
	overlay ObjectView
}

func (*mergedObject) Kind() Kind { return KindObject }
func (*mergedObject) isValue()   {}

func (m *mergedObject) Len() int { return len(m.Keys()) }

// Keys lists base keys in base order (overridden keys keep their base
// position), then overlay-only keys in overlay order.
func (m *mergedObject) Keys() []string {
	keys := m.base.Keys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}
	for _, k := range m.overlay.Keys() {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

func (m *mergedObject) Get(key string) (Value, bool) {
	if v, ok := m.overlay.Get(key); ok {
		return v, true
	}
	return m.base.Get(key)
}

// MergeObjects returns the logical overlay of base and overlay without
// copying either: the key set is the union, and overlay wins for keys
// present in both.
func MergeObjects(base, overlay ObjectView) ObjectView {
	return &mergedObject{base: base, overlay: overlay}
}
