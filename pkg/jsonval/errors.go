package jsonval

import "fmt"

// KindError reports an accessor applied to the wrong JSON variant.
type KindError struct {
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("json value is %s, not %s", e.Got, e.Want)
}

// IndexError reports an array access outside [0, Length).
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("array index %d out of range [0, %d)", e.Index, e.Length)
}

// NumericError reports a numeric extraction that cannot be performed
// exactly, or a malformed decimal text.
type NumericError struct {
	Text   string
	Reason string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("number %q: %s", e.Text, e.Reason)
}
