package jsonstream

import "fmt"

// SyntacticError reports a lexical or grammar violation, from the parser
// (malformed input) or the generator (an event sequence that cannot form a
// valid document). ByteOffset is the position in the text read so far, or
// written so far for the generator.
type SyntacticError struct {
	ByteOffset int64
	Msg        string
}

func (e *SyntacticError) Error() string {
	return fmt.Sprintf("invalid JSON: %s (at byte offset %d)", e.Msg, e.ByteOffset)
}

func syntaxErr(off int64, format string, args ...any) *SyntacticError {
	return &SyntacticError{ByteOffset: off, Msg: fmt.Sprintf(format, args...)}
}
