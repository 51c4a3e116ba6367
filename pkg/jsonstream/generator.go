package jsonstream

import (
	"bufio"
	"io"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"mcpist/jsonwire/pkg/jsonval"
)

// Generator writes a JSON document to an io.Writer one event at a time,
// enforcing the same nesting grammar as the Parser: a field name is legal
// only inside an object, every name is followed by exactly one value, and
// only the open container can be closed. Misuse returns a *SyntacticError
// and errors are sticky. A Generator is not safe for concurrent use.
type Generator struct {
	w      *bufio.Writer
	indent string
	stack  []frame
	off    int64
	done   bool
	closed bool
	err    error
}

// NewGenerator binds a generator to w in compact form.
func NewGenerator(w io.Writer) *Generator {
	return &Generator{w: bufio.NewWriter(w)}
}

// SetIndent switches the generator to pretty form, indenting each nesting
// level by indent. It must be called before the first write.
func (g *Generator) SetIndent(indent string) {
	g.indent = indent
}

// BeginObject opens an object.
func (g *Generator) BeginObject() error {
	if err := g.checkValue(); err != nil {
		return err
	}
	g.prefixValue()
	g.writeString("{")
	g.stack = append(g.stack, frame{kind: inObject})
	return g.err
}

// EndObject closes the open object.
func (g *Generator) EndObject() error {
	if err := g.checkLive(); err != nil {
		return err
	}
	top := g.top()
	if top == nil || top.kind != inObject {
		return g.fail("end of object outside an object")
	}
	if top.midMember {
		return g.fail("value required after object member name")
	}
	count := top.count
	g.stack = g.stack[:len(g.stack)-1]
	if count > 0 {
		g.newlineIndent()
	}
	g.writeString("}")
	g.finishValue()
	return g.err
}

// BeginArray opens an array.
func (g *Generator) BeginArray() error {
	if err := g.checkValue(); err != nil {
		return err
	}
	g.prefixValue()
	g.writeString("[")
	g.stack = append(g.stack, frame{kind: inArray})
	return g.err
}

// EndArray closes the open array.
func (g *Generator) EndArray() error {
	if err := g.checkLive(); err != nil {
		return err
	}
	top := g.top()
	if top == nil || top.kind != inArray {
		return g.fail("end of array outside an array")
	}
	count := top.count
	g.stack = g.stack[:len(g.stack)-1]
	if count > 0 {
		g.newlineIndent()
	}
	g.writeString("]")
	g.finishValue()
	return g.err
}

// Name writes an object member name. The next write must be the member's
// value.
func (g *Generator) Name(name string) error {
	if err := g.checkLive(); err != nil {
		return err
	}
	top := g.top()
	if top == nil || top.kind != inObject {
		return g.fail("field name outside an object")
	}
	if top.midMember {
		return g.fail("value required after object member name")
	}
	if top.count > 0 {
		g.writeString(",")
	}
	g.newlineIndent()
	g.writeString(quote(name))
	g.writeString(":")
	if g.indent != "" {
		g.writeString(" ")
	}
	top.midMember = true
	return g.err
}

// Null writes a JSON null.
func (g *Generator) Null() error { return g.primitive("null") }

// Bool writes a JSON boolean.
func (g *Generator) Bool(b bool) error {
	if b {
		return g.primitive("true")
	}
	return g.primitive("false")
}

// String writes a JSON string.
func (g *Generator) String(s string) error { return g.primitive(quote(s)) }

// Number writes a JSON number, preserving its exact decimal text.
func (g *Generator) Number(n jsonval.Number) error {
	text := n.Text()
	if text == "" {
		text = "0"
	}
	return g.primitive(text)
}

// Write walks an entire value, views included, through the event methods.
func (g *Generator) Write(v jsonval.Value) error {
	if v == nil {
		return errors.New("nil value")
	}
	switch v.Kind() {
	case jsonval.KindNull:
		return g.Null()
	case jsonval.KindBool:
		b, _ := jsonval.AsBool(v)
		return g.Bool(b)
	case jsonval.KindNumber:
		n, _ := jsonval.AsNumber(v)
		return g.Number(n)
	case jsonval.KindString:
		s, _ := jsonval.AsString(v)
		return g.String(s)
	case jsonval.KindArray:
		a, _ := jsonval.AsArray(v)
		if err := g.BeginArray(); err != nil {
			return err
		}
		for i := 0; i < a.Len(); i++ {
			item, err := a.At(i)
			if err != nil {
				return err
			}
			if err := g.Write(item); err != nil {
				return err
			}
		}
		return g.EndArray()
	case jsonval.KindObject:
		o, _ := jsonval.AsObject(v)
		if err := g.BeginObject(); err != nil {
			return err
		}
		for _, k := range o.Keys() {
			if err := g.Name(k); err != nil {
				return err
			}
			member, _ := o.Get(k)
			if err := g.Write(member); err != nil {
				return err
			}
		}
		return g.EndObject()
	default:
		return errors.Errorf("unknown value kind %v", v.Kind())
	}
}

// Close flushes buffered output and seals the generator. It flushes on
// every path, including after an error; closing with an open container or
// without a top-level value reports a *SyntacticError.
func (g *Generator) Close() error {
	if g.closed {
		return g.err
	}
	g.closed = true
	flushErr := g.w.Flush()
	if g.err != nil {
		return g.err
	}
	if flushErr != nil {
		g.err = errors.Wrap(flushErr, "flush")
		return g.err
	}
	if len(g.stack) > 0 {
		g.err = syntaxErr(g.off, "unclosed object or array")
		return g.err
	}
	if !g.done {
		g.err = syntaxErr(g.off, "no top-level value written")
		return g.err
	}
	return nil
}

func (g *Generator) primitive(text string) error {
	if err := g.checkValue(); err != nil {
		return err
	}
	g.prefixValue()
	g.writeString(text)
	g.finishValue()
	return g.err
}

func (g *Generator) checkLive() error {
	if g.err != nil {
		return g.err
	}
	if g.closed {
		g.err = errors.New("generator is closed")
		return g.err
	}
	return nil
}

func (g *Generator) checkValue() error {
	if err := g.checkLive(); err != nil {
		return err
	}
	if len(g.stack) == 0 {
		if g.done {
			return g.fail("more than one top-level value")
		}
		return nil
	}
	if top := g.top(); top.kind == inObject && !top.midMember {
		return g.fail("object member name required before value")
	}
	return nil
}

// prefixValue writes the separator owed before a value: a comma between
// array elements and the pretty-form newline. Object member separators are
// written by Name.
func (g *Generator) prefixValue() {
	if top := g.top(); top != nil && top.kind == inArray {
		if top.count > 0 {
			g.writeString(",")
		}
		g.newlineIndent()
	}
}

func (g *Generator) newlineIndent() {
	if g.indent == "" {
		return
	}
	g.writeString("\n")
	g.writeString(strings.Repeat(g.indent, len(g.stack)))
}

func (g *Generator) finishValue() {
	if len(g.stack) == 0 {
		g.done = true
		return
	}
	top := &g.stack[len(g.stack)-1]
	top.count++
	top.midMember = false
}

func (g *Generator) top() *frame {
	if len(g.stack) == 0 {
		return nil
	}
	return &g.stack[len(g.stack)-1]
}

func (g *Generator) fail(format string, args ...any) error {
	e := syntaxErr(g.off, format, args...)
	g.err = e
	return e
}

func (g *Generator) writeString(s string) {
	n, err := g.w.WriteString(s)
	g.off += int64(n)
	if err != nil && g.err == nil {
		g.err = errors.Wrap(err, "write")
	}
}

// quote renders s as a JSON string. Escaping delegates to the jx encoder.
func quote(s string) string {
	var e jx.Encoder
	e.Str(s)
	return string(e.Bytes())
}
