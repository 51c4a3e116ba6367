package jsonstream

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/go-faster/errors"

	"mcpist/jsonwire/pkg/jsonval"
)

type container uint8

const (
	inArray container = iota
	inObject
)

// frame tracks one open container. count is the number of completed
// members/elements; midMember marks an object whose member name has been
// consumed but whose value has not yet completed.
type frame struct {
	kind      container
	count     int
	midMember bool
}

// Parser reads a JSON document from an io.Reader as a sequence of events.
// It is single-pass and forward-only with one byte of lookahead, and keeps
// an explicit stack of open containers to enforce the grammar on every
// advance. A Parser is not safe for concurrent use.
type Parser struct {
	r     *bufio.Reader
	src   io.Reader
	off   int64
	stack []frame
	done  bool
	err   error
}

// NewParser binds a parser to r. If r is an io.Closer, Close releases it.
func NewParser(r io.Reader) *Parser {
	return &Parser{r: bufio.NewReader(r), src: r}
}

// Next returns the next event. After the top-level value completes it
// returns io.EOF once only whitespace remains; anything else is a
// *SyntacticError. Errors other than io.EOF are sticky.
func (p *Parser) Next() (Event, error) {
	if p.err != nil {
		return Event{}, p.err
	}
	ev, err := p.next()
	if err != nil && err != io.EOF {
		p.err = err
	}
	return ev, err
}

func (p *Parser) next() (Event, error) {
	if len(p.stack) == 0 && p.done {
		if err := p.skipSpace(); err != nil {
			if err == io.EOF {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		return Event{}, syntaxErr(p.off, "unexpected data after top-level value")
	}

	c, err := p.nextByte()
	if err != nil {
		return Event{}, err
	}

	if top := p.top(); top != nil && top.kind == inObject && !top.midMember {
		if c == '}' {
			p.stack = p.stack[:len(p.stack)-1]
			p.finishValue()
			return Event{Kind: EventEndObject}, nil
		}
		if top.count > 0 {
			if c != ',' {
				return Event{}, syntaxErr(p.off-1, "expected ',' or '}' after object member, got %q", c)
			}
			if c, err = p.nextByte(); err != nil {
				return Event{}, err
			}
			if c == '}' {
				return Event{}, syntaxErr(p.off-1, "trailing comma before '}'")
			}
		}
		if c != '"' {
			return Event{}, syntaxErr(p.off-1, "expected object member name, got %q", c)
		}
		name, err := p.scanString()
		if err != nil {
			return Event{}, err
		}
		if c, err = p.nextByte(); err != nil {
			return Event{}, err
		}
		if c != ':' {
			return Event{}, syntaxErr(p.off-1, "expected ':' after object member name, got %q", c)
		}
		top.midMember = true
		return Event{Kind: EventFieldName, Name: name}, nil
	}

	if top := p.top(); top != nil && top.kind == inArray {
		if c == ']' {
			p.stack = p.stack[:len(p.stack)-1]
			p.finishValue()
			return Event{Kind: EventEndArray}, nil
		}
		if top.count > 0 {
			if c != ',' {
				return Event{}, syntaxErr(p.off-1, "expected ',' or ']' after array element, got %q", c)
			}
			if c, err = p.nextByte(); err != nil {
				return Event{}, err
			}
			if c == ']' {
				return Event{}, syntaxErr(p.off-1, "trailing comma before ']'")
			}
		}
	}

	return p.beginValue(c)
}

func (p *Parser) beginValue(c byte) (Event, error) {
	switch {
	case c == '{':
		p.stack = append(p.stack, frame{kind: inObject})
		return Event{Kind: EventBeginObject}, nil
	case c == '[':
		p.stack = append(p.stack, frame{kind: inArray})
		return Event{Kind: EventBeginArray}, nil
	case c == '"':
		s, err := p.scanString()
		if err != nil {
			return Event{}, err
		}
		p.finishValue()
		return Event{Kind: EventValue, Value: jsonval.String(s)}, nil
	case c == 't':
		if err := p.scanLiteral("rue"); err != nil {
			return Event{}, err
		}
		p.finishValue()
		return Event{Kind: EventValue, Value: jsonval.Bool(true)}, nil
	case c == 'f':
		if err := p.scanLiteral("alse"); err != nil {
			return Event{}, err
		}
		p.finishValue()
		return Event{Kind: EventValue, Value: jsonval.Bool(false)}, nil
	case c == 'n':
		if err := p.scanLiteral("ull"); err != nil {
			return Event{}, err
		}
		p.finishValue()
		return Event{Kind: EventValue, Value: jsonval.Null()}, nil
	case c == '-' || (c >= '0' && c <= '9'):
		n, err := p.scanNumber(c)
		if err != nil {
			return Event{}, err
		}
		p.finishValue()
		return Event{Kind: EventValue, Value: n}, nil
	default:
		return Event{}, syntaxErr(p.off-1, "unexpected character %q", c)
	}
}

// ReadValue aggregates the next complete value, containers included, into a
// jsonval.Value using the same grammar rules. This is the mechanism the
// package-level Parse helpers are built from.
func (p *Parser) ReadValue() (jsonval.Value, error) {
	ev, err := p.Next()
	if err != nil {
		return nil, err
	}
	return p.valueFrom(ev)
}

func (p *Parser) valueFrom(ev Event) (jsonval.Value, error) {
	switch ev.Kind {
	case EventValue:
		return ev.Value, nil
	case EventBeginArray:
		var items []jsonval.Value
		for {
			ev, err := p.Next()
			if err != nil {
				return nil, err
			}
			if ev.Kind == EventEndArray {
				return jsonval.NewArray(items...), nil
			}
			item, err := p.valueFrom(ev)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	case EventBeginObject:
		var fields []jsonval.Field
		for {
			ev, err := p.Next()
			if err != nil {
				return nil, err
			}
			if ev.Kind == EventEndObject {
				return jsonval.NewObject(fields...), nil
			}
			if ev.Kind != EventFieldName {
				return nil, syntaxErr(p.off, "expected object member name event, got %s", ev.Kind)
			}
			member, err := p.ReadValue()
			if err != nil {
				return nil, err
			}
			fields = append(fields, jsonval.Field{Key: ev.Name, Value: member})
		}
	default:
		return nil, syntaxErr(p.off, "expected a value event, got %s", ev.Kind)
	}
}

// Close releases the underlying source when it is an io.Closer. It is safe
// to call on any path, including after an error.
func (p *Parser) Close() error {
	if c, ok := p.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *Parser) top() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

func (p *Parser) finishValue() {
	if len(p.stack) == 0 {
		p.done = true
		return
	}
	top := &p.stack[len(p.stack)-1]
	top.count++
	top.midMember = false
}

func (p *Parser) skipSpace() error {
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return io.EOF
			}
			return errors.Wrap(err, "read")
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			_ = p.r.UnreadByte()
			return nil
		}
		p.off++
	}
}

func (p *Parser) nextByte() (byte, error) {
	if err := p.skipSpace(); err != nil {
		if err == io.EOF {
			return 0, syntaxErr(p.off, "unexpected end of JSON input")
		}
		return 0, err
	}
	return p.readByte()
}

func (p *Parser) readByte() (byte, error) {
	c, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, syntaxErr(p.off, "unexpected end of JSON input")
		}
		return 0, errors.Wrap(err, "read")
	}
	p.off++
	return c, nil
}

// scanString is entered after the opening quote has been consumed.
func (p *Parser) scanString() (string, error) {
	var sb strings.Builder
	for {
		c, err := p.readByte()
		if err != nil {
			return "", err
		}
		switch {
		case c == '"':
			return sb.String(), nil
		case c == '\\':
			if err := p.scanEscape(&sb); err != nil {
				return "", err
			}
		case c < 0x20:
			return "", syntaxErr(p.off-1, "unescaped control character 0x%02x in string", c)
		default:
			sb.WriteByte(c)
		}
	}
}

func (p *Parser) scanEscape(sb *strings.Builder) error {
	c, err := p.readByte()
	if err != nil {
		return err
	}
	switch c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		r, err := p.scanHex4()
		if err != nil {
			return err
		}
		if utf16.IsSurrogate(r) {
			off := p.off
			c1, err := p.readByte()
			if err != nil {
				return err
			}
			c2, err := p.readByte()
			if err != nil {
				return err
			}
			if c1 != '\\' || c2 != 'u' {
				return syntaxErr(off, "unpaired surrogate in string escape")
			}
			r2, err := p.scanHex4()
			if err != nil {
				return err
			}
			combined := utf16.DecodeRune(r, r2)
			if combined == unicode.ReplacementChar {
				return syntaxErr(off, "invalid surrogate pair in string escape")
			}
			r = combined
		}
		sb.WriteRune(r)
	default:
		return syntaxErr(p.off-1, "invalid escape character %q in string", c)
	}
	return nil
}

func (p *Parser) scanHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		c, err := p.readByte()
		if err != nil {
			return 0, err
		}
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | rune(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | rune(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | rune(c-'A'+10)
		default:
			return 0, syntaxErr(p.off-1, "invalid hex digit %q in string escape", c)
		}
	}
	return r, nil
}

func (p *Parser) scanLiteral(rest string) error {
	for i := 0; i < len(rest); i++ {
		c, err := p.readByte()
		if err != nil {
			return err
		}
		if c != rest[i] {
			return syntaxErr(p.off-1, "invalid literal")
		}
	}
	return nil
}

func (p *Parser) scanNumber(first byte) (jsonval.Number, error) {
	start := p.off - 1
	buf := []byte{first}
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				break
			}
			return jsonval.Number{}, errors.Wrap(err, "read")
		}
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-' {
			p.off++
			buf = append(buf, c)
			continue
		}
		_ = p.r.UnreadByte()
		break
	}
	n, err := jsonval.NewNumber(string(buf))
	if err != nil {
		return jsonval.Number{}, syntaxErr(start, "malformed number %q", string(buf))
	}
	return n, nil
}
