package ensurejson

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// parseError is a strict-grammar violation with a byte offset. atEnd marks an
// unexpected end of input at the exact tail, which the recovery coordinator
// uses to trigger one extra balancing attempt.
type parseError struct {
	off   int
	msg   string
	atEnd bool
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.msg, e.off)
}

// parser is a strict recursive-descent JSON parser. It contains no repair
// logic: any deviation from the grammar fails with a positioned error.
type parser struct {
	s string
	i int
}

// parseStrict parses s as exactly one JSON value followed by optional
// whitespace.
func parseStrict(s string) (Value, *parseError) {
	p := &parser{s: s}
	p.ws()
	v, err := p.value()
	if err != nil {
		return Value{}, err
	}
	p.ws()
	if p.i < len(p.s) {
		return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("unexpected character %q after top-level value", p.s[p.i])}
	}
	return v, nil
}

func (p *parser) ws() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\r', '\n':
			p.i++
		default:
			return
		}
	}
}

func (p *parser) eof() *parseError {
	return &parseError{off: len(p.s), msg: "unexpected end of input", atEnd: true}
}

func (p *parser) value() (Value, *parseError) {
	if p.i >= len(p.s) {
		return Value{}, p.eof()
	}
	switch c := p.s[p.i]; {
	case c == '{':
		return p.object()
	case c == '[':
		return p.array()
	case c == '"':
		s, err := p.string()
		if err != nil {
			return Value{}, err
		}
		return Str(s), nil
	case c == 't':
		return p.literal("true", Bool(true))
	case c == 'f':
		return p.literal("false", Bool(false))
	case c == 'n':
		return p.literal("null", Null())
	case c == '-' || c >= '0' && c <= '9':
		return p.number()
	default:
		return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("unexpected token %q", c)}
	}
}

func (p *parser) literal(lit string, v Value) (Value, *parseError) {
	if !strings.HasPrefix(p.s[p.i:], lit) {
		if len(p.s)-p.i < len(lit) && strings.HasPrefix(lit, p.s[p.i:]) {
			return Value{}, p.eof()
		}
		return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("unexpected token %q", p.s[p.i])}
	}
	p.i += len(lit)
	return v, nil
}

func (p *parser) object() (Value, *parseError) {
	obj := Object()
	p.i++ // '{'
	p.ws()
	if p.i >= len(p.s) {
		return Value{}, p.eof()
	}
	if p.s[p.i] == '}' {
		p.i++
		return obj, nil
	}
	for {
		p.ws()
		if p.i >= len(p.s) {
			return Value{}, p.eof()
		}
		if p.s[p.i] != '"' {
			return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("expected object key, found %q", p.s[p.i])}
		}
		key, err := p.string()
		if err != nil {
			return Value{}, err
		}
		p.ws()
		if p.i >= len(p.s) {
			return Value{}, p.eof()
		}
		if p.s[p.i] != ':' {
			return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("expected ':' after object key, found %q", p.s[p.i])}
		}
		p.i++
		p.ws()
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		obj.Set(key, v) // duplicate keys: last write wins, first position kept
		p.ws()
		if p.i >= len(p.s) {
			return Value{}, p.eof()
		}
		switch p.s[p.i] {
		case ',':
			p.i++
		case '}':
			p.i++
			return obj, nil
		default:
			return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("expected ',' or '}' in object, found %q", p.s[p.i])}
		}
	}
}

func (p *parser) array() (Value, *parseError) {
	var items []Value
	p.i++ // '['
	p.ws()
	if p.i >= len(p.s) {
		return Value{}, p.eof()
	}
	if p.s[p.i] == ']' {
		p.i++
		return Array(), nil
	}
	for {
		p.ws()
		v, err := p.value()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		p.ws()
		if p.i >= len(p.s) {
			return Value{}, p.eof()
		}
		switch p.s[p.i] {
		case ',':
			p.i++
		case ']':
			p.i++
			return Array(items...), nil
		default:
			return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("expected ',' or ']' in array, found %q", p.s[p.i])}
		}
	}
}

func (p *parser) string() (string, *parseError) {
	p.i++ // opening '"'
	var b strings.Builder
	for {
		if p.i >= len(p.s) {
			return "", p.eof()
		}
		c := p.s[p.i]
		switch {
		case c == '"':
			p.i++
			return b.String(), nil
		case c == '\\':
			if p.i+1 >= len(p.s) {
				return "", p.eof()
			}
			esc := p.s[p.i+1]
			switch esc {
			case '"', '\\', '/':
				b.WriteByte(esc)
				p.i += 2
			case 'b':
				b.WriteByte('\b')
				p.i += 2
			case 'f':
				b.WriteByte('\f')
				p.i += 2
			case 'n':
				b.WriteByte('\n')
				p.i += 2
			case 'r':
				b.WriteByte('\r')
				p.i += 2
			case 't':
				b.WriteByte('\t')
				p.i += 2
			case 'u':
				r, err := p.unicodeEscape()
				if err != nil {
					return "", err
				}
				b.WriteRune(r)
			default:
				return "", &parseError{off: p.i, msg: fmt.Sprintf("invalid escape sequence \\%c", esc)}
			}
		case c < 0x20:
			return "", &parseError{off: p.i, msg: fmt.Sprintf("unescaped control character %#02x in string", c)}
		default:
			b.WriteByte(c)
			p.i++
		}
	}
}

// unicodeEscape decodes \uXXXX, pairing surrogates when a low half follows.
func (p *parser) unicodeEscape() (rune, *parseError) {
	r1, err := p.hex4(p.i + 2)
	if err != nil {
		return 0, err
	}
	p.i += 6
	if utf16.IsSurrogate(r1) {
		if p.i+1 < len(p.s) && p.s[p.i] == '\\' && p.s[p.i+1] == 'u' {
			r2, err := p.hex4(p.i + 2)
			if err != nil {
				return 0, err
			}
			if paired := utf16.DecodeRune(r1, r2); paired != utf8.RuneError {
				p.i += 6
				return paired, nil
			}
		}
		return utf8.RuneError, nil
	}
	return r1, nil
}

func (p *parser) hex4(at int) (rune, *parseError) {
	if at+4 > len(p.s) {
		return 0, p.eof()
	}
	var r rune
	for i := at; i < at+4; i++ {
		c := p.s[i]
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		default:
			return 0, &parseError{off: i, msg: fmt.Sprintf("invalid unicode escape digit %q", c)}
		}
	}
	return r, nil
}

func (p *parser) number() (Value, *parseError) {
	start := p.i
	if p.s[p.i] == '-' {
		p.i++
	}
	switch {
	case p.i >= len(p.s):
		return Value{}, p.eof()
	case p.s[p.i] == '0':
		p.i++
	case p.s[p.i] >= '1' && p.s[p.i] <= '9':
		for p.i < len(p.s) && isDigit(p.s[p.i]) {
			p.i++
		}
	default:
		return Value{}, &parseError{off: p.i, msg: fmt.Sprintf("invalid number character %q", p.s[p.i])}
	}
	if p.i < len(p.s) && p.s[p.i] == '.' {
		p.i++
		if p.i >= len(p.s) {
			return Value{}, p.eof()
		}
		if !isDigit(p.s[p.i]) {
			return Value{}, &parseError{off: p.i, msg: "expected digit after decimal point"}
		}
		for p.i < len(p.s) && isDigit(p.s[p.i]) {
			p.i++
		}
	}
	if p.i < len(p.s) && (p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		p.i++
		if p.i < len(p.s) && (p.s[p.i] == '+' || p.s[p.i] == '-') {
			p.i++
		}
		if p.i >= len(p.s) {
			return Value{}, p.eof()
		}
		if !isDigit(p.s[p.i]) {
			return Value{}, &parseError{off: p.i, msg: "expected digit in exponent"}
		}
		for p.i < len(p.s) && isDigit(p.s[p.i]) {
			p.i++
		}
	}
	return Number(json.Number(p.s[start:p.i])), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
