package ras

import (
	"regexp"
	"strconv"
	"strings"
)

// scanState is the field decoder's quoting state.
type scanState uint8

const (
	stateUnquoted scanState = iota
	stateQuoted
)

// floatLiteral matches decimal literals with a fractional part and an
// optional exponent. Forms such as "1e5", "Inf" or hex floats stay strings.
var floatLiteral = regexp.MustCompile(`^[+-]?(?:[0-9]+\.[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$`)

// DecodeLine splits one record line into typed fields with the default
// parser.
func DecodeLine(raw string) ([]Value, error) {
	return defaultParser.DecodeLine(raw)
}

// Coerce types one unquoted literal with the default parser.
func Coerce(text string) Value {
	return defaultParser.Coerce(text)
}

// DecodeLine splits one record line into typed fields.
//
// A field is either entirely quoted or entirely unquoted. Inside quotes a
// comma is content; there is no escape for the quote character itself.
// Whitespace around an unquoted field, and around the quotes of a quoted
// field, is dropped.
func (p *Parser) DecodeLine(raw string) ([]Value, error) {
	var (
		fields   []Value
		buf      strings.Builder
		state    = stateUnquoted
		quoted   bool // the current field was a quoted literal
		quoteCol int
	)

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if state == stateQuoted {
			if c == '"' {
				state = stateUnquoted
				continue
			}
			buf.WriteByte(c)
			continue
		}

		switch {
		case c == ',':
			fields = append(fields, p.closeField(buf.String(), quoted))
			buf.Reset()
			quoted = false
		case c == '"':
			if quoted {
				return nil, formatError(i+1, "quote after the end of quoted field %d", len(fields)+1)
			}
			if strings.TrimSpace(buf.String()) != "" {
				return nil, formatError(i+1, "field %d mixes unquoted text %q with a quoted literal",
					len(fields)+1, strings.TrimSpace(buf.String()))
			}
			buf.Reset()
			quoted = true
			quoteCol = i + 1
			state = stateQuoted
		case quoted:
			if !isBlank(c) {
				return nil, formatError(i+1, "unquoted text after quoted field %d", len(fields)+1)
			}
		default:
			buf.WriteByte(c)
		}
	}

	if state == stateQuoted {
		return nil, formatError(quoteCol, "unterminated quote in field %d", len(fields)+1)
	}

	fields = append(fields, p.closeField(buf.String(), quoted))
	return fields, nil
}

func (p *Parser) closeField(text string, quoted bool) Value {
	if quoted {
		return String(text)
	}
	return p.Coerce(strings.TrimSpace(text))
}

// Coerce types one unquoted, trimmed literal. The first match wins:
// boolean token, base-10 integer, decimal float, then bare string.
func (p *Parser) Coerce(text string) Value {
	switch text {
	case p.trueToken:
		return Boolean(true)
	case p.falseToken:
		return Boolean(false)
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Integer(i)
	}

	if floatLiteral.MatchString(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Float(f)
		}
	}

	return String(text)
}

func isBlank(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\v', '\f':
		return true
	}
	return false
}
