package rdf

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

func formatIRI(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('<')
	for i := 0; i < len(value); i++ {
		c := value[i]
		if isForbiddenInIRI(c) {
			writeUChar(&b, c)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('>')
	return b.String()
}

func formatLiteral(l Literal) string {
	var b strings.Builder
	b.Grow(len(l.Lexical) + 2)
	b.WriteByte('"')
	writeEscapedString(&b, l.Lexical)
	b.WriteByte('"')
	switch {
	case l.Lang != "":
		b.WriteByte('@')
		b.WriteString(l.Lang)
	case l.Datatype.Value != "" && l.Datatype != XSDString:
		b.WriteString("^^")
		b.WriteString(formatIRI(l.Datatype.Value))
	}
	return b.String()
}

// writeEscapedString applies canonical N-Triples escaping: ECHAR for
// backspace, tab, newline, form feed, carriage return, quote and backslash,
// UCHAR for the remaining control characters.
func writeEscapedString(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			if c < 0x20 || c == 0x7f {
				writeUChar(b, c)
				continue
			}
			b.WriteByte(c)
		}
	}
}

func writeUChar(b *strings.Builder, c byte) {
	b.WriteString(`\u00`)
	b.WriteByte(hexDigits[c>>4])
	b.WriteByte(hexDigits[c&0x0f])
}

func isForbiddenInIRI(c byte) bool {
	if c <= 0x20 {
		return true
	}
	switch c {
	case '<', '>', '"', '{', '}', '|', '^', '`', '\\':
		return true
	}
	return false
}

// Validate reports whether the term is well formed, i.e. whether its canonical
// form parses back to the same term.
func Validate(t Term) error {
	if t == nil {
		return fmt.Errorf("nil term")
	}
	parsed, err := ParseTerm(t.String())
	if err != nil {
		return err
	}
	if parsed != t {
		return errNotCanonical(t)
	}
	return nil
}

func errNotCanonical(t Term) error {
	return syntaxError(0, "term %v does not round-trip through its canonical form", t)
}
