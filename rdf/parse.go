package rdf

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rdfsql/gosparql/sparqlerr"
)

// ParseTerm parses the canonical N-Triples form of a single term. Only IRIs in
// angle brackets, blank nodes and double-quoted literals are accepted; Turtle
// shorthands such as single-quoted strings, bare numbers and bare booleans are
// rejected with a Format error.
func ParseTerm(s string) (Term, error) {
	p := &termParser{input: strings.Trim(s, " \t\r\n")}
	if p.input == "" {
		return nil, syntaxError(0, "empty term")
	}
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.input) {
		return nil, syntaxError(p.pos, "unexpected trailing content %q", p.input[p.pos:])
	}
	return t, nil
}

// MustParseTerm is like ParseTerm but panics on error. Intended for constants in tests.
func MustParseTerm(s string) Term {
	t, err := ParseTerm(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTriple parses one N-Triples statement: subject, predicate, object and a
// terminating '.', optionally followed by a comment.
func ParseTriple(line string) (Triple, error) {
	p := &termParser{input: line}
	p.skipSpace()
	subject, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	if subject.Kind() == KindLiteral {
		return Triple{}, syntaxError(0, "literal not allowed as subject")
	}
	if !p.requireSpace() {
		return Triple{}, syntaxError(p.pos, "expected whitespace after subject")
	}
	predicate, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	if predicate.Kind() != KindIRI {
		return Triple{}, syntaxError(p.pos, "predicate must be an IRI")
	}
	if !p.requireSpace() {
		return Triple{}, syntaxError(p.pos, "expected whitespace after predicate")
	}
	object, err := p.term()
	if err != nil {
		return Triple{}, err
	}
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '.' {
		return Triple{}, syntaxError(p.pos, "expected '.' at end of statement")
	}
	p.pos++
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] != '#' {
		return Triple{}, syntaxError(p.pos, "unexpected trailing content %q", p.input[p.pos:])
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

func syntaxError(pos int, format string, args ...interface{}) *sparqlerr.Error {
	err := sparqlerr.Syntax(format, args...)
	if pos > 0 {
		err.Message = err.Message + " at offset %d"
		err.MessageArgs = append(err.MessageArgs, pos)
	}
	return err
}

type termParser struct {
	input string
	pos   int
}

func (p *termParser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *termParser) requireSpace() bool {
	start := p.pos
	p.skipSpace()
	return p.pos > start
}

func (p *termParser) term() (Term, error) {
	if p.pos >= len(p.input) {
		return nil, syntaxError(p.pos, "unexpected end of input")
	}
	c := p.input[p.pos]
	switch {
	case c == '<':
		v, err := p.iriRef()
		if err != nil {
			return nil, err
		}
		return IRI{Value: v}, nil
	case c == '_':
		return p.blankNode()
	case c == '"':
		return p.literal()
	case c == '\'':
		return nil, syntaxError(p.pos, "single-quoted literals are not allowed")
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return nil, syntaxError(p.pos, "bare numeric literals are not allowed")
	case strings.HasPrefix(p.input[p.pos:], "true") || strings.HasPrefix(p.input[p.pos:], "false"):
		return nil, syntaxError(p.pos, "bare boolean literals are not allowed")
	}
	return nil, syntaxError(p.pos, "unexpected character %q", c)
}

func (p *termParser) iriRef() (string, error) {
	start := p.pos
	p.pos++ // '<'
	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == '>':
			p.pos++
			return b.String(), nil
		case c == '\\':
			r, err := p.uchar()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		case isForbiddenInIRI(c):
			return "", syntaxError(p.pos, "character %q not allowed in IRI", c)
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", syntaxError(start, "unterminated IRI")
}

// uchar decodes \uXXXX or \UXXXXXXXX at the current position.
func (p *termParser) uchar() (rune, error) {
	if p.pos+1 >= len(p.input) {
		return 0, syntaxError(p.pos, "incomplete escape sequence")
	}
	var n int
	switch p.input[p.pos+1] {
	case 'u':
		n = 4
	case 'U':
		n = 8
	default:
		return 0, syntaxError(p.pos, "invalid escape sequence \\%c", p.input[p.pos+1])
	}
	start := p.pos + 2
	if start+n > len(p.input) {
		return 0, syntaxError(p.pos, "incomplete unicode escape")
	}
	hex := p.input[start : start+n]
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, syntaxError(p.pos, "invalid unicode escape %q", hex)
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, syntaxError(p.pos, "invalid code point U+%X", v)
	}
	p.pos = start + n
	return r, nil
}

func (p *termParser) blankNode() (Term, error) {
	if !strings.HasPrefix(p.input[p.pos:], "_:") {
		return nil, syntaxError(p.pos, "expected '_:'")
	}
	p.pos += 2
	start := p.pos
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		first := p.pos == start
		if !isBlankLabelRune(r, first) {
			break
		}
		p.pos += size
	}
	// a label cannot end with '.', the dot terminates the statement
	for p.pos > start && p.input[p.pos-1] == '.' {
		p.pos--
	}
	if p.pos == start {
		return nil, syntaxError(start, "empty blank node label")
	}
	return BlankNode{Label: p.input[start:p.pos]}, nil
}

func isBlankLabelRune(r rune, first bool) bool {
	switch {
	case r == utf8.RuneError:
		return false
	case r == '_' || (r >= '0' && r <= '9'):
		return true
	case r < 0x80 && unicode.IsLetter(r):
		return true
	case r >= 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		return true
	case first:
		return false
	case r == '-' || r == '.' || r == 0xB7:
		return true
	}
	return false
}

func (p *termParser) literal() (Term, error) {
	start := p.pos
	p.pos++ // '"'
	var b strings.Builder
	closed := false
	for p.pos < len(p.input) && !closed {
		c := p.input[p.pos]
		switch c {
		case '"':
			p.pos++
			closed = true
		case '\n', '\r':
			return nil, syntaxError(p.pos, "raw line break in literal")
		case '\\':
			if p.pos+1 >= len(p.input) {
				return nil, syntaxError(p.pos, "incomplete escape sequence")
			}
			switch e := p.input[p.pos+1]; e {
			case 't':
				b.WriteByte('\t')
			case 'b':
				b.WriteByte('\b')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 'f':
				b.WriteByte('\f')
			case '"', '\'', '\\':
				b.WriteByte(e)
			case 'u', 'U':
				r, err := p.uchar()
				if err != nil {
					return nil, err
				}
				b.WriteRune(r)
				continue
			default:
				return nil, syntaxError(p.pos, "invalid escape sequence \\%c", e)
			}
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	if !closed {
		return nil, syntaxError(start, "unterminated literal")
	}
	lexical := b.String()
	if p.pos >= len(p.input) {
		return NewLiteral(lexical), nil
	}
	switch {
	case p.input[p.pos] == '@':
		lang, err := p.langTag()
		if err != nil {
			return nil, err
		}
		return Literal{Lexical: lexical, Datatype: RDFLangString, Lang: lang}, nil
	case strings.HasPrefix(p.input[p.pos:], "^^"):
		p.pos += 2
		if p.pos >= len(p.input) || p.input[p.pos] != '<' {
			return nil, syntaxError(p.pos, "expected datatype IRI after '^^'")
		}
		dt, err := p.iriRef()
		if err != nil {
			return nil, err
		}
		if dt == "" {
			return nil, syntaxError(p.pos, "empty datatype IRI")
		}
		if dt == RDFLangString.Value {
			return nil, syntaxError(p.pos, "rdf:langString requires a language tag")
		}
		return NewTypedLiteral(lexical, IRI{Value: dt}), nil
	}
	return NewLiteral(lexical), nil
}

// langTag reads '@' [a-zA-Z]+ ('-' [a-zA-Z0-9]+)*.
func (p *termParser) langTag() (string, error) {
	p.pos++ // '@'
	start := p.pos
	for p.pos < len(p.input) && isASCIILetter(p.input[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return "", syntaxError(start, "invalid language tag")
	}
	for p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
		subtag := p.pos
		for p.pos < len(p.input) && (isASCIILetter(p.input[p.pos]) || isASCIIDigit(p.input[p.pos])) {
			p.pos++
		}
		if p.pos == subtag {
			return "", syntaxError(subtag, "empty language subtag")
		}
	}
	return p.input[start:p.pos], nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isASCIIDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
