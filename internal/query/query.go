package query

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

type pieceKind int

const (
	pieceText pieceKind = iota
	piecePositional
	pieceVariable
)

type piece struct {
	kind pieceKind
	text string
	// name is the variable name without its sigil.
	name string
}

// Query is an analyzed query text.
type Query struct {
	Text string
	Form Form

	pieces      []piece
	positionals int
	variables   map[string]bool
}

// Parse analyzes text. Strings, IRIs and comments are skipped when looking for
// placeholders. A positional placeholder is a '?' standing alone: preceded by
// the start of the text, whitespace, '(' or ',' and followed by the end of the
// text, whitespace or one of "),.;}".
func Parse(text string) (*Query, error) {
	form, err := DetectForm(text)
	if err != nil {
		return nil, err
	}
	q := &Query{Text: text, Form: form, variables: make(map[string]bool)}
	if err = q.scan(); err != nil {
		return nil, err
	}
	return q, nil
}

// NumInput returns the number of positional placeholders.
func (q *Query) NumInput() int {
	return q.positionals
}

// HasVariable reports whether ?name or $name occurs in the text.
func (q *Query) HasVariable(name string) bool {
	return q.variables[trimSigil(name)]
}

func (q *Query) scan() error {
	text := q.Text
	start := 0
	flush := func(end int) {
		if end > start {
			q.pieces = append(q.pieces, piece{kind: pieceText, text: text[start:end]})
		}
	}
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == '#':
			if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
				i += nl + 1
			} else {
				i = len(text)
			}
		case c == '"' || c == '\'':
			end, err := stringEnd(text, i)
			if err != nil {
				return err
			}
			i = end
		case c == '<':
			if end, ok := iriEnd(text, i); ok {
				i = end
			} else {
				i++
			}
		case c == '?' && isPositional(text, i):
			flush(i)
			q.pieces = append(q.pieces, piece{kind: piecePositional, text: "?"})
			q.positionals++
			i++
			start = i
		case c == '?' || c == '$':
			end := variableEnd(text, i+1)
			if end == i+1 {
				i++
				continue
			}
			flush(i)
			name := text[i+1 : end]
			q.pieces = append(q.pieces, piece{kind: pieceVariable, text: text[i:end], name: name})
			q.variables[name] = true
			i = end
			start = i
		default:
			i++
		}
	}
	flush(len(text))
	return nil
}

// Bind returns the text with positional placeholders replaced, in order, by
// positional and variables replaced by the matching named terms. Every
// placeholder must be bound and every name must occur in the text.
func (q *Query) Bind(positional []rdf.Term, named map[string]rdf.Term) (string, error) {
	if len(positional) < q.positionals {
		return "", sparqlerr.InvalidParameter(sparqlerr.ErrCodeUnboundParameter,
			"parameter %d is not bound, query has %d placeholders", len(positional)+1, q.positionals)
	}
	if len(positional) > q.positionals {
		return "", sparqlerr.InvalidParameter(sparqlerr.ErrCodeParameterIndex,
			"parameter %d does not exist, query has %d placeholders", q.positionals+1, q.positionals)
	}
	vars := make(map[string]rdf.Term, len(named))
	for name, t := range named {
		name = trimSigil(name)
		if !q.variables[name] {
			return "", sparqlerr.InvalidParameter(sparqlerr.ErrCodeParameterIndex, "query has no variable named %q", name)
		}
		vars[name] = t
	}
	for i, t := range positional {
		if t == nil {
			return "", sparqlerr.NullParameter(i + 1)
		}
	}

	var b strings.Builder
	b.Grow(len(q.Text))
	next := 0
	for _, p := range q.pieces {
		switch p.kind {
		case piecePositional:
			b.WriteString(positional[next].String())
			next++
		case pieceVariable:
			if t, ok := vars[p.name]; ok {
				if t == nil {
					return "", sparqlerr.NullParameter(p.name)
				}
				b.WriteString(t.String())
			} else {
				b.WriteString(p.text)
			}
		default:
			b.WriteString(p.text)
		}
	}
	return b.String(), nil
}

func trimSigil(name string) string {
	return strings.TrimLeft(name, "?$")
}

func isPositional(text string, i int) bool {
	if i > 0 {
		prev := text[i-1]
		if !isSpace(prev) && prev != '(' && prev != ',' {
			return false
		}
	}
	if i+1 < len(text) {
		next := text[i+1]
		if !isSpace(next) && !strings.ContainsRune("),.;}", rune(next)) {
			return false
		}
	}
	return true
}

// variableEnd returns the end of the variable name starting at i.
func variableEnd(text string, i int) int {
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '·' {
			break
		}
		i += size
	}
	return i
}

// iriEnd returns the offset after the '>' closing an IRI that starts at i.
// ok is false when the '<' is a comparison operator instead.
func iriEnd(text string, i int) (int, bool) {
	if i >= len(text) || text[i] != '<' {
		return 0, false
	}
	for j := i + 1; j < len(text); j++ {
		switch c := text[j]; {
		case c == '>':
			return j + 1, true
		case isSpace(c) || strings.IndexByte("<\"{}|^`", c) >= 0:
			return 0, false
		}
	}
	return 0, false
}

// stringEnd returns the offset after the string literal starting at i.
func stringEnd(text string, i int) (int, error) {
	quote := text[i]
	long := strings.HasPrefix(text[i:], strings.Repeat(string(quote), 3))
	j := i + 1
	if long {
		j = i + 3
	}
	for j < len(text) {
		c := text[j]
		switch {
		case c == '\\':
			j += 2
			continue
		case c == quote && long:
			if strings.HasPrefix(text[j:], strings.Repeat(string(quote), 3)) {
				return j + 3, nil
			}
		case c == quote:
			return j + 1, nil
		case !long && (c == '\n' || c == '\r'):
			return 0, syntaxError("unterminated string at offset %d", i)
		}
		j++
	}
	return 0, syntaxError("unterminated string at offset %d", i)
}
