// Package query analyzes SPARQL query text: it detects the query form and
// binds parameters by substituting canonical RDF terms for placeholders.
package query

import (
	"strings"

	"github.com/rdfsql/gosparql/sparqlerr"
)

// Form is the kind of operation a query text performs.
type Form int

const (
	// FormUnknown is a text whose form could not be determined.
	FormUnknown Form = iota
	// FormSelect returns variable bindings.
	FormSelect
	// FormAsk returns a boolean.
	FormAsk
	// FormConstruct returns a graph built from a template.
	FormConstruct
	// FormDescribe returns a graph describing resources.
	FormDescribe
	// FormUpdate modifies the store.
	FormUpdate
)

var formNames = map[Form]string{
	FormUnknown:   "UNKNOWN",
	FormSelect:    "SELECT",
	FormAsk:       "ASK",
	FormConstruct: "CONSTRUCT",
	FormDescribe:  "DESCRIBE",
	FormUpdate:    "UPDATE",
}

func (f Form) String() string {
	return formNames[f]
}

// IsGraph reports whether the form returns triples.
func (f Form) IsGraph() bool {
	return f == FormConstruct || f == FormDescribe
}

var keywordForms = map[string]Form{
	"SELECT":    FormSelect,
	"ASK":       FormAsk,
	"CONSTRUCT": FormConstruct,
	"DESCRIBE":  FormDescribe,
	"INSERT":    FormUpdate,
	"DELETE":    FormUpdate,
	"LOAD":      FormUpdate,
	"CLEAR":     FormUpdate,
	"CREATE":    FormUpdate,
	"DROP":      FormUpdate,
	"COPY":      FormUpdate,
	"MOVE":      FormUpdate,
	"ADD":       FormUpdate,
	"WITH":      FormUpdate,
}

// DetectForm skips the BASE and PREFIX prologue and comments and returns the
// form named by the first keyword.
func DetectForm(text string) (Form, error) {
	p := &prologue{text: text}
	for {
		p.skipSpaceAndComments()
		word := p.word()
		switch strings.ToUpper(word) {
		case "":
			return FormUnknown, syntaxError("query has no SELECT, ASK, CONSTRUCT or DESCRIBE keyword")
		case "BASE":
			if !p.skipIRI() {
				return FormUnknown, syntaxError("BASE must be followed by an IRI")
			}
		case "PREFIX":
			if !p.skipPrefixName() || !p.skipIRI() {
				return FormUnknown, syntaxError("malformed PREFIX declaration")
			}
		default:
			if form, ok := keywordForms[strings.ToUpper(word)]; ok {
				return form, nil
			}
			return FormUnknown, syntaxError("unexpected keyword %q", word)
		}
	}
}

type prologue struct {
	text string
	pos  int
}

func (p *prologue) skipSpaceAndComments() {
	for p.pos < len(p.text) {
		c := p.text[p.pos]
		switch {
		case isSpace(c):
			p.pos++
		case c == '#':
			if nl := strings.IndexByte(p.text[p.pos:], '\n'); nl >= 0 {
				p.pos += nl + 1
			} else {
				p.pos = len(p.text)
			}
		default:
			return
		}
	}
}

func (p *prologue) word() string {
	start := p.pos
	for p.pos < len(p.text) && isASCIILetter(p.text[p.pos]) {
		p.pos++
	}
	return p.text[start:p.pos]
}

func (p *prologue) skipIRI() bool {
	p.skipSpaceAndComments()
	end, ok := iriEnd(p.text, p.pos)
	if ok {
		p.pos = end
	}
	return ok
}

// skipPrefixName skips "pfx:" including the empty prefix ":".
func (p *prologue) skipPrefixName() bool {
	p.skipSpaceAndComments()
	colon := strings.IndexByte(p.text[p.pos:], ':')
	if colon < 0 || strings.ContainsAny(p.text[p.pos:p.pos+colon], " \t\r\n<>") {
		return false
	}
	p.pos += colon + 1
	return true
}

func syntaxError(format string, args ...interface{}) *sparqlerr.Error {
	return &sparqlerr.Error{
		Number:      sparqlerr.ErrCodeQuerySyntax,
		SQLState:    sparqlerr.SQLStateSyntaxError,
		Kind:        sparqlerr.KindFormat,
		Message:     format,
		MessageArgs: args,
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
