package results

import (
	"encoding/json"
	"io"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

// jsonTerm is one RDF term in the SPARQL 1.1 Query Results JSON format.
type jsonTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

type jsonHead struct {
	Vars []string `json:"vars"`
	Link []string `json:"link,omitempty"`
}

func (jt jsonTerm) term() (rdf.Term, error) {
	switch jt.Type {
	case "uri":
		return rdf.NewIRI(jt.Value), nil
	case "bnode":
		return rdf.NewBlankNode(jt.Value), nil
	case "literal", "typed-literal":
		switch {
		case jt.Lang != "":
			return rdf.NewLangLiteral(jt.Value, jt.Lang), nil
		case jt.Datatype != "":
			return rdf.NewTypedLiteral(jt.Value, rdf.NewIRI(jt.Datatype)), nil
		}
		return rdf.NewLiteral(jt.Value), nil
	}
	return nil, sparqlerr.MalformedResponse(nil, "unknown term type %q", jt.Type)
}

// DecodeJSON reads the head of a SPARQL JSON result from body. A boolean
// result is read completely and body is closed; a bindings result is returned
// as a streaming source that owns body. The head must come before the results.
func DecodeJSON(body io.ReadCloser) (Source, error) {
	dec := json.NewDecoder(body)
	src, err := openJSON(dec, body)
	if err != nil {
		body.Close()
		return nil, err
	}
	return src, nil
}

func openJSON(dec *json.Decoder, body io.Closer) (Source, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var head *jsonHead
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "head":
			head = &jsonHead{}
			if err = dec.Decode(head); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid head")
			}
		case "boolean":
			var value bool
			if err = dec.Decode(&value); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid boolean result")
			}
			body.Close()
			return NewBoolean(value), nil
		case "results":
			if head == nil {
				return nil, sparqlerr.MalformedResponse(nil, "results appear before head")
			}
			return openBindings(dec, body, head.Vars)
		default:
			var skipped json.RawMessage
			if err = dec.Decode(&skipped); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid member %q", key)
			}
		}
	}
	return nil, sparqlerr.MalformedResponse(nil, "response has neither results nor boolean")
}

func openBindings(dec *json.Decoder, body io.Closer, vars []string) (Source, error) {
	index, err := columnIndex(vars)
	if err != nil {
		return nil, err
	}
	if err = expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		if key != "bindings" {
			var skipped json.RawMessage
			if err = dec.Decode(&skipped); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid member %q", key)
			}
			continue
		}
		if err = expectDelim(dec, '['); err != nil {
			return nil, err
		}
		return newStream(FormSelect, vars, body, func() (Row, error) {
			return nextBinding(dec, vars, index)
		}), nil
	}
	// no bindings member at all: an empty result
	body.Close()
	return &Materialized{form: FormSelect, columns: vars}, nil
}

func nextBinding(dec *json.Decoder, vars []string, index map[string]int) (Row, error) {
	if !dec.More() {
		if err := expectDelim(dec, ']'); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	var binding map[string]jsonTerm
	if err := dec.Decode(&binding); err != nil {
		return nil, sparqlerr.MalformedResponse(err, "invalid binding")
	}
	row := make(Row, len(vars))
	for name, jt := range binding {
		i, ok := index[name]
		if !ok {
			return nil, sparqlerr.MalformedResponse(nil, "binding for undeclared variable %q", name)
		}
		t, err := jt.term()
		if err != nil {
			return nil, err
		}
		row[i] = t
	}
	return row, nil
}

func columnIndex(vars []string) (map[string]int, error) {
	index := make(map[string]int, len(vars))
	for i, v := range vars {
		if _, dup := index[v]; dup {
			return nil, sparqlerr.MalformedResponse(nil, "variable %q is declared twice", v)
		}
		index[v] = i
	}
	return index, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return sparqlerr.MalformedResponse(err, "expected %v", want)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return sparqlerr.MalformedResponse(nil, "expected %v, got %v", want, tok)
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", sparqlerr.MalformedResponse(err, "expected object key")
	}
	key, ok := tok.(string)
	if !ok {
		return "", sparqlerr.MalformedResponse(nil, "expected object key, got %v", tok)
	}
	return key, nil
}
