package results

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

type xmlHead struct {
	Variables []struct {
		Name string `xml:"name,attr"`
	} `xml:"variable"`
}

type xmlResult struct {
	Bindings []xmlBinding `xml:"binding"`
}

type xmlBinding struct {
	Name    string      `xml:"name,attr"`
	URI     *string     `xml:"uri"`
	BNode   *string     `xml:"bnode"`
	Literal *xmlLiteral `xml:"literal"`
}

type xmlLiteral struct {
	Value    string `xml:",chardata"`
	Datatype string `xml:"datatype,attr"`
	Lang     string `xml:"lang,attr"`
}

func (b xmlBinding) term() (rdf.Term, error) {
	switch {
	case b.URI != nil:
		return rdf.NewIRI(strings.TrimSpace(*b.URI)), nil
	case b.BNode != nil:
		return rdf.NewBlankNode(strings.TrimSpace(*b.BNode)), nil
	case b.Literal != nil:
		l := b.Literal
		switch {
		case l.Lang != "":
			return rdf.NewLangLiteral(l.Value, l.Lang), nil
		case l.Datatype != "":
			return rdf.NewTypedLiteral(l.Value, rdf.NewIRI(l.Datatype)), nil
		}
		return rdf.NewLiteral(l.Value), nil
	}
	return nil, sparqlerr.MalformedResponse(nil, "binding %q has no term", b.Name)
}

// DecodeXML reads the head of a SPARQL Query Results XML document from body.
// Like DecodeJSON, boolean results are read eagerly and bindings are streamed.
func DecodeXML(body io.ReadCloser) (Source, error) {
	dec := xml.NewDecoder(body)
	src, err := openXML(dec, body)
	if err != nil {
		body.Close()
		return nil, err
	}
	return src, nil
}

func openXML(dec *xml.Decoder, body io.Closer) (Source, error) {
	var vars []string
	headSeen := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, sparqlerr.MalformedResponse(nil, "response has neither results nor boolean")
		}
		if err != nil {
			return nil, sparqlerr.MalformedResponse(err, "invalid XML result")
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "sparql":
		case "head":
			var head xmlHead
			if err = dec.DecodeElement(&head, &start); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid head")
			}
			for _, v := range head.Variables {
				vars = append(vars, v.Name)
			}
			headSeen = true
		case "boolean":
			var text string
			if err = dec.DecodeElement(&text, &start); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid boolean result")
			}
			var value bool
			switch strings.TrimSpace(text) {
			case "true":
				value = true
			case "false":
			default:
				return nil, sparqlerr.MalformedResponse(nil, "invalid boolean result %q", text)
			}
			body.Close()
			return NewBoolean(value), nil
		case "results":
			if !headSeen {
				return nil, sparqlerr.MalformedResponse(nil, "results appear before head")
			}
			index, err := columnIndex(vars)
			if err != nil {
				return nil, err
			}
			return newStream(FormSelect, vars, body, func() (Row, error) {
				return nextResult(dec, vars, index)
			}), nil
		default:
			if err = dec.Skip(); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid element %v", start.Name.Local)
			}
		}
	}
}

func nextResult(dec *xml.Decoder, vars []string, index map[string]int) (Row, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, sparqlerr.MalformedResponse(io.ErrUnexpectedEOF, "results element is not closed")
		}
		if err != nil {
			return nil, sparqlerr.MalformedResponse(err, "invalid result")
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "results" {
				return nil, io.EOF
			}
		case xml.StartElement:
			if t.Name.Local != "result" {
				if err = dec.Skip(); err != nil {
					return nil, sparqlerr.MalformedResponse(err, "invalid element %v", t.Name.Local)
				}
				continue
			}
			var result xmlResult
			if err = dec.DecodeElement(&result, &t); err != nil {
				return nil, sparqlerr.MalformedResponse(err, "invalid result")
			}
			row := make(Row, len(vars))
			for _, b := range result.Bindings {
				i, ok := index[b.Name]
				if !ok {
					return nil, sparqlerr.MalformedResponse(nil, "binding for undeclared variable %q", b.Name)
				}
				term, err := b.term()
				if err != nil {
					return nil, err
				}
				row[i] = term
			}
			return row, nil
		}
	}
}
