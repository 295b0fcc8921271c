package results

import (
	"io"
	"mime"
	"strings"

	"github.com/rdfsql/gosparql/sparqlerr"
)

// Format is a result serialization.
type Format int

const (
	// FormatUnknown is a serialization this package cannot decode.
	FormatUnknown Format = iota
	// FormatJSON is SPARQL 1.1 Query Results JSON.
	FormatJSON
	// FormatXML is SPARQL Query Results XML.
	FormatXML
	// FormatNTriples is N-Triples, used for graph results.
	FormatNTriples
)

// Media types of the supported formats.
const (
	MediaTypeJSON     = "application/sparql-results+json"
	MediaTypeXML      = "application/sparql-results+xml"
	MediaTypeNTriples = "application/n-triples"
)

var mediaTypeFormats = map[string]Format{
	MediaTypeJSON:          FormatJSON,
	"application/json":     FormatJSON,
	MediaTypeXML:           FormatXML,
	"application/xml":      FormatXML,
	"text/xml":             FormatXML,
	MediaTypeNTriples:      FormatNTriples,
	"text/plain":           FormatNTriples,
	"application/ntriples": FormatNTriples,
}

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	case FormatNTriples:
		return "ntriples"
	}
	return "unknown"
}

// MediaType returns the canonical media type of the format.
func (f Format) MediaType() string {
	switch f {
	case FormatJSON:
		return MediaTypeJSON
	case FormatXML:
		return MediaTypeXML
	case FormatNTriples:
		return MediaTypeNTriples
	}
	return ""
}

// ParseFormat takes a format name as used in the DSN, "json" or "xml".
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, true
	case "xml":
		return FormatXML, true
	case "ntriples", "n-triples":
		return FormatNTriples, true
	}
	return FormatUnknown, false
}

// FormatOf returns the format named by a Content-Type header value.
func FormatOf(contentType string) Format {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatUnknown
	}
	return mediaTypeFormats[strings.ToLower(mt)]
}

// Decode opens body as a result of the given format. On error body is closed.
func Decode(format Format, body io.ReadCloser) (Source, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(body)
	case FormatXML:
		return DecodeXML(body)
	case FormatNTriples:
		return DecodeNTriples(body), nil
	}
	body.Close()
	return nil, &sparqlerr.Error{
		Number:      sparqlerr.ErrCodeUnsupportedContentType,
		SQLState:    sparqlerr.SQLStateConnectionFailure,
		Kind:        sparqlerr.KindExecutionFailed,
		Message:     "unsupported result format %v",
		MessageArgs: []interface{}{format},
	}
}
