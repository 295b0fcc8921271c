package gosparql

import (
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	foafName = "http://xmlns.com/foaf/0.1/name"
	foafAge  = "http://xmlns.com/foaf/0.1/age"

	peopleJSON = `{
  "head": { "vars": [ "name", "age" ] },
  "results": { "bindings": [
    { "name": { "type": "literal", "value": "Alice", "xml:lang": "en" },
      "age": { "type": "literal", "value": "30", "datatype": "http://www.w3.org/2001/XMLSchema#int" } },
    { "name": { "type": "literal", "value": "Bob" } }
  ] }
}`
	peopleXML = `<?xml version="1.0"?>
<sparql xmlns="http://www.w3.org/2005/sparql-results#">
  <head><variable name="name"/><variable name="age"/></head>
  <results>
    <result>
      <binding name="name"><literal xml:lang="en">Alice</literal></binding>
      <binding name="age"><literal datatype="http://www.w3.org/2001/XMLSchema#int">30</literal></binding>
    </result>
    <result>
      <binding name="name"><literal>Bob</literal></binding>
    </result>
  </results>
</sparql>`
	askTrueJSON = `{ "head": {}, "boolean": true }`
	graphNT     = "<http://example.org/a> <http://example.org/p> \"x\" .\n<http://example.org/b> <http://example.org/p> <http://example.org/a> .\n"
)

type recordedRequest struct {
	header http.Header
	form   url.Values
}

// fakeEndpoint is a SPARQL protocol endpoint answering every request with
// the same response.
type fakeEndpoint struct {
	*httptest.Server

	contentType string
	status      int
	body        string
	handle      func(w http.ResponseWriter, r *http.Request) bool

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeEndpoint(t *testing.T, contentType, body string) *fakeEndpoint {
	ep := &fakeEndpoint{contentType: contentType, status: http.StatusOK, body: body}
	ep.Server = httptest.NewServer(http.HandlerFunc(ep.serve))
	t.Cleanup(ep.Close)
	return ep
}

func (ep *fakeEndpoint) serve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ep.mu.Lock()
	ep.requests = append(ep.requests, recordedRequest{header: r.Header.Clone(), form: r.PostForm})
	ep.mu.Unlock()
	if ep.handle != nil && ep.handle(w, r) {
		return
	}
	if ep.contentType != "" {
		w.Header().Set("Content-Type", ep.contentType)
	}
	w.WriteHeader(ep.status)
	io.WriteString(w, ep.body)
}

func (ep *fakeEndpoint) requestCount() int {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	return len(ep.requests)
}

func (ep *fakeEndpoint) lastRequest(t *testing.T) recordedRequest {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	require.NotEmpty(t, ep.requests, "no request reached the endpoint")
	return ep.requests[len(ep.requests)-1]
}

// dsn returns the DSN of the endpoint with the given query string.
func (ep *fakeEndpoint) dsn(params string) string {
	dsn := ep.URL + "/sparql"
	if params != "" {
		dsn += "?" + params
	}
	return dsn
}

func openDB(t *testing.T, dsn string) *sql.DB {
	db, err := sql.Open("sparql", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}
