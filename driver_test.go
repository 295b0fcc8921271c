package gosparql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/resultset"
	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

type person struct {
	name string
	age  sql.NullInt64
}

func scanPeople(t *testing.T, rows *sql.Rows) []person {
	defer rows.Close()
	var people []person
	for rows.Next() {
		var p person
		require.NoError(t, rows.Scan(&p.name, &p.age))
		people = append(people, p)
	}
	require.NoError(t, rows.Err())
	return people
}

func assertErrorCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("%06d", code))
}

var expectedPeople = []person{
	{name: "Alice", age: sql.NullInt64{Int64: 30, Valid: true}},
	{name: "Bob"},
}

func TestQuerySelect(t *testing.T) {
	for _, tc := range []struct {
		name, contentType, body string
	}{
		{"json", results.MediaTypeJSON, peopleJSON},
		{"xml", results.MediaTypeXML + "; charset=utf-8", peopleXML},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ep := newFakeEndpoint(t, tc.contentType, tc.body)
			db := openDB(t, ep.dsn(""))

			rows, err := db.QueryContext(context.Background(), "SELECT ?name ?age WHERE { ?p <"+foafName+"> ?name OPTIONAL { ?p <"+foafAge+"> ?age } }")
			require.NoError(t, err)
			columns, err := rows.Columns()
			require.NoError(t, err)
			assert.Equal(t, []string{"name", "age"}, columns)
			assert.Equal(t, expectedPeople, scanPeople(t, rows))

			req := ep.lastRequest(t)
			assert.Equal(t, headerContentTypeFormURLEncoded, req.header.Get("Content-Type"))
			assert.Equal(t, "application/sparql-results+json, application/sparql-results+xml;q=0.9", req.header.Get("Accept"))
			assert.True(t, strings.HasPrefix(req.header.Get("User-Agent"), "gosparql/"+SPARQLGoDriverVersion))
			_, err = uuid.Parse(req.header.Get("X-Request-Id"))
			assert.NoError(t, err)
			assert.Contains(t, req.form.Get("query"), "SELECT ?name ?age")
		})
	}
}

func TestQueryAsk(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, askTrueJSON)
	db := openDB(t, ep.dsn(""))

	var ok bool
	require.NoError(t, db.QueryRow("ASK { ?s ?p ?o }").Scan(&ok))
	assert.True(t, ok)
}

func TestQueryConstruct(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeNTriples, graphNT)
	db := openDB(t, ep.dsn(""))

	rows, err := db.Query("CONSTRUCT { ?s ?p ?o } WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	defer rows.Close()
	columns, err := rows.Columns()
	require.NoError(t, err)
	assert.Equal(t, results.GraphColumns, columns)

	var s, p, o string
	require.True(t, rows.Next())
	require.NoError(t, rows.Scan(&s, &p, &o))
	assert.Equal(t, []string{"http://example.org/a", "http://example.org/p", "x"}, []string{s, p, o})
	require.True(t, rows.Next())
	require.False(t, rows.Next())
	require.NoError(t, rows.Err())
	assert.Equal(t, results.MediaTypeNTriples, ep.lastRequest(t).header.Get("Accept"))
}

func TestResultFormatXMLPreference(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeXML, peopleXML)
	db := openDB(t, ep.dsn("resultFormat=xml"))

	rows, err := db.Query("SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Equal(t, expectedPeople, scanPeople(t, rows))
	assert.Equal(t, "application/sparql-results+xml, application/sparql-results+json;q=0.9", ep.lastRequest(t).header.Get("Accept"))
}

func TestResultFormatSniffing(t *testing.T) {
	for _, tc := range []struct {
		name, body string
	}{
		{"json", peopleJSON},
		{"xml", peopleXML},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ep := newFakeEndpoint(t, "application/octet-stream", tc.body)
			db := openDB(t, ep.dsn(""))
			rows, err := db.Query("SELECT * WHERE { ?s ?p ?o }")
			require.NoError(t, err)
			assert.Equal(t, expectedPeople, scanPeople(t, rows))
		})
	}

	t.Run("graph", func(t *testing.T) {
		ep := newFakeEndpoint(t, "text/plain", graphNT)
		db := openDB(t, ep.dsn(""))
		var n int
		rows, err := db.Query("DESCRIBE <http://example.org/a>")
		require.NoError(t, err)
		for rows.Next() {
			n++
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, 2, n)
	})

	t.Run("unknown", func(t *testing.T) {
		ep := newFakeEndpoint(t, "text/html", "<html><body>maintenance</body></html>")
		db := openDB(t, ep.dsn(""))
		_, err := db.Query("SELECT * WHERE { ?s ?p ?o }")
		assert.ErrorIs(t, err, &sparqlerr.Error{Kind: sparqlerr.KindExecutionFailed, Number: sparqlerr.ErrCodeUnsupportedContentType})
	})
}

func TestParameters(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	db := openDB(t, ep.dsn(""))

	rows, err := db.Query("SELECT ?name WHERE { ?p <"+foafName+"> ?name ; <"+foafAge+"> ? }", 30)
	require.NoError(t, err)
	rows.Close()
	assert.Equal(t,
		`SELECT ?name WHERE { ?p <`+foafName+`> ?name ; <`+foafAge+`> "30"^^<http://www.w3.org/2001/XMLSchema#integer> }`,
		ep.lastRequest(t).form.Get("query"))

	rows, err = db.Query("SELECT ?name WHERE { ?p <"+foafName+"> ?name FILTER(lang(?name) = ?) }",
		typemap.LangString{Value: "en"}, sql.Named("p", rdf.NewIRI("http://example.org/alice")))
	require.NoError(t, err)
	rows.Close()
	assert.Equal(t,
		`SELECT ?name WHERE { <http://example.org/alice> <`+foafName+`> ?name FILTER(lang(?name) = "en") }`,
		ep.lastRequest(t).form.Get("query"))

	// strings bind as xsd:string literals even when they look like IRIs
	rows, err = db.Query("SELECT ?p WHERE { ?p <"+foafName+"> ? }", "<http://example.org/alice>")
	require.NoError(t, err)
	rows.Close()
	assert.Equal(t,
		`SELECT ?p WHERE { ?p <`+foafName+`> "<http://example.org/alice>" }`,
		ep.lastRequest(t).form.Get("query"))

	stmt, err := db.Prepare("ASK { ?s <" + foafAge + "> ? }")
	require.NoError(t, err)
	defer stmt.Close()
	rows, err = stmt.Query(typemap.Typed{Value: 30, Type: typemap.SQLTypeTinyInt})
	require.NoError(t, err)
	rows.Close()
	assert.Equal(t, `ASK { ?s <`+foafAge+`> "30"^^<http://www.w3.org/2001/XMLSchema#byte> }`, ep.lastRequest(t).form.Get("query"))
}

func TestParameterErrors(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	db := openDB(t, ep.dsn(""))
	text := "SELECT * WHERE { ?s ?p ? }"

	// database/sql prefixes the errors of argument conversion
	_, err := db.Query(text, nil)
	assertErrorCode(t, err, sparqlerr.ErrCodeNullParameter)

	_, err = db.Query(text)
	assert.ErrorIs(t, err, &sparqlerr.Error{Kind: sparqlerr.KindInvalidParameter, Number: sparqlerr.ErrCodeUnboundParameter})

	_, err = db.Query(text, 1, 2)
	assert.ErrorIs(t, err, &sparqlerr.Error{Kind: sparqlerr.KindInvalidParameter, Number: sparqlerr.ErrCodeParameterIndex})

	_, err = db.Query(text, struct{}{})
	assertErrorCode(t, err, sparqlerr.ErrCodeUnsupportedParameterType)

	_, err = db.Query(text, sql.Named("missing", 1))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = db.Query("SELECT * WHERE { ?s ?p \"unterminated }")
	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, 0, ep.requestCount())
}

func TestReadOnlyOperations(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	db := openDB(t, ep.dsn(""))

	_, err := db.Exec("SELECT * WHERE { ?s ?p ?o }")
	assert.ErrorIs(t, err, ErrReadOnlyUnsupported)
	assert.True(t, IsFeatureNotSupported(err))

	_, err = db.Begin()
	assert.ErrorIs(t, err, ErrReadOnlyUnsupported)

	_, err = db.Query("INSERT DATA { <http://example.org/a> <http://example.org/p> 1 }")
	assert.ErrorIs(t, err, ErrReadOnlyUnsupported)
	assert.True(t, IsFeatureNotSupported(err))

	_, err = db.Prepare("PREFIX ex: <http://example.org/>\nDELETE WHERE { ex:a ?p ?o }")
	assert.ErrorIs(t, err, ErrReadOnlyUnsupported)
	assert.Equal(t, 0, ep.requestCount())
}

func TestPing(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, askTrueJSON)
	db := openDB(t, ep.dsn(""))
	require.NoError(t, db.PingContext(context.Background()))
	assert.Equal(t, pingQuery, ep.lastRequest(t).form.Get("query"))

	ep.status = http.StatusServiceUnavailable
	assert.ErrorIs(t, db.PingContext(context.Background()), ErrExecutionFailed)
}

func TestHTTPErrorStatus(t *testing.T) {
	ep := newFakeEndpoint(t, "text/plain", "Parse error: unexpected token 'SELEKT'")
	ep.status = http.StatusBadRequest
	db := openDB(t, ep.dsn(""))

	_, err := db.Query("SELECT * WHERE { ?s ?p ?o }")
	require.Error(t, err)
	assert.ErrorIs(t, err, &sparqlerr.Error{Kind: sparqlerr.KindExecutionFailed, Number: sparqlerr.ErrCodeHTTPStatus})
	assert.Contains(t, err.Error(), "HTTP 400")
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestMalformedResponse(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, `{"head":{"vars":["x"]},"results":{"bindings":[{"y":{"type":"uri","value":"http://example.org/"}}]}}`)
	db := openDB(t, ep.dsn(""))

	rows, err := db.Query("SELECT ?x WHERE { ?x ?p ?o }")
	require.NoError(t, err)
	defer rows.Close()
	assert.False(t, rows.Next())
	assert.ErrorIs(t, rows.Err(), ErrExecutionFailed)
}

func TestQueryTimeout(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	ep.handle = func(w http.ResponseWriter, r *http.Request) bool {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
		return false
	}
	db := openDB(t, ep.dsn("queryTimeout=50ms"))

	_, err := db.Query("SELECT * WHERE { ?s ?p ?o }")
	assert.ErrorIs(t, err, ErrExecutionFailed)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	ep.handle = nil
	rows, err := db.QueryContext(WithQueryTimeout(context.Background(), time.Minute), "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Equal(t, expectedPeople, scanPeople(t, rows))
}

func TestAuthentication(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, askTrueJSON)

	basic := openDB(t, strings.Replace(ep.dsn(""), "http://", "http://alice:s3cret@", 1))
	require.NoError(t, basic.Ping())
	user, password, ok := (&http.Request{Header: ep.lastRequest(t).header}).BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "s3cret", password)

	bearer := openDB(t, ep.dsn("token=abcdef123456"))
	require.NoError(t, bearer.Ping())
	assert.Equal(t, "Bearer abcdef123456", ep.lastRequest(t).header.Get("Authorization"))
}

func TestForwardedParameters(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, askTrueJSON)
	db := openDB(t, ep.dsn("timeout=30&default-graph-uri=http://example.org/g1&named-graph-uri=http://example.org/g2&named-graph-uri=http://example.org/g3&application=reporting"))
	require.NoError(t, db.Ping())

	req := ep.lastRequest(t)
	assert.Equal(t, "30", req.form.Get("timeout"))
	assert.Equal(t, []string{"http://example.org/g1"}, req.form["default-graph-uri"])
	assert.Equal(t, []string{"http://example.org/g2", "http://example.org/g3"}, req.form["named-graph-uri"])
	assert.True(t, strings.HasSuffix(req.header.Get("User-Agent"), " reporting"))
}

func TestContextOptions(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	db := openDB(t, ep.dsn(""))
	ctx := context.Background()

	rows, err := db.QueryContext(WithMaxRows(ctx, 1), "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	assert.Equal(t, expectedPeople[:1], scanPeople(t, rows))

	requestID := uuid.New()
	rows, err = db.QueryContext(WithRequestID(ctx, requestID), "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	rows.Close()
	assert.Equal(t, requestID.String(), ep.lastRequest(t).header.Get("X-Request-Id"))

	rows, err = db.QueryContext(WithCompatibility(ctx, typemap.CompatibilityHigh), "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	types, err := rows.ColumnTypes()
	require.NoError(t, err)
	assert.Equal(t, "VARCHAR", types[0].DatabaseTypeName())
	assert.Equal(t, "INTEGER", types[1].DatabaseTypeName())
	assert.Equal(t, expectedPeople, scanPeople(t, rows))
}

func TestQueryResultSet(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	db := openDB(t, ep.dsn(""))
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()

	rs, err := QueryResultSet(WithScrollInsensitive(ctx), conn, "SELECT ?name ?age WHERE { ?p <"+foafName+"> ?name ; <"+foafAge+"> $age }",
		sql.Named("age", 30))
	require.NoError(t, err)
	defer rs.Close()
	assert.Contains(t, ep.lastRequest(t).form.Get("query"), `"30"^^<http://www.w3.org/2001/XMLSchema#integer> }`)

	scroll, err := rs.Type()
	require.NoError(t, err)
	assert.Equal(t, resultset.TypeScrollInsensitive, scroll)
	ok, err := rs.Last()
	require.NoError(t, err)
	require.True(t, ok)
	row, err := rs.Row()
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	name, err := rs.GetStringByLabel("name")
	require.NoError(t, err)
	assert.Equal(t, "Bob", name)
	_, err = rs.GetInt32ByLabel("age")
	require.NoError(t, err)
	wasNull, err := rs.WasNull()
	require.NoError(t, err)
	assert.True(t, wasNull)

	ok, err = rs.First()
	require.NoError(t, err)
	require.True(t, ok)
	age, err := rs.GetInt32(2)
	require.NoError(t, err)
	assert.Equal(t, int32(30), age)

	forward, err := QueryResultSet(ctx, conn, "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	defer forward.Close()
	scroll, err = forward.Type()
	require.NoError(t, err)
	assert.Equal(t, resultset.TypeForwardOnly, scroll)
	_, err = forward.Previous()
	assert.ErrorIs(t, err, ErrUnsupportedNavigation)
}

func TestStatementClosesResultSets(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	cfg, err := ParseDSN(ep.dsn(""))
	require.NoError(t, err)
	sc, err := buildSPARQLConn(context.Background(), *cfg)
	require.NoError(t, err)
	defer sc.Close()

	stmt, err := sc.prepare(context.Background(), "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	first, err := stmt.queryResultSet(context.Background(), nil)
	require.NoError(t, err)
	second, err := stmt.queryResultSet(context.Background(), nil)
	require.NoError(t, err)

	require.NoError(t, first.Close())
	stmt.mu.Lock()
	assert.Len(t, stmt.open, 1)
	stmt.mu.Unlock()

	require.NoError(t, stmt.Close())
	assert.True(t, second.IsClosed())
	_, err = stmt.queryResultSet(context.Background(), nil)
	assert.ErrorIs(t, err, ErrClosedCursor)
}

func TestClosedConnection(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	cfg, err := ParseDSN(ep.dsn(""))
	require.NoError(t, err)
	sc, err := buildSPARQLConn(context.Background(), *cfg)
	require.NoError(t, err)

	require.NoError(t, sc.Close())
	require.NoError(t, sc.Close())
	assert.False(t, sc.IsValid())
	_, err = sc.Prepare("ASK {}")
	assert.Equal(t, driver.ErrBadConn, err)
	assert.Equal(t, driver.ErrBadConn, sc.Ping(context.Background()))
}

func TestResultCache(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, peopleJSON)
	db := openDB(t, ep.dsn("resultCacheSize=8"))

	for i := 0; i < 3; i++ {
		rows, err := db.Query("SELECT * WHERE { ?s ?p ?o }")
		require.NoError(t, err)
		assert.Equal(t, expectedPeople, scanPeople(t, rows))
	}
	assert.Equal(t, 1, ep.requestCount())

	rows, err := db.Query("SELECT * WHERE { ?s ?p ?o } LIMIT 1")
	require.NoError(t, err)
	rows.Close()
	assert.Equal(t, 2, ep.requestCount())

	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	defer conn.Close()
	rs, err := QueryResultSet(context.Background(), conn, "SELECT * WHERE { ?s ?p ?o }")
	require.NoError(t, err)
	defer rs.Close()
	scroll, err := rs.Type()
	require.NoError(t, err)
	assert.Equal(t, resultset.TypeScrollInsensitive, scroll)
	assert.Equal(t, 2, ep.requestCount())
}

func TestOpenErrors(t *testing.T) {
	_, err := SPARQLDriver{}.Open("ftp://example.org/sparql")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = SPARQLDriver{}.OpenConnector("http://example.org/sparql?maxRows=-1")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConnector(t *testing.T) {
	ep := newFakeEndpoint(t, results.MediaTypeJSON, askTrueJSON)
	cfg, err := ParseDSN(ep.dsn(""))
	require.NoError(t, err)

	db := sql.OpenDB(NewConnector(SPARQLDriver{}, *cfg))
	defer db.Close()
	require.NoError(t, db.Ping())

	connector := NewConnector(SPARQLDriver{}, Config{Endpoint: "not a url"})
	_, err = connector.Connect(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.NotNil(t, connector.Driver())
}
