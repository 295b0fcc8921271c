package resultset

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/typemap"
)

// fakeStream is a forward-only source that can fail after its rows.
type fakeStream struct {
	columns []string
	rows    []results.Row
	err     error
	pos     int
	closed  int
}

func (f *fakeStream) Columns() []string   { return f.columns }
func (f *fakeStream) Form() results.Form { return results.FormSelect }

func (f *fakeStream) HasNext() (bool, error) {
	if f.pos < len(f.rows) {
		return true, nil
	}
	return false, f.err
}

func (f *fakeStream) Next() (results.Row, error) {
	if f.pos < len(f.rows) {
		f.pos++
		return f.rows[f.pos-1], nil
	}
	if f.err != nil {
		return nil, f.err
	}
	return nil, io.EOF
}

func (f *fakeStream) Close() error {
	f.closed++
	return nil
}

func lit(lexical string, dt rdf.IRI) rdf.Literal {
	return rdf.NewTypedLiteral(lexical, dt)
}

func intRows(n int) []results.Row {
	rows := make([]results.Row, n)
	for i := range rows {
		rows[i] = results.Row{lit(string(rune('1'+i)), rdf.XSDInt)}
	}
	return rows
}

func scrollable(t *testing.T, columns []string, rows []results.Row, opts Options) *ResultSet {
	m, err := results.NewMaterialized(columns, rows)
	require.NoError(t, err)
	rs, err := New(m, opts)
	require.NoError(t, err)
	return rs
}

func forwardOnly(t *testing.T, src *fakeStream, opts Options) *ResultSet {
	rs, err := New(src, opts)
	require.NoError(t, err)
	return rs
}

func mustNext(t *testing.T, rs *ResultSet, want bool) {
	ok, err := rs.Next()
	require.NoError(t, err)
	require.Equal(t, want, ok)
}

func mustRow(t *testing.T, rs *ResultSet, want int) {
	row, err := rs.Row()
	require.NoError(t, err)
	require.Equal(t, want, row)
}

var highCompat = Options{Compatibility: typemap.CompatibilityHigh}
