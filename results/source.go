// Package results decodes SPARQL query results into row sources. A Source
// yields rows of RDF terms, one per declared column, either from a fully
// materialized result or streamed from a response body.
package results

import (
	"io"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

// Form is the shape of a query result.
type Form int

const (
	// FormSelect is a table of variable bindings.
	FormSelect Form = iota
	// FormBoolean is the single boolean answer of an ASK query.
	FormBoolean
	// FormGraph is a sequence of triples returned by CONSTRUCT or DESCRIBE.
	FormGraph
)

func (f Form) String() string {
	switch f {
	case FormSelect:
		return "select"
	case FormBoolean:
		return "boolean"
	case FormGraph:
		return "graph"
	}
	return "unknown"
}

// BooleanColumn is the label of the only column of a boolean result.
const BooleanColumn = "ASK"

// GraphColumns are the labels of the columns of a graph result.
var GraphColumns = []string{"Subject", "Predicate", "Object"}

// Row is one result row. A nil entry is an unbound variable.
type Row []rdf.Term

// Source is a pull iterator over result rows. Every row has exactly
// len(Columns()) entries. Rows are handed out once; Source does not rewind.
type Source interface {
	// Columns returns the column labels in result order.
	Columns() []string
	// Form returns the shape of the result.
	Form() Form
	// HasNext reports whether Next would return a row. It may block on the
	// transport.
	HasNext() (bool, error)
	// Next consumes and returns the next row, or io.EOF after the last one.
	Next() (Row, error)
	// Close releases the underlying response. It is safe to call more than once.
	Close() error
}

// Materializable is implemented by sources whose rows are all in memory.
type Materializable interface {
	Source
	// Len returns the total number of rows, consumed or not.
	Len() int
}

// Materialized is a source backed by a slice of rows.
type Materialized struct {
	form    Form
	columns []string
	rows    []Row
	pos     int
	closed  bool
}

var _ Materializable = (*Materialized)(nil)

// NewMaterialized returns a select result holding rows. Each row must have one
// entry per column.
func NewMaterialized(columns []string, rows []Row) (*Materialized, error) {
	return newMaterialized(FormSelect, columns, rows)
}

// NewGraph returns a graph result holding triples.
func NewGraph(triples []rdf.Triple) *Materialized {
	rows := make([]Row, len(triples))
	for i, t := range triples {
		rows[i] = Row{t.Subject, t.Predicate, t.Object}
	}
	return &Materialized{form: FormGraph, columns: GraphColumns, rows: rows}
}

func newMaterialized(form Form, columns []string, rows []Row) (*Materialized, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, sparqlerr.MalformedResponse(nil,
				"row %d has %d values, result has %d columns", i+1, len(row), len(columns))
		}
	}
	return &Materialized{form: form, columns: columns, rows: rows}, nil
}

// NewBoolean returns the one row, one column result of an ASK query.
func NewBoolean(value bool) *Materialized {
	lexical := "false"
	if value {
		lexical = "true"
	}
	return &Materialized{
		form:    FormBoolean,
		columns: []string{BooleanColumn},
		rows:    []Row{{rdf.NewTypedLiteral(lexical, rdf.XSDBoolean)}},
	}
}

// Columns returns the column labels.
func (m *Materialized) Columns() []string { return m.columns }

// Form returns the shape of the result.
func (m *Materialized) Form() Form { return m.form }

// Len returns the number of rows.
func (m *Materialized) Len() int { return len(m.rows) }

// Rows returns all rows, consumed or not. The slice must not be modified.
func (m *Materialized) Rows() []Row { return m.rows }

// HasNext reports whether rows remain.
func (m *Materialized) HasNext() (bool, error) {
	return !m.closed && m.pos < len(m.rows), nil
}

// Next returns the next row.
func (m *Materialized) Next() (Row, error) {
	if m.closed || m.pos >= len(m.rows) {
		return nil, io.EOF
	}
	row := m.rows[m.pos]
	m.pos++
	return row, nil
}

// Close marks the source exhausted.
func (m *Materialized) Close() error {
	m.closed = true
	return nil
}

// Reopen returns a fresh source over the same rows, positioned at the start.
func (m *Materialized) Reopen() *Materialized {
	return &Materialized{form: m.form, columns: m.columns, rows: m.rows}
}

// Drain reads the remaining rows of src into memory and closes it. An
// unread Materialized source is returned as is.
func Drain(src Source) (*Materialized, error) {
	if m, ok := src.(*Materialized); ok && m.pos == 0 && !m.closed {
		return m, nil
	}
	defer src.Close()
	var rows []Row
	for {
		row, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return newMaterialized(src.Form(), src.Columns(), rows)
}
