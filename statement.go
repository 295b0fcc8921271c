package gosparql

import (
	"context"
	"database/sql/driver"
	"errors"
	"sync"

	"github.com/rdfsql/gosparql/internal/query"
	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/resultset"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

var errStatementClosed = &SPARQLError{
	Number:   sparqlerr.ErrCodeClosedCursor,
	SQLState: sparqlerr.SQLStateInvalidCursorState,
	Kind:     sparqlerr.KindClosedCursor,
	Message:  "statement is closed",
}

// sparqlStmt is a parsed query. It tracks the result sets it opened and
// closes them when it is closed.
type sparqlStmt struct {
	sc *sparqlConn
	q  *query.Query

	mu     sync.Mutex
	open   map[*resultset.ResultSet]struct{}
	closed bool
}

func newSPARQLStmt(sc *sparqlConn, q *query.Query) *sparqlStmt {
	return &sparqlStmt{sc: sc, q: q, open: make(map[*resultset.ResultSet]struct{})}
}

func (stmt *sparqlStmt) Close() error {
	stmt.mu.Lock()
	if stmt.closed {
		stmt.mu.Unlock()
		return nil
	}
	stmt.closed = true
	sets := make([]*resultset.ResultSet, 0, len(stmt.open))
	for rs := range stmt.open {
		sets = append(sets, rs)
	}
	stmt.open = nil
	stmt.mu.Unlock()

	var errs []error
	for _, rs := range sets {
		if err := rs.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NumInput returns -1 since named parameters bind variables that are not
// counted as placeholders.
func (stmt *sparqlStmt) NumInput() int {
	return -1
}

func (stmt *sparqlStmt) Exec(args []driver.Value) (driver.Result, error) {
	return stmt.ExecContext(context.Background(), toNamedValues(args))
}

func (stmt *sparqlStmt) ExecContext(context.Context, []driver.NamedValue) (driver.Result, error) {
	return nil, sparqlerr.ReadOnly("Exec")
}

func (stmt *sparqlStmt) Query(args []driver.Value) (driver.Rows, error) {
	return stmt.QueryContext(context.Background(), toNamedValues(args))
}

func (stmt *sparqlStmt) QueryContext(ctx context.Context, args []driver.NamedValue) (driver.Rows, error) {
	rs, err := stmt.queryResultSet(ctx, args)
	if err != nil {
		return nil, err
	}
	return newSPARQLRows(rs, nil), nil
}

func (stmt *sparqlStmt) CheckNamedValue(nv *driver.NamedValue) error {
	return stmt.sc.CheckNamedValue(nv)
}

func (stmt *sparqlStmt) queryResultSet(ctx context.Context, args []driver.NamedValue) (*resultset.ResultSet, error) {
	stmt.mu.Lock()
	closed := stmt.closed
	stmt.mu.Unlock()
	if closed {
		return nil, errStatementClosed
	}

	positional, named, err := bindParameters(args)
	if err != nil {
		return nil, err
	}
	text, err := stmt.q.Bind(positional, named)
	if err != nil {
		return nil, err
	}

	opts := optionsFromContext(ctx, stmt.sc.cfg)
	requestID := getOrGenerateRequestIDFromContext(ctx)
	ctx = context.WithValue(stmt.sc.logContext(ctx), SPARQLRequestIDKey, requestID.String())
	logger.WithContext(ctx).Infof("executing %v query with %d parameters", stmt.q.Form, len(args))

	src, err := stmt.sc.execute(ctx, text, stmt.q.Form, requestID, opts.timeout)
	if err != nil {
		logger.WithContext(ctx).Errorf("query failed: %v", err)
		return nil, err
	}
	var rs *resultset.ResultSet
	rs, err = resultset.New(src, resultset.Options{
		Compatibility:     opts.compat,
		ScrollInsensitive: opts.scrollInsensitive,
		MaxRows:           opts.maxRows,
		OnClose:           func() { stmt.forget(rs) },
	})
	if err != nil {
		return nil, err
	}
	if !stmt.track(rs) {
		rs.Close()
		return nil, errStatementClosed
	}
	return rs, nil
}

func (stmt *sparqlStmt) track(rs *resultset.ResultSet) bool {
	stmt.mu.Lock()
	defer stmt.mu.Unlock()
	if stmt.closed {
		return false
	}
	stmt.open[rs] = struct{}{}
	return true
}

func (stmt *sparqlStmt) forget(rs *resultset.ResultSet) {
	stmt.mu.Lock()
	defer stmt.mu.Unlock()
	delete(stmt.open, rs)
}

// bindParameters splits args into positional terms, in ordinal order, and
// named terms.
func bindParameters(args []driver.NamedValue) ([]rdf.Term, map[string]rdf.Term, error) {
	var positional []rdf.Term
	var named map[string]rdf.Term
	for _, arg := range args {
		term, ok := arg.Value.(rdf.Term)
		if !ok {
			if arg.Value == nil {
				return nil, nil, sparqlerr.NullParameter(parameterName(arg))
			}
			var err error
			if term, err = typemap.ToTerm(arg.Value); err != nil {
				return nil, nil, err
			}
		}
		if arg.Name == "" {
			positional = append(positional, term)
			continue
		}
		if named == nil {
			named = make(map[string]rdf.Term)
		}
		named[arg.Name] = term
	}
	return positional, named, nil
}
