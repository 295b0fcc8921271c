package gosparql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/rdfsql/gosparql/resultset"
)

// QueryResultSet runs a query on conn and returns the full cursor, with
// navigation, typed getters and column metadata. Arguments are bound like
// those of sql.Conn.QueryContext; sql.Named binds ?name or $name variables.
// The caller closes the result set and must not close conn before it.
//
//	conn, _ := db.Conn(ctx)
//	rs, err := gosparql.QueryResultSet(gosparql.WithScrollInsensitive(ctx), conn, "SELECT ?s WHERE { ?s ?p ? }", 42)
func QueryResultSet(ctx context.Context, conn *sql.Conn, text string, args ...interface{}) (*resultset.ResultSet, error) {
	var rs *resultset.ResultSet
	err := conn.Raw(func(driverConn interface{}) error {
		sc, ok := driverConn.(*sparqlConn)
		if !ok {
			return fmt.Errorf("not a SPARQL connection: %T", driverConn)
		}
		var err error
		rs, err = sc.QueryResultSet(ctx, text, args...)
		return err
	})
	return rs, err
}

// QueryResultSet runs a query and returns its cursor.
func (sc *sparqlConn) QueryResultSet(ctx context.Context, text string, args ...interface{}) (*resultset.ResultSet, error) {
	named := make([]driver.NamedValue, len(args))
	for i, arg := range args {
		nv := driver.NamedValue{Ordinal: i + 1, Value: arg}
		if na, ok := arg.(sql.NamedArg); ok {
			nv.Name, nv.Value = na.Name, na.Value
		}
		if err := sc.CheckNamedValue(&nv); err != nil {
			return nil, err
		}
		named[i] = nv
	}
	stmt, err := sc.prepare(ctx, text)
	if err != nil {
		return nil, err
	}
	return stmt.queryResultSet(ctx, named)
}
