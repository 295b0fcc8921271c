package gosparql

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/google/uuid"

	"github.com/rdfsql/gosparql/internal/query"
	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

const pingQuery = "ASK {}"

type sparqlConn struct {
	cfg    *Config
	rest   executor
	cache  *resultCache
	id     uuid.UUID
	closed bool
}

func buildSPARQLConn(ctx context.Context, config Config) (*sparqlConn, error) {
	sc := &sparqlConn{
		cfg: &config,
		id:  uuid.New(),
	}
	sc.rest = newSPARQLRestful(sc.cfg)
	if config.ResultCacheSize > 0 {
		dsn, err := DSN(sc.cfg)
		if err != nil {
			return nil, err
		}
		sc.cache = acquireResultCache(dsn, config.ResultCacheSize, config.ResultCacheTTL)
	}
	logger.WithContext(sc.logContext(ctx)).Infof("opened connection to %v", config.Endpoint)
	return sc, nil
}

// logContext attaches the connection id for log entries.
func (sc *sparqlConn) logContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, SPARQLConnectionIDKey, sc.id.String())
}

func (sc *sparqlConn) Prepare(text string) (driver.Stmt, error) {
	return sc.PrepareContext(context.Background(), text)
}

func (sc *sparqlConn) PrepareContext(ctx context.Context, text string) (driver.Stmt, error) {
	return sc.prepare(ctx, text)
}

func (sc *sparqlConn) prepare(ctx context.Context, text string) (*sparqlStmt, error) {
	if sc.closed {
		return nil, driver.ErrBadConn
	}
	q, err := query.Parse(text)
	if err != nil {
		logger.WithContext(sc.logContext(ctx)).Debugf("failed to parse query: %v", err)
		return nil, err
	}
	if q.Form == query.FormUpdate {
		return nil, sparqlerr.ReadOnly("SPARQL Update")
	}
	return newSPARQLStmt(sc, q), nil
}

func (sc *sparqlConn) Query(text string, args []driver.Value) (driver.Rows, error) {
	return sc.QueryContext(context.Background(), text, toNamedValues(args))
}

func (sc *sparqlConn) QueryContext(ctx context.Context, text string, args []driver.NamedValue) (driver.Rows, error) {
	stmt, err := sc.prepare(ctx, text)
	if err != nil {
		return nil, err
	}
	rs, err := stmt.queryResultSet(ctx, args)
	if err != nil {
		return nil, err
	}
	return newSPARQLRows(rs, stmt.Close), nil
}

func (sc *sparqlConn) Exec(text string, args []driver.Value) (driver.Result, error) {
	return sc.ExecContext(context.Background(), text, toNamedValues(args))
}

func (sc *sparqlConn) ExecContext(context.Context, string, []driver.NamedValue) (driver.Result, error) {
	return nil, sparqlerr.ReadOnly("Exec")
}

func (sc *sparqlConn) Begin() (driver.Tx, error) {
	return sc.BeginTx(context.Background(), driver.TxOptions{})
}

func (sc *sparqlConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return nil, sparqlerr.ReadOnly("Begin")
}

// Ping asks the endpoint an empty ASK query.
func (sc *sparqlConn) Ping(ctx context.Context) error {
	if sc.closed {
		return driver.ErrBadConn
	}
	opts := optionsFromContext(ctx, sc.cfg)
	src, err := sc.rest.execute(sc.logContext(ctx), &queryRequest{
		text:      pingQuery,
		form:      query.FormAsk,
		requestID: getOrGenerateRequestIDFromContext(ctx),
		timeout:   opts.timeout,
	})
	if err != nil {
		return err
	}
	_, err = results.Drain(src)
	return err
}

func (sc *sparqlConn) Close() error {
	if sc.closed {
		return nil
	}
	sc.closed = true
	sc.rest.close()
	releaseResultCache(sc.cache)
	sc.cache = nil
	logger.WithContext(sc.logContext(context.Background())).Info("closed connection")
	return nil
}

// IsValid reports whether the connection can be reused.
func (sc *sparqlConn) IsValid() bool {
	return !sc.closed
}

func (sc *sparqlConn) ResetSession(context.Context) error {
	if sc.closed {
		return driver.ErrBadConn
	}
	return nil
}

// CheckNamedValue converts every argument to an RDF term, so parameter
// errors surface before the query is sent.
func (sc *sparqlConn) CheckNamedValue(nv *driver.NamedValue) error {
	if nv.Value == nil {
		return sparqlerr.NullParameter(parameterName(*nv))
	}
	term, err := typemap.ToTerm(nv.Value)
	if err != nil {
		return err
	}
	nv.Value = term
	return nil
}

// execute runs a bound query text, going through the result cache when the
// connection has one.
func (sc *sparqlConn) execute(ctx context.Context, text string, form query.Form, requestID uuid.UUID, timeout time.Duration) (results.Source, error) {
	req := &queryRequest{text: text, form: form, requestID: requestID, timeout: timeout}
	if sc.cache == nil {
		return sc.rest.execute(ctx, req)
	}
	key := resultCacheKey(sc.cfg.Endpoint, text, sc.rest.accept(form))
	if m, ok := sc.cache.load(key); ok {
		logger.WithContext(ctx).Debug("result cache hit")
		return m, nil
	}
	src, err := sc.rest.execute(ctx, req)
	if err != nil {
		return nil, err
	}
	m, err := results.Drain(src)
	if err != nil {
		return nil, err
	}
	sc.cache.store(key, m)
	return m, nil
}

func parameterName(nv driver.NamedValue) interface{} {
	if nv.Name != "" {
		return nv.Name
	}
	return nv.Ordinal
}

func toNamedValues(values []driver.Value) []driver.NamedValue {
	namedValues := make([]driver.NamedValue, len(values))
	for idx, value := range values {
		namedValues[idx] = driver.NamedValue{Name: "", Ordinal: idx + 1, Value: value}
	}
	return namedValues
}
