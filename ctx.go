package gosparql

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rdfsql/gosparql/typemap"
)

type paramKey string

const (
	compatibilityKey     paramKey = "compatibility"
	scrollInsensitiveKey paramKey = "scrollInsensitive"
	queryTimeoutKey      paramKey = "queryTimeout"
	maxRowsKey           paramKey = "maxRows"
	requestIDKey         paramKey = "requestId"
)

// Compatibility levels.
const (
	CompatibilityLow  = typemap.CompatibilityLow
	CompatibilityHigh = typemap.CompatibilityHigh
)

// WithCompatibility returns a context that overrides the compatibility level
// of the connection for queries run with it.
func WithCompatibility(ctx context.Context, compat typemap.Compatibility) context.Context {
	return context.WithValue(ctx, compatibilityKey, compat)
}

// WithScrollInsensitive returns a context whose queries produce
// scroll-insensitive result sets.
func WithScrollInsensitive(ctx context.Context) context.Context {
	return context.WithValue(ctx, scrollInsensitiveKey, true)
}

// WithQueryTimeout returns a context that overrides the query timeout.
func WithQueryTimeout(ctx context.Context, timeout time.Duration) context.Context {
	return context.WithValue(ctx, queryTimeoutKey, timeout)
}

// WithMaxRows returns a context that limits the rows exposed by result sets.
func WithMaxRows(ctx context.Context, maxRows int) context.Context {
	return context.WithValue(ctx, maxRowsKey, maxRows)
}

// WithRequestID sets the id sent in the X-Request-Id header.
func WithRequestID(ctx context.Context, requestID uuid.UUID) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func getOrGenerateRequestIDFromContext(ctx context.Context) uuid.UUID {
	if requestID, ok := ctx.Value(requestIDKey).(uuid.UUID); ok && requestID != uuid.Nil {
		return requestID
	}
	return uuid.New()
}

// queryOptions are the per-query settings, the connection defaults overridden
// by the context.
type queryOptions struct {
	compat            typemap.Compatibility
	scrollInsensitive bool
	timeout           time.Duration
	maxRows           int
}

func optionsFromContext(ctx context.Context, cfg *Config) queryOptions {
	opts := queryOptions{
		compat:            cfg.Compatibility,
		scrollInsensitive: cfg.ScrollInsensitive,
		timeout:           cfg.QueryTimeout,
		maxRows:           cfg.MaxRows,
	}
	if v, ok := ctx.Value(compatibilityKey).(typemap.Compatibility); ok {
		opts.compat = v
	}
	if v, ok := ctx.Value(scrollInsensitiveKey).(bool); ok {
		opts.scrollInsensitive = v
	}
	if v, ok := ctx.Value(queryTimeoutKey).(time.Duration); ok {
		opts.timeout = v
	}
	if v, ok := ctx.Value(maxRowsKey).(int); ok && v >= 0 {
		opts.maxRows = v
	}
	return opts
}
