package gosparql

import "github.com/rdfsql/gosparql/sparqlerr"

// SPARQLError is the error type returned by the driver. It carries a Kind,
// a numeric code and a SQLSTATE.
type SPARQLError = sparqlerr.Error

var (
	// ErrClosedCursor is matched by operations on a closed result set.
	ErrClosedCursor = sparqlerr.ErrClosedCursor
	// ErrNotOnRow is matched by getters called while the cursor is not on a row.
	ErrNotOnRow = sparqlerr.ErrNotOnRow
	// ErrIndexOutOfBounds is matched by column indexes or row positions outside the result.
	ErrIndexOutOfBounds = sparqlerr.ErrIndexOutOfBounds
	// ErrUnknownColumn is matched by lookups of labels that are not columns.
	ErrUnknownColumn = sparqlerr.ErrUnknownColumn
	// ErrUnsupportedNavigation is matched by backward movement of forward-only cursors.
	ErrUnsupportedNavigation = sparqlerr.ErrUnsupportedNavigation
	// ErrReadOnlyUnsupported is matched by updates, Exec and transactions.
	ErrReadOnlyUnsupported = sparqlerr.ErrReadOnlyUnsupported
	// ErrTypeMismatch is matched by coercions that are not permitted.
	ErrTypeMismatch = sparqlerr.ErrTypeMismatch
	// ErrExecutionFailed is matched by failures of the endpoint or of its response.
	ErrExecutionFailed = sparqlerr.ErrExecutionFailed
	// ErrFormat is matched by malformed terms and queries.
	ErrFormat = sparqlerr.ErrFormat
	// ErrInvalidParameter is matched by parameters that cannot be bound.
	ErrInvalidParameter = sparqlerr.ErrInvalidParameter
	// ErrInvalidConfig is matched by invalid DSNs and connection files.
	ErrInvalidConfig = sparqlerr.ErrInvalidConfig
)

// IsFeatureNotSupported reports whether err says the driver does not offer
// the requested operation.
func IsFeatureNotSupported(err error) bool {
	return sparqlerr.IsFeatureNotSupported(err)
}
