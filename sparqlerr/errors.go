// Package sparqlerr defines the error type shared by every layer of the SPARQL driver.
package sparqlerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can react to it without parsing messages.
type Kind int

const (
	// KindUnknown is the zero value. It never appears on errors created by this module.
	KindUnknown Kind = iota
	// KindClosedCursor is raised by any result set operation after Close.
	KindClosedCursor
	// KindNotOnRow is raised by getters while the cursor is before the first or after the last row.
	KindNotOnRow
	// KindIndexOutOfBounds is raised for a column index outside 1..ColumnCount or an
	// absolute/relative move that overshoots the result.
	KindIndexOutOfBounds
	// KindUnknownColumn is raised when a column label does not match any column.
	KindUnknownColumn
	// KindUnsupportedNavigation is raised by scroll operations on a forward-only cursor.
	KindUnsupportedNavigation
	// KindReadOnlyUnsupported is raised by every mutation operation.
	KindReadOnlyUnsupported
	// KindTypeMismatch is raised when a value cannot be represented as the requested type.
	KindTypeMismatch
	// KindExecutionFailed wraps transport and remote execution failures.
	KindExecutionFailed
	// KindFormat is raised when a term or document is not well formed.
	KindFormat
	// KindInvalidParameter is raised when a parameter cannot be bound.
	KindInvalidParameter
	// KindInvalidConfig is raised for bad DSN or configuration file values.
	KindInvalidConfig
)

var kindNames = map[Kind]string{
	KindUnknown:               "Unknown",
	KindClosedCursor:          "ClosedCursor",
	KindNotOnRow:              "NotOnRow",
	KindIndexOutOfBounds:      "IndexOutOfBounds",
	KindUnknownColumn:         "UnknownColumn",
	KindUnsupportedNavigation: "UnsupportedNavigation",
	KindReadOnlyUnsupported:   "ReadOnlyUnsupported",
	KindTypeMismatch:          "TypeMismatch",
	KindExecutionFailed:       "ExecutionFailed",
	KindFormat:                "Format",
	KindInvalidParameter:      "InvalidParameter",
	KindInvalidConfig:         "InvalidConfig",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	// ErrCodeClosedCursor is an error code for the case where a result set is used after Close.
	ErrCodeClosedCursor = 270001
	// ErrCodeNotOnRow is an error code for the case where a getter is called off a row.
	ErrCodeNotOnRow = 270002
	// ErrCodeColumnIndex is an error code for the case where a column index is out of range.
	ErrCodeColumnIndex = 270003
	// ErrCodeRowPosition is an error code for the case where a move overshoots the result.
	ErrCodeRowPosition = 270004
	// ErrCodeUnknownColumn is an error code for the case where a column label is not found.
	ErrCodeUnknownColumn = 270005
	// ErrCodeForwardOnly is an error code for the case where a scroll operation is used on a forward-only cursor.
	ErrCodeForwardOnly = 270006
	// ErrCodeFetchDirection is an error code for the case where a fetch direction other than forward is requested.
	ErrCodeFetchDirection = 270007
	// ErrCodeReadOnly is an error code for the case where a mutation is attempted.
	ErrCodeReadOnly = 270008

	// ErrCodeTypeMismatch is an error code for the case where a coercion is not representable.
	ErrCodeTypeMismatch = 271001
	// ErrCodeOutOfRange is an error code for the case where a numeric value does not fit the target.
	ErrCodeOutOfRange = 271002
	// ErrCodeIllTyped is an error code for the case where a literal's lexical form is invalid for its datatype.
	ErrCodeIllTyped = 271003

	// ErrCodeExecution is an error code for the case where the endpoint could not run the query.
	ErrCodeExecution = 272001
	// ErrCodeHTTPStatus is an error code for the case where the endpoint replied with a non-success status.
	ErrCodeHTTPStatus = 272002
	// ErrCodeMalformedResponse is an error code for the case where a response body could not be decoded.
	ErrCodeMalformedResponse = 272003
	// ErrCodeUnsupportedContentType is an error code for the case where a response has an unknown content type.
	ErrCodeUnsupportedContentType = 272004

	// ErrCodeTermSyntax is an error code for the case where a canonical term cannot be parsed.
	ErrCodeTermSyntax = 273001
	// ErrCodeQuerySyntax is an error code for the case where a query text cannot be analyzed.
	ErrCodeQuerySyntax = 273002

	// ErrCodeNullParameter is an error code for the case where a parameter is bound to nil.
	ErrCodeNullParameter = 274001
	// ErrCodeUnboundParameter is an error code for the case where a positional parameter has no value.
	ErrCodeUnboundParameter = 274002
	// ErrCodeParameterIndex is an error code for the case where a parameter ordinal does not exist.
	ErrCodeParameterIndex = 274003
	// ErrCodeUnsupportedParameterType is an error code for the case where a host value has no RDF mapping.
	ErrCodeUnsupportedParameterType = 274004

	// ErrCodeInvalidDSN is an error code for the case where a DSN cannot be parsed.
	ErrCodeInvalidDSN = 275001
	// ErrCodeFailedToFindDSNInToml is an error code for the case where a connection name is missing in connections.toml.
	ErrCodeFailedToFindDSNInToml = 275002
	// ErrCodeTomlFileParsingFailed is an error code for the case where connections.toml has a bad value.
	ErrCodeTomlFileParsingFailed = 275003
	// ErrCodeInvalidFilePermission is an error code for the case where connections.toml is writable by others.
	ErrCodeInvalidFilePermission = 275004
)

// SQLSTATE values attached to errors.
const (
	SQLStateInvalidCursorState       = "24000"
	SQLStateInvalidDescriptorIndex   = "07009"
	SQLStateUndefinedColumn          = "42703"
	SQLStateFeatureNotSupported      = "0A000"
	SQLStateInvalidCharacterForCast  = "22018"
	SQLStateNumericValueOutOfRange   = "22003"
	SQLStateConnectionFailure        = "08006"
	SQLStateInvalidParameterValue    = "22023"
	SQLStateNullValueNotAllowed      = "22004"
	SQLStateSyntaxError              = "42601"
	SQLStateInvalidAuthorizationSpec = "28000"
	SQLStateGeneralError             = "HY000"
)

const featureNotSupportedClass = "0A"

// Error is an error type including a classification, a numeric code and a SQLSTATE.
type Error struct {
	Number      int
	SQLState    string
	Kind        Kind
	Message     string
	MessageArgs []interface{}
	Err         error
}

func (e *Error) Error() string {
	message := e.Message
	if len(e.MessageArgs) > 0 {
		message = fmt.Sprintf(e.Message, e.MessageArgs...)
	}
	if e.Err != nil {
		message = message + ": " + e.Err.Error()
	}
	return fmt.Sprintf("%06d (%s): %s", e.Number, e.SQLState, message)
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel of the same kind. A target with a
// non-zero Number must also match the code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Number == 0 || t.Number == e.Number
}

// FeatureNotSupported reports whether the error belongs to the feature-not-supported category.
func (e *Error) FeatureNotSupported() bool {
	return len(e.SQLState) >= 2 && e.SQLState[:2] == featureNotSupportedClass
}

// Sentinels used with errors.Is. They carry no code so they match any error of their kind.
var (
	ErrClosedCursor          = &Error{Kind: KindClosedCursor, Message: "result set is closed"}
	ErrNotOnRow              = &Error{Kind: KindNotOnRow, Message: "cursor is not on a row"}
	ErrIndexOutOfBounds      = &Error{Kind: KindIndexOutOfBounds, Message: "index out of bounds"}
	ErrUnknownColumn         = &Error{Kind: KindUnknownColumn, Message: "unknown column"}
	ErrUnsupportedNavigation = &Error{Kind: KindUnsupportedNavigation, Message: "navigation not supported"}
	ErrReadOnlyUnsupported   = &Error{Kind: KindReadOnlyUnsupported, Message: "driver is read-only"}
	ErrTypeMismatch          = &Error{Kind: KindTypeMismatch, Message: "type mismatch"}
	ErrExecutionFailed       = &Error{Kind: KindExecutionFailed, Message: "execution failed"}
	ErrFormat                = &Error{Kind: KindFormat, Message: "malformed input"}
	ErrInvalidParameter      = &Error{Kind: KindInvalidParameter, Message: "invalid parameter"}
	ErrInvalidConfig         = &Error{Kind: KindInvalidConfig, Message: "invalid configuration"}
)

// IsFeatureNotSupported reports whether err, or any error it wraps, says the
// driver does not offer the requested operation.
func IsFeatureNotSupported(err error) bool {
	var se *Error
	if !errors.As(err, &se) {
		return false
	}
	return se.FeatureNotSupported()
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var se *Error
	if !errors.As(err, &se) {
		return KindUnknown
	}
	return se.Kind
}
