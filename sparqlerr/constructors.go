package sparqlerr

// ClosedCursor returns the error raised by operations on a closed result set.
func ClosedCursor(op string) *Error {
	return &Error{
		Number:      ErrCodeClosedCursor,
		SQLState:    SQLStateInvalidCursorState,
		Kind:        KindClosedCursor,
		Message:     "cannot call %v on a closed result set",
		MessageArgs: []interface{}{op},
	}
}

// NotOnRow returns the error raised by getters while the cursor is off a row.
func NotOnRow() *Error {
	return &Error{
		Number:   ErrCodeNotOnRow,
		SQLState: SQLStateInvalidCursorState,
		Kind:     KindNotOnRow,
		Message:  "cursor is not positioned on a row",
	}
}

// ColumnIndex returns the error raised for a column index outside 1..count.
func ColumnIndex(index, count int) *Error {
	return &Error{
		Number:      ErrCodeColumnIndex,
		SQLState:    SQLStateInvalidDescriptorIndex,
		Kind:        KindIndexOutOfBounds,
		Message:     "column index %d out of range, result has %d columns",
		MessageArgs: []interface{}{index, count},
	}
}

// RowPosition returns the error raised when a move overshoots the result.
func RowPosition(format string, args ...interface{}) *Error {
	return &Error{
		Number:      ErrCodeRowPosition,
		SQLState:    SQLStateInvalidCursorState,
		Kind:        KindIndexOutOfBounds,
		Message:     format,
		MessageArgs: args,
	}
}

// UnknownColumn returns the error raised when no column carries the label.
func UnknownColumn(label string) *Error {
	return &Error{
		Number:      ErrCodeUnknownColumn,
		SQLState:    SQLStateUndefinedColumn,
		Kind:        KindUnknownColumn,
		Message:     "no column labeled %q",
		MessageArgs: []interface{}{label},
	}
}

// ForwardOnly returns the error raised by scroll operations on a forward-only cursor.
func ForwardOnly(op string) *Error {
	return &Error{
		Number:      ErrCodeForwardOnly,
		SQLState:    SQLStateFeatureNotSupported,
		Kind:        KindUnsupportedNavigation,
		Message:     "%v is not supported on a forward-only result set",
		MessageArgs: []interface{}{op},
	}
}

// FetchDirection returns the error raised when a fetch direction other than forward is requested.
func FetchDirection(direction interface{}) *Error {
	return &Error{
		Number:      ErrCodeFetchDirection,
		SQLState:    SQLStateFeatureNotSupported,
		Kind:        KindUnsupportedNavigation,
		Message:     "fetch direction %v is not supported",
		MessageArgs: []interface{}{direction},
	}
}

// ReadOnly returns the error raised by mutation operations.
func ReadOnly(op string) *Error {
	return &Error{
		Number:      ErrCodeReadOnly,
		SQLState:    SQLStateFeatureNotSupported,
		Kind:        KindReadOnlyUnsupported,
		Message:     "%v is not supported, the driver is read-only",
		MessageArgs: []interface{}{op},
	}
}

// TypeMismatch returns the error raised when a coercion is not representable.
func TypeMismatch(format string, args ...interface{}) *Error {
	return &Error{
		Number:      ErrCodeTypeMismatch,
		SQLState:    SQLStateInvalidCharacterForCast,
		Kind:        KindTypeMismatch,
		Message:     format,
		MessageArgs: args,
	}
}

// OutOfRange returns the TypeMismatch raised when a number does not fit the target.
func OutOfRange(value string, target interface{}) *Error {
	return &Error{
		Number:      ErrCodeOutOfRange,
		SQLState:    SQLStateNumericValueOutOfRange,
		Kind:        KindTypeMismatch,
		Message:     "value %v is out of range for %v",
		MessageArgs: []interface{}{value, target},
	}
}

// IllTyped returns the TypeMismatch raised when a lexical form is invalid for its datatype.
func IllTyped(lexical, datatype string, cause error) *Error {
	return &Error{
		Number:      ErrCodeIllTyped,
		SQLState:    SQLStateInvalidCharacterForCast,
		Kind:        KindTypeMismatch,
		Message:     "lexical form %q is not valid for datatype <%v>",
		MessageArgs: []interface{}{lexical, datatype},
		Err:         cause,
	}
}

// Execution wraps a transport or remote failure.
func Execution(cause error, format string, args ...interface{}) *Error {
	return &Error{
		Number:      ErrCodeExecution,
		SQLState:    SQLStateConnectionFailure,
		Kind:        KindExecutionFailed,
		Message:     format,
		MessageArgs: args,
		Err:         cause,
	}
}

// MalformedResponse wraps a decoding failure of a response body.
func MalformedResponse(cause error, format string, args ...interface{}) *Error {
	return &Error{
		Number:      ErrCodeMalformedResponse,
		SQLState:    SQLStateConnectionFailure,
		Kind:        KindExecutionFailed,
		Message:     format,
		MessageArgs: args,
		Err:         cause,
	}
}

// Syntax returns the Format error raised by the strict term parser.
func Syntax(format string, args ...interface{}) *Error {
	return &Error{
		Number:      ErrCodeTermSyntax,
		SQLState:    SQLStateSyntaxError,
		Kind:        KindFormat,
		Message:     format,
		MessageArgs: args,
	}
}

// NullParameter returns the error raised when a parameter is bound to nil.
func NullParameter(param interface{}) *Error {
	return &Error{
		Number:      ErrCodeNullParameter,
		SQLState:    SQLStateNullValueNotAllowed,
		Kind:        KindInvalidParameter,
		Message:     "parameter %v cannot be null",
		MessageArgs: []interface{}{param},
	}
}

// InvalidParameter returns a generic parameter binding error.
func InvalidParameter(number int, format string, args ...interface{}) *Error {
	return &Error{
		Number:      number,
		SQLState:    SQLStateInvalidParameterValue,
		Kind:        KindInvalidParameter,
		Message:     format,
		MessageArgs: args,
	}
}

// InvalidConfig returns a configuration error.
func InvalidConfig(number int, format string, args ...interface{}) *Error {
	return &Error{
		Number:      number,
		SQLState:    SQLStateInvalidAuthorizationSpec,
		Kind:        KindInvalidConfig,
		Message:     format,
		MessageArgs: args,
	}
}
