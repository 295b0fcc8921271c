package gosparql

import (
	loggerinternal "github.com/rdfsql/gosparql/internal/logger"
	"github.com/rdfsql/gosparql/loginterface"
)

type contextKey string

// SPARQLConnectionIDKey is the context key of the connection id
const SPARQLConnectionIDKey contextKey = "LOG_CONNECTION_ID"

// SPARQLRequestIDKey is the context key of the request id of a query
const SPARQLRequestIDKey contextKey = "LOG_REQUEST_ID"

func init() {
	SetLogKeys(SPARQLConnectionIDKey, SPARQLRequestIDKey)
	_ = logger.SetLogLevel("error")
}

type (
	// ClientLogContextHook is a client-defined hook that can be used to insert log
	// fields based on the Context.
	ClientLogContextHook = loginterface.ClientLogContextHook

	// LogEntry allows for logging using a snapshot of field values.
	LogEntry = loginterface.LogEntry

	// Logger is the driver's logging interface.
	Logger = loginterface.Logger
)

// SetLogKeys sets the context keys to be written to logs when logger.WithContext is used.
// This function is thread-safe and can be called at runtime.
func SetLogKeys(keys ...contextKey) {
	ikeys := make([]interface{}, len(keys))
	for i, k := range keys {
		ikeys[i] = k
	}
	loggerinternal.SetLogKeys(ikeys)
}

// GetLogKeys returns the currently configured context keys.
func GetLogKeys() []contextKey {
	ikeys := loggerinternal.GetLogKeys()
	keys := make([]contextKey, 0, len(ikeys))
	for _, k := range ikeys {
		if ck, ok := k.(contextKey); ok {
			keys = append(keys, ck)
		}
	}
	return keys
}

// RegisterLogContextHook registers a hook that can be used to extract fields
// from the Context and associated with log messages using the provided key.
func RegisterLogContextHook(contextKey string, ctxExtractor ClientLogContextHook) {
	loggerinternal.RegisterLogContextHook(contextKey, ctxExtractor)
}

// logger always reaches the logger most recently passed to SetLogger.
var logger Logger = loggerinternal.NewProxy()

// SetLogger replaces the driver's logger. The provided logger is wrapped with
// secret masking.
func SetLogger(inLogger Logger) error {
	return loggerinternal.SetLogger(inLogger)
}

// GetLogger returns the driver's logger.
func GetLogger() Logger {
	return logger
}

// CreateDefaultLogger creates a new logrus-backed logger with secret masking.
// It does not modify global state.
func CreateDefaultLogger() Logger {
	return loggerinternal.CreateDefaultLogger()
}
