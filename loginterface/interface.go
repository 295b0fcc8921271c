// Package loginterface holds the logging contract of gosparql. Install an
// implementation with gosparql.SetLogger; every message it receives has
// passwords and tokens masked already.
package loginterface

import (
	"context"
	"io"
)

// ClientLogContextHook computes a log field from the context of a query.
// An empty result omits the field.
type ClientLogContextHook func(context.Context) string

// LogEntry is a logger bound to a fixed set of fields.
type LogEntry interface {
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})

	Trace(msg string)
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
}

// Logger is the driver's logger. WithContext attaches the connection and
// request ids of a query, plus any fields registered with
// gosparql.RegisterLogContextHook.
type Logger interface {
	LogEntry
	WithField(key string, value interface{}) LogEntry
	WithFields(fields map[string]any) LogEntry
	WithContext(ctx context.Context) LogEntry

	// SetLogLevel accepts the level names of the tracing DSN parameter.
	SetLogLevel(level string) error
	GetLogLevel() string
	SetOutput(output io.Writer)
}
