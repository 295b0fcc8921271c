package logger

import (
	"context"
	"fmt"
	"io"
)

// maskingEntry masks every message before handing it to inner. Formatted
// messages are rendered first so secrets passed as arguments are caught.
type maskingEntry struct {
	inner LogEntry
}

var _ LogEntry = (*maskingEntry)(nil)

func (e *maskingEntry) Tracef(format string, args ...interface{}) {
	e.inner.Tracef("%s", maskf(format, args...))
}

func (e *maskingEntry) Debugf(format string, args ...interface{}) {
	e.inner.Debugf("%s", maskf(format, args...))
}

func (e *maskingEntry) Infof(format string, args ...interface{}) {
	e.inner.Infof("%s", maskf(format, args...))
}

func (e *maskingEntry) Warnf(format string, args ...interface{}) {
	e.inner.Warnf("%s", maskf(format, args...))
}

func (e *maskingEntry) Errorf(format string, args ...interface{}) {
	e.inner.Errorf("%s", maskf(format, args...))
}

func (e *maskingEntry) Fatalf(format string, args ...interface{}) {
	e.inner.Fatalf("%s", maskf(format, args...))
}

func (e *maskingEntry) Trace(msg string) { e.inner.Trace(MaskSecrets(msg)) }
func (e *maskingEntry) Debug(msg string) { e.inner.Debug(MaskSecrets(msg)) }
func (e *maskingEntry) Info(msg string)  { e.inner.Info(MaskSecrets(msg)) }
func (e *maskingEntry) Warn(msg string)  { e.inner.Warn(MaskSecrets(msg)) }
func (e *maskingEntry) Error(msg string) { e.inner.Error(MaskSecrets(msg)) }
func (e *maskingEntry) Fatal(msg string) { e.inner.Fatal(MaskSecrets(msg)) }

func maskf(format string, args ...interface{}) string {
	return MaskSecrets(fmt.Sprintf(format, args...))
}

// maskValue masks a field value. Values without secrets keep their type.
func maskValue(value interface{}) interface{} {
	if s, ok := value.(string); ok {
		return MaskSecrets(s)
	}
	s := fmt.Sprint(value)
	if masked := MaskSecrets(s); masked != s {
		return masked
	}
	return value
}

// secretMaskingLogger is the layer every installed logger is wrapped in.
type secretMaskingLogger struct {
	maskingEntry
	raw Logger
}

var _ Logger = (*secretMaskingLogger)(nil)

func newSecretMaskingLogger(raw Logger) *secretMaskingLogger {
	return &secretMaskingLogger{maskingEntry: maskingEntry{inner: raw}, raw: raw}
}

func (l *secretMaskingLogger) WithField(key string, value interface{}) LogEntry {
	return &maskingEntry{inner: l.raw.WithField(key, maskValue(value))}
}

func (l *secretMaskingLogger) WithFields(fields map[string]any) LogEntry {
	masked := make(map[string]any, len(fields))
	for k, v := range fields {
		masked[k] = maskValue(v)
	}
	return &maskingEntry{inner: l.raw.WithFields(masked)}
}

// WithContext leaves the context fields to the raw logger; they are masked
// as they are extracted.
func (l *secretMaskingLogger) WithContext(ctx context.Context) LogEntry {
	return &maskingEntry{inner: l.raw.WithContext(ctx)}
}

func (l *secretMaskingLogger) SetLogLevel(level string) error { return l.raw.SetLogLevel(level) }
func (l *secretMaskingLogger) GetLogLevel() string            { return l.raw.GetLogLevel() }
func (l *secretMaskingLogger) SetOutput(output io.Writer)     { l.raw.SetOutput(output) }
