package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const levelOff = "off"

// rawLogger implements Logger on top of logrus. logrus has no level that
// disables output entirely, so "off" is tracked separately.
type rawLogger struct {
	inner *logrus.Logger
	off   atomic.Bool
}

var _ Logger = (*rawLogger)(nil)

func newRawLogger() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})
	return &rawLogger{inner: l}
}

// SetLogLevel accepts the logrus level names plus "off".
func (log *rawLogger) SetLogLevel(level string) error {
	if strings.EqualFold(level, levelOff) {
		log.off.Store(true)
		return nil
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("error while setting log level. %v", err)
	}
	log.off.Store(false)
	log.inner.SetLevel(parsed)
	return nil
}

func (log *rawLogger) GetLogLevel() string {
	if log.off.Load() {
		return levelOff
	}
	return log.inner.GetLevel().String()
}

func (log *rawLogger) SetOutput(output io.Writer) {
	log.inner.SetOutput(output)
}

func (log *rawLogger) WithField(key string, value interface{}) LogEntry {
	return &rawEntry{inner: log.inner.WithField(key, value), parent: log}
}

func (log *rawLogger) WithFields(fields map[string]any) LogEntry {
	return &rawEntry{inner: log.inner.WithFields(fields), parent: log}
}

func (log *rawLogger) WithContext(ctx context.Context) LogEntry {
	return &rawEntry{inner: log.inner.WithContext(ctx).WithFields(extractContextFields(ctx)), parent: log}
}

func (log *rawLogger) entry() *logrus.Entry {
	return logrus.NewEntry(log.inner)
}

func (log *rawLogger) Tracef(format string, args ...interface{}) {
	(&rawEntry{inner: log.entry(), parent: log}).Tracef(format, args...)
}

func (log *rawLogger) Debugf(format string, args ...interface{}) {
	(&rawEntry{inner: log.entry(), parent: log}).Debugf(format, args...)
}

func (log *rawLogger) Infof(format string, args ...interface{}) {
	(&rawEntry{inner: log.entry(), parent: log}).Infof(format, args...)
}

func (log *rawLogger) Warnf(format string, args ...interface{}) {
	(&rawEntry{inner: log.entry(), parent: log}).Warnf(format, args...)
}

func (log *rawLogger) Errorf(format string, args ...interface{}) {
	(&rawEntry{inner: log.entry(), parent: log}).Errorf(format, args...)
}

func (log *rawLogger) Fatalf(format string, args ...interface{}) {
	(&rawEntry{inner: log.entry(), parent: log}).Fatalf(format, args...)
}

func (log *rawLogger) Trace(msg string) {
	(&rawEntry{inner: log.entry(), parent: log}).Trace(msg)
}

func (log *rawLogger) Debug(msg string) {
	(&rawEntry{inner: log.entry(), parent: log}).Debug(msg)
}

func (log *rawLogger) Info(msg string) {
	(&rawEntry{inner: log.entry(), parent: log}).Info(msg)
}

func (log *rawLogger) Warn(msg string) {
	(&rawEntry{inner: log.entry(), parent: log}).Warn(msg)
}

func (log *rawLogger) Error(msg string) {
	(&rawEntry{inner: log.entry(), parent: log}).Error(msg)
}

func (log *rawLogger) Fatal(msg string) {
	(&rawEntry{inner: log.entry(), parent: log}).Fatal(msg)
}

// rawEntry is a logrus entry that honors the "off" level of its logger.
type rawEntry struct {
	inner  *logrus.Entry
	parent *rawLogger
}

var _ LogEntry = (*rawEntry)(nil)

func (e *rawEntry) enabled() bool {
	return !e.parent.off.Load()
}

func (e *rawEntry) Tracef(format string, args ...interface{}) {
	if e.enabled() {
		e.inner.Tracef(format, args...)
	}
}

func (e *rawEntry) Debugf(format string, args ...interface{}) {
	if e.enabled() {
		e.inner.Debugf(format, args...)
	}
}

func (e *rawEntry) Infof(format string, args ...interface{}) {
	if e.enabled() {
		e.inner.Infof(format, args...)
	}
}

func (e *rawEntry) Warnf(format string, args ...interface{}) {
	if e.enabled() {
		e.inner.Warnf(format, args...)
	}
}

func (e *rawEntry) Errorf(format string, args ...interface{}) {
	if e.enabled() {
		e.inner.Errorf(format, args...)
	}
}

func (e *rawEntry) Fatalf(format string, args ...interface{}) {
	e.inner.Fatalf(format, args...)
}

func (e *rawEntry) Trace(msg string) {
	if e.enabled() {
		e.inner.Trace(msg)
	}
}

func (e *rawEntry) Debug(msg string) {
	if e.enabled() {
		e.inner.Debug(msg)
	}
}

func (e *rawEntry) Info(msg string) {
	if e.enabled() {
		e.inner.Info(msg)
	}
}

func (e *rawEntry) Warn(msg string) {
	if e.enabled() {
		e.inner.Warn(msg)
	}
}

func (e *rawEntry) Error(msg string) {
	if e.enabled() {
		e.inner.Error(msg)
	}
}

func (e *rawEntry) Fatal(msg string) {
	e.inner.Fatal(msg)
}
