package logger

import (
	"context"
	"io"
)

// Proxy delegates all calls to the global logger, so a package-level variable
// holding it always reaches the logger most recently passed to SetLogger.
type Proxy struct{}

var _ Logger = (*Proxy)(nil)

func (p *Proxy) Tracef(format string, args ...interface{}) {
	GetLogger().Tracef(format, args...)
}

func (p *Proxy) Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

func (p *Proxy) Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func (p *Proxy) Warnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

func (p *Proxy) Errorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}

func (p *Proxy) Fatalf(format string, args ...interface{}) {
	GetLogger().Fatalf(format, args...)
}

func (p *Proxy) Trace(msg string) {
	GetLogger().Trace(msg)
}

func (p *Proxy) Debug(msg string) {
	GetLogger().Debug(msg)
}

func (p *Proxy) Info(msg string) {
	GetLogger().Info(msg)
}

func (p *Proxy) Warn(msg string) {
	GetLogger().Warn(msg)
}

func (p *Proxy) Error(msg string) {
	GetLogger().Error(msg)
}

func (p *Proxy) Fatal(msg string) {
	GetLogger().Fatal(msg)
}

func (p *Proxy) WithField(key string, value interface{}) LogEntry {
	return GetLogger().WithField(key, value)
}

func (p *Proxy) WithFields(fields map[string]any) LogEntry {
	return GetLogger().WithFields(fields)
}

func (p *Proxy) WithContext(ctx context.Context) LogEntry {
	return GetLogger().WithContext(ctx)
}

func (p *Proxy) SetLogLevel(level string) error {
	return GetLogger().SetLogLevel(level)
}

func (p *Proxy) GetLogLevel() string {
	return GetLogger().GetLogLevel()
}

func (p *Proxy) SetOutput(output io.Writer) {
	GetLogger().SetOutput(output)
}

// NewProxy creates a new logger proxy that delegates all calls
// to the global logger managed by the internal package.
func NewProxy() Logger {
	return &Proxy{}
}
