package logger

import (
	"errors"
	"log"
	"sync"

	"github.com/rdfsql/gosparql/loginterface"
)

// Aliases of the loginterface types used throughout the package.
type (
	LogEntry             = loginterface.LogEntry
	Logger               = loginterface.Logger
	ClientLogContextHook = loginterface.ClientLogContextHook
)

var (
	loggerAccessorMu sync.Mutex
	// globalLogger is the logger used by every package of the driver, always wrapped with secret masking.
	globalLogger Logger
)

// GetLogger returns the global logger for use by internal packages
func GetLogger() Logger {
	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()

	return globalLogger
}

// SetLogger sets the raw logger implementation and wraps it with secret masking.
// There is no way to bypass the masking layer. If the provided logger is
// already wrapped, it is unwrapped first to prevent double masking.
//
// A Proxy is rejected because it would delegate to itself.
func SetLogger(providedLogger Logger) error {
	loggerAccessorMu.Lock()
	defer loggerAccessorMu.Unlock()

	if providedLogger == nil {
		return errors.New("logger cannot be nil")
	}
	if _, isProxy := providedLogger.(*Proxy); isProxy {
		return errors.New("cannot set Proxy as raw logger - it would create infinite recursion")
	}

	rawLogger := providedLogger
	if secretMasking, ok := rawLogger.(*secretMaskingLogger); ok {
		rawLogger = secretMasking.raw
	}

	globalLogger = newSecretMaskingLogger(rawLogger)
	return nil
}

func init() {
	if err := SetLogger(newRawLogger()); err != nil {
		log.Panicf("cannot set default logger. %v", err)
	}
}

// CreateDefaultLogger creates a new instance of the default logrus-backed logger with secret masking.
func CreateDefaultLogger() Logger {
	return newSecretMaskingLogger(newRawLogger())
}
