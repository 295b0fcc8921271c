package logger

import (
	"context"
	"fmt"
	"sync"
)

// contextFields holds the context keys and hooks whose values are attached to
// log entries by WithContext.
type contextFields struct {
	mu    sync.RWMutex
	keys  []interface{}
	hooks map[string]ClientLogContextHook
}

var ctxFields = &contextFields{hooks: make(map[string]ClientLogContextHook)}

// SetLogKeys replaces the context keys written to log entries.
func SetLogKeys(keys []interface{}) {
	ctxFields.mu.Lock()
	defer ctxFields.mu.Unlock()
	ctxFields.keys = append([]interface{}(nil), keys...)
}

// GetLogKeys returns a copy of the context keys written to log entries.
func GetLogKeys() []interface{} {
	ctxFields.mu.RLock()
	defer ctxFields.mu.RUnlock()
	return append([]interface{}{}, ctxFields.keys...)
}

// RegisterLogContextHook adds a field computed from the context under key.
func RegisterLogContextHook(key string, hook ClientLogContextHook) {
	ctxFields.mu.Lock()
	defer ctxFields.mu.Unlock()
	ctxFields.hooks[key] = hook
}

// extractContextFields collects the masked values of the registered keys and
// hooks found in ctx.
func extractContextFields(ctx context.Context) map[string]any {
	fields := make(map[string]any)
	if ctx == nil {
		return fields
	}
	ctxFields.mu.RLock()
	defer ctxFields.mu.RUnlock()
	for _, key := range ctxFields.keys {
		if val := ctx.Value(key); val != nil {
			fields[fmt.Sprint(key)] = MaskSecrets(fmt.Sprint(val))
		}
	}
	for key, hook := range ctxFields.hooks {
		if val := hook(ctx); val != "" {
			fields[key] = MaskSecrets(val)
		}
	}
	return fields
}
