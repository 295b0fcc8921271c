package arrowbatches

import (
	"context"

	"github.com/apache/arrow/go/v15/arrow"
)

type contextKey string

const timestampUnitKey contextKey = "ARROW_TIMESTAMP_UNIT"

// Timestamp unit options.
const (
	UseNanosecondTimestamp  = arrow.Nanosecond
	UseMicrosecondTimestamp = arrow.Microsecond
	UseMillisecondTimestamp = arrow.Millisecond
	UseSecondTimestamp      = arrow.Second
)

// WithTimestampUnit returns a context that sets the unit of exported timestamp
// columns. The default is nanoseconds.
func WithTimestampUnit(ctx context.Context, unit arrow.TimeUnit) context.Context {
	return context.WithValue(ctx, timestampUnitKey, unit)
}

func timestampUnit(ctx context.Context) arrow.TimeUnit {
	if unit, ok := ctx.Value(timestampUnitKey).(arrow.TimeUnit); ok {
		return unit
	}
	return UseNanosecondTimestamp
}
