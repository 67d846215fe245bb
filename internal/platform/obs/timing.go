package obs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID tags ctx with a fresh correlation id unless one is already present.
func WithRequestID(ctx context.Context) context.Context {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return ctx
	}
	return context.WithValue(ctx, RequestIDKey, uuid.NewString())
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time logs the duration of an operation; use as defer obs.Time(ctx, log, "op")(&err).
func Time(ctx context.Context, log *zap.Logger, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		fields := []zap.Field{
			zap.String("req_id", reqID),
			zap.String("op", name),
			zap.Int64("dur_ms", time.Since(start).Milliseconds()),
		}

		if errp != nil && *errp != nil {
			log.Warn("op failed", append(fields, zap.Error(*errp))...)
			return
		}
		log.Debug("op done", fields...)
	}
}
