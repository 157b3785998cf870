package log

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type correlationIDType int

const (
	requestIDKey correlationIDType = iota
	requestFieldsKey
)

// WithRequestID returns a context which knows its request ID.
// A request tracks one run of the deployer across every transaction it sends.
func WithRequestID(ctx context.Context, requestID string, fields ...zap.Field) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	if len(fields) > 0 {
		ctx = context.WithValue(ctx, requestFieldsKey, fields)
	}
	return ctx
}

// WithNewRequestID does the same thing as WithRequestID but generates a new, random requestID.
func WithNewRequestID(ctx context.Context, fields ...zap.Field) context.Context {
	return WithRequestID(ctx, uuid.NewString(), fields...)
}

// ExtractRequestID extracts the request id from a context object.
func ExtractRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// ZContext returns logger fields stored in the context.
func ZContext(ctx context.Context) []zap.Field {
	var fields []zap.Field
	if id, ok := ExtractRequestID(ctx); ok {
		fields = append(fields, zap.String("requestId", id))
	}
	if extra, ok := ctx.Value(requestFieldsKey).([]zap.Field); ok {
		fields = append(fields, extra...)
	}
	return fields
}

// FromContext returns logger with fields stored in the context.
func FromContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	return logger.With(ZContext(ctx)...)
}
