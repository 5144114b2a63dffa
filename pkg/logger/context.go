package logger

import (
	"context"
	"log/slog"
)

type ctxKey string

const loggerKey ctxKey = "logger"

// With returns a new context that includes a logger with fields.
func With(ctx context.Context, fields ...any) context.Context {
	l := From(ctx).With(fields...)
	return context.WithValue(ctx, loggerKey, l)
}

// WithPrincipal tags the request logger with the resolved caller.
func WithPrincipal(ctx context.Context, userID string, hotelID *string) context.Context {
	if hotelID == nil {
		return With(ctx, "user_id", userID)
	}
	return With(ctx, "user_id", userID, "hotel_id", *hotelID)
}

// From returns the logger stored in context, or default if missing.
func From(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return LoggerWrapper()
	}
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
