package logger

import "context"

type contextKey string

const (
	loggerKey contextKey = "restoremesh.logger"
	connIDKey contextKey = "restoremesh.conn_id"
)

// connIDAttr is the attribute name under which the connection ID is logged.
const connIDAttr = "conn_id"

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// FromContextOr extracts the logger from context, returning fallback if none
// is set.
func FromContextOr(ctx context.Context, fallback Logger) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return fallback
}

// WithConnID adds a connection ID to the context.
func WithConnID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, connIDKey, id)
}

// ConnIDFromContext extracts the connection ID from context.
func ConnIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(connIDKey).(string); ok {
		return id
	}
	return ""
}

// L returns the logger carried by ctx bound to ctx, so records pick up the
// connection ID stored by WithConnID.
func L(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
