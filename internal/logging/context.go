package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSessionID is the standardized key for the id of a crop session.
	FieldSessionID = "session_id"
	// FieldImage is the standardized key for the image being processed.
	FieldImage = "image"
)

type sessionKey struct{}

type imageKey struct{}

// WithSessionID stores a session id on ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// WithImage stores the current image filename on ctx.
func WithImage(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, imageKey{}, name)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := ctx.Value(sessionKey{}).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	if name, ok := ctx.Value(imageKey{}).(string); ok && name != "" {
		fields = append(fields, slog.String(FieldImage, name))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
