package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey       contextKey = "logger"
	requestIDKey    contextKey = "request_id"
	festivalSlugKey contextKey = "festival_slug"
)

// WithContext stores a logger on the context
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the request-scoped logger, or a no-op logger when the
// context carries none.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// WithRequestID tags the context and logger with the request id. The enriched
// logger replaces the one carried on the context.
func WithRequestID(ctx context.Context, l *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	l = l.With(zap.String("request_id", requestID))
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return WithContext(ctx, l), l
}

// GetRequestID returns the request id, or "" when the context carries none
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUserID tags the context and logger with the authenticated user
func WithUserID(ctx context.Context, l *zap.Logger, userID string) (context.Context, *zap.Logger) {
	l = l.With(zap.String("user_id", userID))
	return WithContext(ctx, l), l
}

// WithTenantID tags the context and logger with the token's tenant
func WithTenantID(ctx context.Context, l *zap.Logger, tenantID string) (context.Context, *zap.Logger) {
	l = l.With(zap.String("tenant_id", tenantID))
	return WithContext(ctx, l), l
}

// WithFestivalSlug tags the context and logger with the festival being worked
// on. The sync sweep sets it per tenant so SQL traces and batch logs from the
// same run line up.
func WithFestivalSlug(ctx context.Context, l *zap.Logger, slug string) (context.Context, *zap.Logger) {
	l = l.With(zap.String("festival", slug))
	ctx = context.WithValue(ctx, festivalSlugKey, slug)
	return WithContext(ctx, l), l
}

// GetFestivalSlug returns the festival slug, or "" when the context carries
// none
func GetFestivalSlug(ctx context.Context) string {
	if slug, ok := ctx.Value(festivalSlugKey).(string); ok {
		return slug
	}
	return ""
}
