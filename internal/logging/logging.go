// Package logging carries a zap logger through contexts so that nested
// download calls inherit the caller's fields.
package logging

import (
	"context"

	"go.uber.org/zap"
)

var fallback = zap.NewNop()

// SetLogger replaces the package fallback logger used when a context
// carries none. Intended to be called once at startup.
func SetLogger(l *zap.Logger) {
	if l != nil {
		fallback = l
	}
}

type ctxKey struct{}

// FromContext returns the logger carried by ctx, or the package fallback.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return fallback
}

// NewContext returns a context carrying the current logger extended with
// the given fields.
func NewContext(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, ctxKey{}, FromContext(ctx).With(fields...))
}
