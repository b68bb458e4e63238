package core

import "context"

type ctxKey int

const suppressHeaderKey ctxKey = iota

// WithSuppressHeader returns a context that disables progress headers on
// stdout. Used by the MCP server, where stdout carries protocol frames.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// headerSuppressed reports whether progress headers should be skipped.
func headerSuppressed(ctx context.Context) bool {
	suppressed, _ := ctx.Value(suppressHeaderKey).(bool)
	return suppressed
}
