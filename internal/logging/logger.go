// Package logging defines a minimal structured-logging interface used across
// the service. The variadic args are key–value pairs, e.g.:
//
//	log.Info(ctx, "listening", "addr", addr, "env", env)
package logging

import "context"

// Logger is a context-aware, structured logger.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
