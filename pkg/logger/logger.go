// Package logger provides a structured, levelled logger built on log/slog.
//
// Handlers are chosen by environment: JSON to stdout in production (for log
// aggregators), human-readable text everywhere else. When LOG_COLLECTION is
// configured an asynchronous MongoDB sink is fanned in as well.
//
// The per-request pattern: the Logger middleware stores a request-scoped
// *slog.Logger (pre-tagged with request_id) in the context, and WithCtx
// retrieves it:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "id", p.ID.Hex())
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/prakashraj/godown/config"
)

var L *slog.Logger

func init() {
	Setup(nil)
}

// Setup installs the default logger, optionally fanning out to extra
// handlers (e.g. the Mongo sink). Called once more from server bootstrap
// when a sink is configured.
func Setup(extra slog.Handler) {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if extra != nil {
		handler = NewMultiHandler(handler, extra)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the request-scoped logger stored in ctx, or the base
// logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
