package uubed

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with uubed-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that writes JSON-formatted logs to w.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable text logs to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithMethod adds the encoding method to the logger.
func (l *Logger) WithMethod(m Method) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", m.String()),
	}
}

// WithK adds a k (top-k size) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithPlanes adds a SimHash plane count field to the logger.
func (l *Logger) WithPlanes(planes int) *Logger {
	return &Logger{
		Logger: l.Logger.With("planes", planes),
	}
}

// LogEncode logs a single encode operation.
func (l *Logger) LogEncode(ctx context.Context, m Method, dimension int, err error) {
	l = l.WithMethod(m)
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"dimension", dimension,
			"code", ErrorCode(err).String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"dimension", dimension,
		)
	}
}

// LogDecode logs a single decode operation.
func (l *Logger) LogDecode(ctx context.Context, m Method, length int, err error) {
	l = l.WithMethod(m)
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"length", length,
			"code", ErrorCode(err).String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "decode completed",
			"length", length,
		)
	}
}

// LogBatch logs a batch operation.
func (l *Logger) LogBatch(ctx context.Context, m Method, count, threads int, err error) {
	l = l.WithMethod(m)
	if err != nil {
		l.ErrorContext(ctx, "batch failed",
			"count", count,
			"threads", threads,
			"code", ErrorCode(err).String(),
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch completed",
			"count", count,
			"threads", threads,
		)
	}
}
