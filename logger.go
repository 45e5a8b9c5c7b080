package filepartition

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/bmiovino/filepartition/filename"
)

// Logger wraps slog.Logger with partitioner-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithLayout adds the partition naming fields to the logger.
func (l *Logger) WithLayout(layout filename.Layout) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			"dir", layout.Dir,
			"base_name", layout.BaseName,
			"extension", layout.Extension,
		),
	}
}

// LogWrite logs a partition write. partitions is the number of files written.
func (l *Logger) LogWrite(ctx context.Context, partitions, items int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition write failed",
			"partitions_written", partitions,
			"items", items,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "partitions written",
			"partitions", partitions,
			"items", items,
		)
	}
}

// LogRead logs a partition read.
func (l *Logger) LogRead(ctx context.Context, n, items int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition read failed",
			"partition", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "partition read",
			"partition", n,
			"items", items,
		)
	}
}

// LogScan logs a directory scan.
func (l *Logger) LogScan(ctx context.Context, prefix string, partitions int, err error) {
	if err != nil {
		l.WarnContext(ctx, "partition scan failed",
			"prefix", prefix,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "partition scan completed",
			"prefix", prefix,
			"partitions", partitions,
		)
	}
}

// LogPurge logs the removal of a partition set.
func (l *Logger) LogPurge(ctx context.Context, removed int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partition purge failed",
			"removed", removed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "partitions purged",
			"removed", removed,
		)
	}
}

// LogPurgeSkipped logs a file that Purge kept because its name could not be decoded.
func (l *Logger) LogPurgeSkipped(ctx context.Context, name string, err error) {
	l.WarnContext(ctx, "partition purge skipped file",
		"name", name,
		"error", err,
	)
}
