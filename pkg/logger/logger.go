// Package logger configures the process-wide slog handler and carries the
// build id through contexts.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type buildIDKey struct{}

// Setup installs the default logger. Artifacts and summaries are printed on
// stdout, so logs go to stderr.
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New returns a logger writing to w. format is "json" or "text"; anything
// else is treated as text. Unknown levels fall back to info.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// WithBuildID tags ctx so FromContext loggers carry build_id.
func WithBuildID(ctx context.Context, buildID string) context.Context {
	return context.WithValue(ctx, buildIDKey{}, buildID)
}

func FromContext(ctx context.Context) *slog.Logger {
	if id, ok := ctx.Value(buildIDKey{}).(string); ok {
		return slog.Default().With("build_id", id)
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
