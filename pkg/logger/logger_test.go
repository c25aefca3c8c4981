package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIDFromContext(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(New(&buf, "warn", "json"))

	slog.Info("hidden")
	FromContext(WithBuildID(context.Background(), "b-1")).Warn("shown")
	FromContext(context.Background()).Error("untagged")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown","build_id":"b-1"`)
	assert.Contains(t, out, `"msg":"untagged"}`)
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug", "logfmt").Debug("fed", "docs", 3)
	assert.Contains(t, buf.String(), "msg=fed docs=3")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}
