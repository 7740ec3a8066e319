package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()
	if got := LoggerFromContext(ctx); got != slog.Default() {
		t.Error("LoggerFromContext() should fall back to slog.Default()")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := LoggerFromContext(WithLogger(ctx, logger)); got != logger {
		t.Error("LoggerFromContext() should return the logger stored in context")
	}

	wrongType := context.WithValue(ctx, loggerKey, "not a logger")
	if got := LoggerFromContext(wrongType); got != slog.Default() {
		t.Error("LoggerFromContext() should ignore values of the wrong type")
	}
}

func TestRequestIDFromContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
	if got := RequestIDFromContext(WithRequestID(ctx, "req-1")); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
}
