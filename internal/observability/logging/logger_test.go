package logging

import (
	"context"
	"log/slog"
	"testing"

	"doc-digest/internal/handler/http/requestid"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
}

func TestNewLogger_DebugLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := NewLogger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled when LOG_LEVEL=debug")
	}
}

func TestNewTextLogger(t *testing.T) {
	logger := NewTextLogger()
	if logger == nil {
		t.Fatal("NewTextLogger() returned nil")
	}
}

func TestWithRequestID_NoID(t *testing.T) {
	logger := slog.Default()
	got := WithRequestID(context.Background(), logger)
	if got != logger {
		t.Error("WithRequestID without an ID in context should return the original logger")
	}
}

func TestWithRequestID_WithID(t *testing.T) {
	logger := slog.Default()
	ctx := requestid.WithRequestID(context.Background(), "req-123")
	got := WithRequestID(ctx, logger)
	if got == logger {
		t.Error("WithRequestID with an ID in context should return a derived logger")
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := NewLogger()
	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Error("FromContext should return the logger stored with WithLogger")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext without a stored logger should fall back to slog.Default")
	}
}
