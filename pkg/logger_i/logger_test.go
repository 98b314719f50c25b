package logger_i

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/akolanti/portfolio/internal/config"
)

func TestFromContext_AddsTrace(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&config.Config{Env: "development"}, &buf)
	defer slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "trace-123")
	NewLogger("test").FromContext(ctx).Info("hello")

	out := buf.String()
	if !strings.Contains(out, "traceId=trace-123") || !strings.Contains(out, "component=test") {
		t.Errorf("unexpected log line: %s", out)
	}
}

func TestInit_ProdUsesJSONAndInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&config.Config{Env: "production"}, &buf)
	defer slog.SetDefault(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	l := NewLogger("prod")
	l.Debug("hidden")
	l.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line should be filtered in production")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected json output, got %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"other":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) got %v, want %v", in, got, want)
		}
	}
}
