package logger_i

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/akolanti/portfolio/internal/config"
)

type Logger struct {
	inner *slog.Logger
}

// Init installs the process-wide handler: text while developing, JSON in production.
func Init(cfg *config.Config) {
	InitWriter(cfg, os.Stdout)
}

func InitWriter(cfg *config.Config, w io.Writer) {
	options := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	isProd := cfg != nil && cfg.IsProd()
	if isProd {
		options.Level = config.LOG_LEVEL_PROD
	}
	if cfg != nil && cfg.LogLevel != "" {
		options.Level = parseLevel(cfg.LogLevel)
	}

	var handler slog.Handler
	if isProd {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewLogger(section string) *Logger {
	return &Logger{
		inner: slog.Default().With("component", section),
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.inner.Error(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.inner.Warn(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.inner.Debug(msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		inner: l.inner.With(args...),
	}
}

// FromContext tags the logger with the request trace id, when the context carries one.
func (l *Logger) FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok && trace != "" {
		return l.With(config.TRACE_ID_KEY, trace)
	}
	return l
}
