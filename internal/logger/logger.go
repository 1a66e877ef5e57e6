package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
)

var (
	emailRegex  = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	tokenRegex  = regexp.MustCompile(`eyJ[^\s"]+`)
	bearerRegex = regexp.MustCompile(`(?i)bearer\s+\S+`)
)

// Anonymize replaces sensitive information in log text (emails, tokens).
func Anonymize(s string) string {
	s = emailRegex.ReplaceAllString(s, "[REDACTED_EMAIL]")
	s = bearerRegex.ReplaceAllString(s, "Bearer [REDACTED_TOKEN]")
	s = tokenRegex.ReplaceAllString(s, "[REDACTED_TOKEN]")
	return s
}

// Logger is a structured JSON logger; every entry carries the module name.
type Logger struct {
	out *slog.Logger
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

// New creates a Logger writing JSON lines to w.
func New(w io.Writer, level string) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Value.Kind() == slog.KindString {
				a.Value = slog.StringValue(Anonymize(a.Value.String()))
			}
			return a
		},
	})
	return &Logger{out: slog.New(handler)}
}

var std = New(os.Stdout, "info")

// Default returns the process-wide logger.
func Default() *Logger {
	return std
}

// SetDefault replaces the process-wide logger. Call it once from main.
func SetDefault(l *Logger) {
	std = l
}

// Discard returns a logger that drops everything, for tests.
func Discard() *Logger {
	return New(io.Discard, "error")
}

func (l *Logger) log(level slog.Level, module, msg string, err error, args ...any) {
	attrs := append([]any{slog.String("module", module)}, args...)
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.out.Log(context.Background(), level, msg, attrs...)
}

func (l *Logger) Debug(module, msg string, args ...any) {
	l.log(slog.LevelDebug, module, msg, nil, args...)
}

func (l *Logger) Info(module, msg string, args ...any) {
	l.log(slog.LevelInfo, module, msg, nil, args...)
}

func (l *Logger) Warn(module, msg string, err error, args ...any) {
	l.log(slog.LevelWarn, module, msg, err, args...)
}

func (l *Logger) Error(module, msg string, err error, args ...any) {
	l.log(slog.LevelError, module, msg, err, args...)
}
