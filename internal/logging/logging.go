// Package logging provides structured logging for the quiz shell.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrUnknownLevel is returned when a level name cannot be parsed.
var ErrUnknownLevel = errors.New("unknown log level")

// Level is a logging level.
type Level = slog.Level

// Attr is a logging attribute.
type Attr = slog.Attr

// Levels supported by the logger.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is a logging implementation.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a new Logger writing text records at info level to w.
func NewLogger(w io.Writer) *Logger {
	return NewLoggerWithLevel(w, LevelInfo)
}

// NewLoggerWithLevel creates a new Logger writing text records at the given level to w.
func NewLoggerWithLevel(w io.Writer, level Level) *Logger {
	return &Logger{slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))}
}

// Discard returns a Logger that drops every record.
func Discard() *Logger {
	return &Logger{slog.New(slog.DiscardHandler)}
}

// ParseLevel converts a level name (debug, info, warn, error) into a Level.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(ctx context.Context, msg string, attrs ...Attr) {
	l.log(ctx, LevelDebug, msg, attrs)
}

// Info logs an info message.
func (l *Logger) Info(ctx context.Context, msg string, attrs ...Attr) {
	l.log(ctx, LevelInfo, msg, attrs)
}

// Warn logs a warning message.
func (l *Logger) Warn(ctx context.Context, msg string, attrs ...Attr) {
	l.log(ctx, LevelWarn, msg, attrs)
}

// Error logs an error message.
func (l *Logger) Error(ctx context.Context, msg string, attrs ...Attr) {
	l.log(ctx, LevelError, msg, attrs)
}

func (l *Logger) log(ctx context.Context, level Level, msg string, attrs []Attr) {
	l.logger.LogAttrs(ctx, level, msg, attrs...)
}

// String creates a new attribute with the given key and value.
func String(key, value string) Attr {
	return slog.String(key, value)
}

// Int creates a new attribute with the given key and int value.
func Int(key string, value int) Attr {
	return slog.Int(key, value)
}

// Int64 creates a new attribute with the given key and int64 value.
func Int64(key string, value int64) Attr {
	return slog.Int64(key, value)
}

// ErrAttr creates a new attribute with the key "err" and the given error value.
func ErrAttr(value error) Attr { return slog.Any("err", value) }
