// Package logging provides the structured logging facade used throughout
// the conversion pipeline: a thin, swappable wrapper over log/slog so
// subsystems depend on an interface rather than the global logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Level mirrors slog's levels with an explicit ordering usable for
// comparisons without importing slog at call sites.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a
// Level, defaulting to LevelInfo for anything else.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger is the interface every subsystem depends on. It lets tests inject
// a recording implementation instead of writing to stdout.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...interface{})
	Info(ctx context.Context, msg string, fields ...interface{})
	Warn(ctx context.Context, err error, msg string, fields ...interface{})
	Error(ctx context.Context, err error, msg string, fields ...interface{})

	With(fields ...interface{}) Logger
	WithComponent(component string) Logger
}

// Config configures a slog-backed Logger.
type Config struct {
	Level     Level
	Format    string // "json" or "text"
	Output    io.Writer
	AddSource bool
	Component string
}

// DefaultConfig returns the logger configuration the CLI starts with.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Format: "text",
		Output: os.Stdout,
	}
}

// slogLogger implements Logger over log/slog.
type slogLogger struct {
	logger    *slog.Logger
	level     Level
	component string
	fields    map[string]interface{}
}

// New creates a Logger from Config.
func New(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level.slogLevel(), AddSource: cfg.AddSource}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	return &slogLogger{
		logger:    slog.New(handler),
		level:     cfg.Level,
		component: cfg.Component,
		fields:    map[string]interface{}{},
	}
}

// Discard returns a Logger that drops everything, for tests that don't care
// about log output.
func Discard() Logger {
	return New(Config{Level: LevelError, Output: io.Discard})
}

func (l *slogLogger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelDebug, nil, msg, fields...)
}

func (l *slogLogger) Info(ctx context.Context, msg string, fields ...interface{}) {
	l.log(ctx, LevelInfo, nil, msg, fields...)
}

func (l *slogLogger) Warn(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.log(ctx, LevelWarn, err, msg, fields...)
}

func (l *slogLogger) Error(ctx context.Context, err error, msg string, fields ...interface{}) {
	l.log(ctx, LevelError, err, msg, fields...)
}

func (l *slogLogger) With(fields ...interface{}) Logger {
	merged := cloneFields(l.fields)
	applyPairs(merged, fields)
	return &slogLogger{logger: l.logger, level: l.level, component: l.component, fields: merged}
}

func (l *slogLogger) WithComponent(component string) Logger {
	return &slogLogger{logger: l.logger, level: l.level, component: component, fields: l.fields}
}

func (l *slogLogger) log(ctx context.Context, level Level, err error, msg string, fields ...interface{}) {
	if level < l.level {
		return
	}
	attrs := make([]slog.Attr, 0, len(l.fields)+len(fields)/2+2)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	for k, v := range l.fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	applyAttrs(&attrs, fields)

	record := slog.NewRecord(time.Now(), level.slogLevel(), msg, 0)
	record.AddAttrs(attrs...)
	_ = l.logger.Handler().Handle(ctx, record)
}

func cloneFields(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func applyPairs(dst map[string]interface{}, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			dst[key] = fields[i+1]
		}
	}
}

func applyAttrs(dst *[]slog.Attr, fields []interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		if key, ok := fields[i].(string); ok {
			*dst = append(*dst, slog.Any(key, fields[i+1]))
		}
	}
}
