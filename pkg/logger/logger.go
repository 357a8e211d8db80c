// Package logger provides context-aware structured logging backed by zap.
// A process calls Setup once; request handlers, jobs and migration commands
// then attach fields to the logger carried in their context.
package logger

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

const (
	// DevelopmentEnvironment configures a human readable console logger at debug level.
	DevelopmentEnvironment = "development"
	// ProductionEnvironment configures a JSON logger at info level.
	ProductionEnvironment = "production"
)

var (
	defaultLogger *zap.Logger     //nolint: gochecknoglobals
	level         zap.AtomicLevel //nolint: gochecknoglobals
)

// Setup initializes the default logger for the given environment.
func Setup(environment string) {
	cfg := zap.NewDevelopmentConfig()
	if environment == ProductionEnvironment {
		cfg = zap.NewProductionConfig()
	}
	level = cfg.Level
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	defaultLogger = l
}

// EnableDebug lowers the level of the default logger to debug. Migration
// commands call it when --debug is passed.
func EnableDebug() {
	if defaultLogger == nil {
		Setup(DevelopmentEnvironment)
	}
	level.SetLevel(zap.DebugLevel)
}

type key struct{}

// Get retrieves the logger stored in ctx, falling back to the default logger.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
		return l
	}
	if defaultLogger == nil {
		return zap.NewNop()
	}

	return defaultLogger
}

// Slog returns a log/slog logger writing into the zap core of ctx's logger.
// Libraries that accept *slog.Logger (river) log through it.
func Slog(ctx context.Context) *slog.Logger {
	return slog.New(zapslog.NewHandler(Get(ctx).Core()))
}

// WithLogger returns a context carrying the given logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// WithFields returns a context whose logger includes the given fields.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug reports whether the logger in ctx emits debug entries.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Core().Enabled(zap.DebugLevel)
}

// Sync flushes buffered entries of the default logger.
func Sync() {
	if defaultLogger != nil {
		_ = defaultLogger.Sync()
	}
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

// Fatal logs at fatal level and exits the process.
func Fatal(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Fatal(msg, fields...)
}
