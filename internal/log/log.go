// Package log is a thin context-aware facade over zap. Call sites pass a
// context so hooks can enrich entries with request-scoped fields without
// threading a logger through every constructor.
package log

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the process-wide logger.
type Config struct {
	// Level is one of debug, info, warn, error. Unknown values fall back to info.
	Level string `conf:"level" yaml:"level" json:"level"`

	// Name is attached to every entry as the "logger" field.
	Name string `conf:"name" yaml:"name" json:"name"`

	// File enables an additional rotating file sink when Path is set.
	File FileConfig `conf:"file" yaml:"file" json:"file"`
}

// FileConfig configures the rotating file sink.
type FileConfig struct {
	Path       string `conf:"path" yaml:"path" json:"path"`
	MaxSizeMB  int    `conf:"max_size_mb" yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `conf:"max_backups" yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `conf:"max_age_days" yaml:"max_age_days" json:"max_age_days"`
}

type Logger struct {
	zl    *zap.Logger
	level zap.AtomicLevel
	hooks []Hook
}

var (
	mu     sync.RWMutex
	global = newNop()
)

func newNop() *Logger {
	return &Logger{zl: zap.NewNop(), level: zap.NewAtomicLevel()}
}

// New builds a Logger from config. Console output goes to stderr: stdout is
// reserved for the MCP stream.
func New(cfg Config) *Logger {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}

	if cfg.File.Path != "" {
		sink := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    defaultIfZero(cfg.File.MaxSizeMB, 64),
			MaxBackups: defaultIfZero(cfg.File.MaxBackups, 3),
			MaxAge:     defaultIfZero(cfg.File.MaxAgeDays, 14),
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(sink),
			level,
		))
	}

	zl := zap.New(zapcore.NewTee(cores...))
	if cfg.Name != "" {
		zl = zl.Named(cfg.Name)
	}

	logger := &Logger{zl: zl, level: level, hooks: defaultHooks}
	SetGlobal(logger)

	return logger
}

// SetGlobal replaces the process-wide logger used by the package-level helpers.
func SetGlobal(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
}

func getGlobal() *Logger {
	mu.RLock()
	defer mu.RUnlock()

	return global
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "info", "":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func defaultIfZero(v, def int) int {
	if v == 0 {
		return def
	}

	return v
}

func (l *Logger) log(ctx context.Context, lvl zapcore.Level, msg string, fields []Field) {
	if !l.level.Enabled(lvl) {
		return
	}

	for _, hook := range l.hooks {
		fields = append(fields, hook.Apply(ctx, msg)...)
	}

	if ce := l.zl.Check(lvl, msg); ce != nil {
		ce.Write(fields...)
	}
}

// Debug logs at debug level with context-derived fields.
func Debug(ctx context.Context, msg string, fields ...Field) {
	getGlobal().log(ctx, zapcore.DebugLevel, msg, fields)
}

func Info(ctx context.Context, msg string, fields ...Field) {
	getGlobal().log(ctx, zapcore.InfoLevel, msg, fields)
}

func Warn(ctx context.Context, msg string, fields ...Field) {
	getGlobal().log(ctx, zapcore.WarnLevel, msg, fields)
}

func Error(ctx context.Context, msg string, fields ...Field) {
	getGlobal().log(ctx, zapcore.ErrorLevel, msg, fields)
}

// DebugEnabled reports whether debug entries would be emitted, so callers can
// skip expensive field construction.
func DebugEnabled(ctx context.Context) bool {
	_ = ctx

	return getGlobal().level.Enabled(zapcore.DebugLevel)
}

// Sync flushes buffered entries. Safe to call on shutdown.
func Sync() error {
	return getGlobal().zl.Sync()
}
