// Package logging adapts zap to the calculation.Logger interface used by the
// projection engine.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level, encoding and destinations of a logger
type Config struct {
	Level       string   // debug, info, warn or error
	Format      string   // console or json
	OutputPaths []string // defaults to stderr so stdout stays free for reports
}

// Logger is a zap SugaredLogger exposing the printf-style methods the
// engine expects
type Logger struct {
	s *zap.SugaredLogger
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.s.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.s.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.s.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }

// Named returns a child logger tagged with name
func (l *Logger) Named(name string) *Logger {
	return &Logger{s: l.s.Named(name)}
}

// With returns a child logger carrying the given key/value pairs
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{s: l.s.With(keysAndValues...)}
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.s.Sync()
}

// ParseLevel converts a level name into a zapcore.Level. Unknown names map
// to warn.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// New builds a zap-backed Logger from cfg
func New(cfg Config) (*Logger, error) {
	if len(cfg.OutputPaths) == 0 {
		cfg.OutputPaths = []string{"stderr"}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encoding := "json"
	if cfg.Format != "json" {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encoding = "console"
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Development:      encoding == "console",
		Encoding:         encoding,
		EncoderConfig:    encCfg,
		OutputPaths:      cfg.OutputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	z, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("logging: failed to build zap logger: %w", err)
	}
	return &Logger{s: z.Sugar()}, nil
}

// NewLogger is New with only a level and format
func NewLogger(level, format string) (*Logger, error) {
	return New(Config{Level: level, Format: format})
}

// NewFromCore wraps an existing core, mainly for tests with observed logs
func NewFromCore(core zapcore.Core) *Logger {
	return &Logger{s: zap.New(core, zap.AddCallerSkip(1)).Sugar()}
}

// NewNop returns a logger that discards everything
func NewNop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}
