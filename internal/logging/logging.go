// Package logging builds the application's zap logger. The TUI owns the terminal,
// so logs always go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log file and level.
type Config struct {
	Path  string
	Level string
}

// New opens cfg.Path in append mode and returns a JSON logger writing to it.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.Path}
	zc.ErrorOutputPaths = []string{cfg.Path}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil
	return zc.Build()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger { return zap.NewNop() }

// ErrorLog reports swallowed errors with their category and operation.
type ErrorLog struct {
	Logger *zap.Logger
}

// LogError implements dashboard.ErrorLogger.
func (l ErrorLog) LogError(category, operation string, err error) {
	if l.Logger == nil {
		return
	}
	l.Logger.Error("operation failed",
		zap.String("category", category),
		zap.String("operation", operation),
		zap.Error(err),
	)
}
