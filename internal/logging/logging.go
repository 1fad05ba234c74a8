// Package logging builds the zap logger used across axedeck. The TUI owns the
// terminal, so log output goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log levels accepted in the config file.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// defaultLevel is used when an unknown level string is configured.
const defaultLevel = zapcore.InfoLevel

// ParseLevel converts a textual level to zapcore.Level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel, "warning":
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultLevel
	}
}

// NewFile returns a logger appending console-encoded lines to path, and a
// function that flushes and closes the file.
func NewFile(path, level string) (*zap.Logger, func(), error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := zap.New(newConsoleCore(zapcore.Lock(file), ParseLevel(level)))
	closer := func() {
		_ = logger.Sync()
		_ = file.Close()
	}
	return logger, closer, nil
}

// NewStderr returns a logger for one-shot CLI commands.
func NewStderr(level string) *zap.Logger {
	return zap.New(newConsoleCore(zapcore.Lock(os.Stderr), ParseLevel(level)))
}

func newConsoleCore(ws zapcore.WriteSyncer, level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
}
