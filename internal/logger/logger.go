// ABOUTME: Structured logging configuration using zap
// ABOUTME: Builds a logger from level/format settings, writing to a file or stderr

package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls logger construction.
// Level: debug, info, warn, error (default: info)
// Format: console, json (default: console)
// Path: log file; empty means stderr
type Config struct {
	Level  string
	Format string
	Path   string
}

// New builds a zap logger from cfg. When Path is set, the parent directory is
// created so the TUI can log without touching the terminal.
func New(cfg Config) (*zap.Logger, error) {
	output := "stderr"
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		output = cfg.Path
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	zcfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Encoding:          parseFormat(cfg.Format),
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{output},
		DisableStacktrace: true,
	}

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// ParseLevel converts a string log level to a zap level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func parseFormat(format string) string {
	if strings.ToLower(format) == "json" {
		return "json"
	}
	return "console"
}
