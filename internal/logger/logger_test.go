// ABOUTME: Tests for logger construction
// ABOUTME: Verifies level parsing and file output

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLevel(tc.input); got != tc.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "debug.log")

	log, err := New(Config{Level: "debug", Format: "json", Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	log.Debug("bootstrap finished", zap.String("user", "alice"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(data), "bootstrap finished") {
		t.Errorf("expected log message in file, got %q", string(data))
	}
	if !strings.Contains(string(data), `"user":"alice"`) {
		t.Errorf("expected JSON field in file, got %q", string(data))
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	log, err := New(Config{Level: "warn", Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	log.Info("should not appear")
	log.Warn("should appear")
	_ = log.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "should not appear") {
		t.Error("expected info message to be filtered at warn level")
	}
	if !strings.Contains(string(data), "should appear") {
		t.Error("expected warn message to be written")
	}
}
