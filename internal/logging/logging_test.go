package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/axedeck/internal/logtail"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" INFO ":  zapcore.InfoLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFile_WritesFilteredConsoleLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "axedeck.log")
	logger, closeLog, err := NewFile(path, "warn")
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("probe failed", zap.String("address", "10.0.0.5"))
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	if strings.Contains(text, "hidden") {
		t.Fatalf("info line written at warn level: %q", text)
	}
	if !strings.Contains(text, "probe failed") || !strings.Contains(text, "10.0.0.5") {
		t.Fatalf("log = %q, want warn line with address", text)
	}

	lines, err := logtail.Read(path, 5)
	if err != nil {
		t.Fatalf("logtail.Read: %v", err)
	}
	if len(lines) != 1 || logtail.LevelOf(lines[0]) != logtail.LevelWarn {
		t.Fatalf("lines = %q, want one WARN line", lines)
	}
}

func TestNewFile_EmptyPath(t *testing.T) {
	if _, _, err := NewFile(" ", "info"); err == nil {
		t.Fatal("NewFile with empty path returned nil error")
	}
}
