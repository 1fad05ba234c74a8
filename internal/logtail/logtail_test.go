package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "axedeck.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0o644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"zero returns nothing", 0, nil},
		{"negative returns nothing", -1, nil},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read partial wraps (3)", 3, expectedAll[7:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil for missing file", err)
	}
	if got != nil {
		t.Fatalf("Read() = %v, want nil", got)
	}
}

func TestLevelOf(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2026-10-18T09:12:01Z\tWARN\taxeos/client.go:160\ttelemetry probes exhausted", LevelWarn},
		{"2026-10-18T09:12:01Z\tINFO\tapp started", LevelInfo},
		{"2026-10-18T09:12:01Z\tDEBUG\tfetched telemetry", LevelDebug},
		{"2026-10-18T09:12:01Z\tERROR\tboom", LevelError},
		{"2026-10-18T09:12:01Z\tFATAL\tboom", LevelError},
		{"plain text without tabs", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := LevelOf(tt.line); got != tt.want {
			t.Errorf("LevelOf(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
