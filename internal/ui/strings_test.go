package ui

import (
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"bitaxe-gamma", 20, "bitaxe-gamma"},
		{"bitaxe-gamma-601", 10, "bitaxe-..."},
		{"  spaced  ", 10, "spaced"},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestFormatHashRate(t *testing.T) {
	if got := formatHashRate(450.24); got != "450.2 GH/s" {
		t.Fatalf("formatHashRate(450.24) = %q", got)
	}
	if got := formatHashRate(1234.5); got != "1.23 TH/s" {
		t.Fatalf("formatHashRate(1234.5) = %q", got)
	}
}

func TestFormatUptime(t *testing.T) {
	tests := map[uint64]string{
		59:                   "0m",
		3*3600 + 5*60:        "3h 5m",
		2*86400 + 3600 + 120: "2d 1h 2m",
	}
	for in, want := range tests {
		if got := formatUptime(in); got != want {
			t.Errorf("formatUptime(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	if got := formatAge(time.Time{}, now); got != "never" {
		t.Fatalf("formatAge(zero) = %q, want never", got)
	}
	if got := formatAge(now.Add(-12*time.Second), now); got != "12s ago" {
		t.Fatalf("formatAge(12s) = %q", got)
	}
	if got := formatAge(now.Add(-5*time.Minute), now); got != "5m ago" {
		t.Fatalf("formatAge(5m) = %q", got)
	}
}

func TestSingleLine(t *testing.T) {
	if got := singleLine("failed with status 422: bad\r\nmore"); got != "failed with status 422: bad more" {
		t.Fatalf("singleLine = %q", got)
	}
}
