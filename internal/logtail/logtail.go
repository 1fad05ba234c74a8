package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 || strings.TrimSpace(path) == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	if count < maxLines {
		return append([]string(nil), ring[:count]...), nil
	}
	lines := make([]string, 0, count)
	lines = append(lines, ring[next:]...)
	lines = append(lines, ring[:next]...)
	return lines, nil
}

// Level values returned by LevelOf.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// LevelOf returns the level column of a console-encoded log line, or "" when
// the line does not carry one.
func LevelOf(line string) string {
	for _, field := range strings.SplitN(line, "\t", 3) {
		switch strings.TrimSpace(field) {
		case LevelDebug:
			return LevelDebug
		case LevelInfo:
			return LevelInfo
		case LevelWarn:
			return LevelWarn
		case LevelError, "DPANIC", "PANIC", "FATAL":
			return LevelError
		}
	}
	return ""
}
