package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings axedeck reads at startup.
type Config struct {
	PollInterval time.Duration
	LogLevel     string
	LogFile      string
	MinersFile   string
	UserAgent    string
	// TempWarning is the ASIC temperature in °C that raises a warning.
	// Zero disables temperature warnings.
	TempWarning float64
}

const (
	defaultConfigPath   = "~/.config/axedeck/config.toml"
	defaultLogFile      = "~/.local/state/axedeck/axedeck.log"
	defaultMinersFile   = "~/.config/axedeck/miners.toml"
	defaultLogLevel     = "info"
	defaultPollInterval = 5 * time.Second
	defaultTempWarning  = 70.0
)

// Load locates and parses the axedeck config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		PollSeconds int      `toml:"poll_seconds"`
		LogLevel    string   `toml:"log_level"`
		LogFile     string   `toml:"log_file"`
		MinersFile  string   `toml:"miners_file"`
		UserAgent   string   `toml:"user_agent"`
		TempWarning *float64 `toml:"temp_warning"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if minersFile := strings.TrimSpace(raw.MinersFile); minersFile != "" {
		cfg.MinersFile = mustExpand(minersFile)
	}
	cfg.UserAgent = strings.TrimSpace(raw.UserAgent)
	if raw.TempWarning != nil {
		cfg.TempWarning = max(*raw.TempWarning, 0)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		PollInterval: defaultPollInterval,
		LogLevel:     defaultLogLevel,
		LogFile:      mustExpand(defaultLogFile),
		MinersFile:   mustExpand(defaultMinersFile),
		TempWarning:  defaultTempWarning,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
