// Package prefs handles axedeck user preferences persistence.
// Preferences are stored in ~/.config/axedeck/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// CloseAction records what closing the window should do.
type CloseAction string

const (
	// CloseAsk means no choice has been saved; the shell asks each time.
	CloseAsk CloseAction = ""
	// CloseMinimize hides the window to the tray and keeps running.
	CloseMinimize CloseAction = "minimize"
	// CloseExit quits the process.
	CloseExit CloseAction = "exit"
)

// Prefs holds user preferences for axedeck.
type Prefs struct {
	Theme       string      `toml:"theme"`
	CloseAction CloseAction `toml:"close_action"`
	LastMiner   string      `toml:"last_miner"`
}

const (
	defaultPrefsPath = "~/.config/axedeck/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path, falling back to defaults if
// the file is missing or unreadable.
func Load(path string) Prefs {
	prefs := Prefs{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return prefs
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs
		}
		return prefs // Graceful degradation
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return prefs
	}

	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{Theme: defaultTheme}
	}

	if strings.TrimSpace(prefs.Theme) == "" {
		prefs.Theme = defaultTheme
	}
	prefs.CloseAction = normalizeCloseAction(prefs.CloseAction)
	prefs.LastMiner = strings.TrimSpace(prefs.LastMiner)

	return prefs
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Update loads the current preferences, applies fn, and saves the result.
func Update(path string, fn func(*Prefs)) error {
	p := Load(path)
	fn(&p)
	return Save(path, p)
}

func normalizeCloseAction(a CloseAction) CloseAction {
	switch CloseAction(strings.ToLower(strings.TrimSpace(string(a)))) {
	case CloseMinimize, "tray", "hide":
		return CloseMinimize
	case CloseExit, "quit":
		return CloseExit
	default:
		return CloseAsk
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
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
