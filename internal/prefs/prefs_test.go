package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p := Load("")
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.CloseAction != CloseAsk {
		t.Fatalf("CloseAction = %q, want ask", p.CloseAction)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "axedeck")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	content := "theme = \"Ember\"\nclose_action = \"minimize\"\nlast_miner = \" 10.0.0.5 \"\n"
	if err := os.WriteFile(prefsFile, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load("")
	if p.Theme != "Ember" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Ember")
	}
	if p.CloseAction != CloseMinimize {
		t.Fatalf("CloseAction = %q, want minimize", p.CloseAction)
	}
	if p.LastMiner != "10.0.0.5" {
		t.Fatalf("LastMiner = %q, want 10.0.0.5", p.LastMiner)
	}
}

func TestLoad_CloseActionAliasesAndUnknown(t *testing.T) {
	cases := map[string]CloseAction{
		"tray":     CloseMinimize,
		"EXIT":     CloseExit,
		"quit":     CloseExit,
		"bogus":    CloseAsk,
		"":         CloseAsk,
		"minimize": CloseMinimize,
	}
	for raw, want := range cases {
		prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
		if err := os.WriteFile(prefsFile, []byte("close_action = \""+raw+"\"\n"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if got := Load(prefsFile).CloseAction; got != want {
			t.Fatalf("close_action %q loaded as %q, want %q", raw, got, want)
		}
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{Theme: "Ember", CloseAction: CloseExit}
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := Load(prefsFile)
	if loaded.Theme != "Ember" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Ember")
	}
	if loaded.CloseAction != CloseExit {
		t.Fatalf("CloseAction = %q, want exit", loaded.CloseAction)
	}
}

func TestUpdate_PreservesOtherFields(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(prefsFile, Prefs{Theme: "Gruvbox", LastMiner: "10.0.0.7"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if err := Update(prefsFile, func(p *Prefs) { p.CloseAction = CloseMinimize }); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	loaded := Load(prefsFile)
	if loaded.Theme != "Gruvbox" || loaded.LastMiner != "10.0.0.7" {
		t.Fatalf("Update lost fields: %#v", loaded)
	}
	if loaded.CloseAction != CloseMinimize {
		t.Fatalf("CloseAction = %q, want minimize", loaded.CloseAction)
	}
}

func TestLoad_EmptyThemeFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("theme = \"\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
}

func TestLoad_InvalidTOMLFallsBackToDefault(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := Load(prefsFile)
	if p.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", p.Theme, defaultTheme)
	}
	if p.CloseAction != CloseAsk {
		t.Fatalf("CloseAction = %q, want ask", p.CloseAction)
	}
}
