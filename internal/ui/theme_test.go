package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Gruvbox" || names[2] != "Ember" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Gruvbox Ember]", names)
	}

	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatal("ThemeNames should return a copy")
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Gruvbox" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Gruvbox", got)
	}
	if got := NextTheme("Ember"); got != "Nightfox" {
		t.Fatalf("NextTheme(Ember) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Ember").Name; got != "Ember" {
		t.Fatalf("GetTheme(Ember).Name = %q, want Ember", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", got)
	}
}

func TestEveryThemeColorsEveryState(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, s := range []string{stateOnline, stateOffline, stateError, stateWaiting} {
			if th.StateColors[s] == "" {
				t.Fatalf("theme %s has no color for state %q", name, s)
			}
		}
	}
}
