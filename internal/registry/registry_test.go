package registry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpen_MissingFileIsEmpty(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "miners.toml"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if n := len(r.List()); n != 0 {
		t.Fatalf("List() has %d miners, want 0", n)
	}
}

func TestAdd_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "miners.toml")
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	m, err := r.Add("  Garage  ", "http://10.0.0.5/")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if m.ID == "" {
		t.Fatal("Add returned miner without id")
	}
	if m.Name != "Garage" || m.Address != "10.0.0.5" {
		t.Fatalf("Add = %#v, want trimmed name and bare address", m)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open(reload) returned error: %v", err)
	}
	list := reloaded.List()
	if len(list) != 1 {
		t.Fatalf("reloaded %d miners, want 1", len(list))
	}
	if list[0].ID != m.ID || list[0].Address != "10.0.0.5" || !list[0].AddedAt.Equal(fixed) {
		t.Fatalf("reloaded = %#v, want %#v", list[0], m)
	}
}

func TestAdd_RejectsDuplicateAddress(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "miners.toml"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := r.Add("a", "10.0.0.5"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	_, err = r.Add("b", "HTTP://10.0.0.5")
	if !errors.Is(err, ErrDuplicateAddress) {
		t.Fatalf("Add duplicate error = %v, want ErrDuplicateAddress", err)
	}
}

func TestAdd_RejectsEmptyAddress(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "miners.toml"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := r.Add("x", "   "); err == nil {
		t.Fatal("Add with empty address returned nil error")
	}
}

func TestRenameAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miners.toml")
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	a, _ := r.Add("a", "10.0.0.5")
	b, _ := r.Add("", "10.0.0.6:8080")

	if b.DisplayName() != "10.0.0.6:8080" {
		t.Fatalf("DisplayName = %q, want address fallback", b.DisplayName())
	}
	if err := r.Rename(b.ID, "Shed"); err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if err := r.Rename(b.ID, "  "); err == nil {
		t.Fatal("Rename to blank returned nil error")
	}
	if err := r.Rename("missing", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Rename missing error = %v, want ErrNotFound", err)
	}

	if err := r.Remove(a.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := r.Remove(a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Remove twice error = %v, want ErrNotFound", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open(reload) returned error: %v", err)
	}
	list := reloaded.List()
	if len(list) != 1 || list[0].Name != "Shed" {
		t.Fatalf("reloaded = %#v, want only Shed", list)
	}
	if _, ok := reloaded.FindByAddress("http://10.0.0.6:8080/"); !ok {
		t.Fatal("FindByAddress did not match normalized address")
	}
	if _, ok := reloaded.Find(b.ID); !ok {
		t.Fatal("Find did not return renamed miner")
	}
}

func TestOpen_SkipsInvalidEntriesAndFillsIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miners.toml")
	content := `
[[miner]]
name = "no id"
address = "10.0.0.9"

[[miner]]
name = "broken"
address = ""
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	list := r.List()
	if len(list) != 1 || list[0].ID == "" || list[0].Address != "10.0.0.9" {
		t.Fatalf("List = %#v, want one valid miner with generated id", list)
	}
}

func TestOpen_DropsDuplicateAddressesAndPersistsIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miners.toml")
	content := `
[[miner]]
name = "first"
address = "10.0.0.9"

[[miner]]
name = "copy"
address = "http://10.0.0.9/"

[[miner]]
id = "dup"
name = "a"
address = "10.0.0.10"

[[miner]]
id = "dup"
name = "b"
address = "10.0.0.11"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	list := r.List()
	if len(list) != 3 {
		t.Fatalf("List = %#v, want 3 miners after dropping the duplicate address", list)
	}
	if list[0].Name != "first" {
		t.Fatalf("first row = %q, want the earliest entry kept", list[0].Name)
	}
	if list[1].ID != "dup" || list[2].ID == "dup" || list[2].ID == "" {
		t.Fatalf("ids = %q, %q; want the repeated id replaced", list[1].ID, list[2].ID)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("second Open returned error: %v", err)
	}
	again := reopened.List()
	if len(again) != len(list) {
		t.Fatalf("reopened List len = %d, want %d", len(again), len(list))
	}
	for i := range list {
		if again[i].ID != list[i].ID {
			t.Fatalf("id[%d] changed across loads: %q then %q", i, list[i].ID, again[i].ID)
		}
	}
}

func TestOpen_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "miners.toml")
	if err := os.WriteFile(path, []byte("[[miner]\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "parse miners file") {
		t.Fatalf("Open error = %v, want parse error", err)
	}
}

func TestNormalizeAddress(t *testing.T) {
	cases := map[string]string{
		"10.0.0.5":              "10.0.0.5",
		" Bitaxe.Local ":        "bitaxe.local",
		"http://10.0.0.5:80/":   "10.0.0.5:80",
		"https://10.0.0.5/info": "10.0.0.5",
	}
	for in, want := range cases {
		got, err := NormalizeAddress(in)
		if err != nil {
			t.Fatalf("NormalizeAddress(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("NormalizeAddress(%q) = %q, want %q", in, got, want)
		}
	}
}
