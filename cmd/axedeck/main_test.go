package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/axedeck/internal/registry"
)

func writeConfig(t *testing.T) (configPath, minersPath string) {
	t.Helper()
	dir := t.TempDir()
	minersPath = filepath.Join(dir, "miners.toml")
	configPath = filepath.Join(dir, "config.toml")
	body := "log_level = \"error\"\nminers_file = \"" + minersPath + "\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath, minersPath
}

func TestInfo_PrintsDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/system/info" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"hostname":"bitaxe-601","hashRate":512.3}`)
	}))
	defer srv.Close()
	configPath, _ := writeConfig(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", configPath, "info", srv.URL}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v (%q)", err, stdout.String())
	}
	if doc["hostname"] != "bitaxe-601" {
		t.Fatalf("hostname = %v", doc["hostname"])
	}
}

func TestRestart_ResolvesSavedName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	configPath, minersPath := writeConfig(t)

	reg, err := registry.Open(minersPath)
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	if _, err := reg.Add("Garage", srv.URL); err != nil {
		t.Fatalf("registry.Add: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", configPath, "restart", "garage"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
	if gotPath != "POST /api/system/restart" {
		t.Fatalf("request = %q", gotPath)
	}
	if !strings.Contains(stdout.String(), "HTTP 204") {
		t.Fatalf("stdout = %q, want status code", stdout.String())
	}
}

func TestSet_SendsOnlyGivenFlags(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/system" {
			http.Error(w, "unexpected", http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	configPath, _ := writeConfig(t)

	var stdout, stderr bytes.Buffer
	args := []string{"--config", configPath, "set", "--fan", "80", "--freq", "600", srv.URL}
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
	if len(body) != 2 || body["fanspeed"] != float64(80) || body["frequency"] != float64(600) {
		t.Fatalf("body = %v, want fanspeed and frequency only", body)
	}
}

func TestSet_RejectsFanAbove100(t *testing.T) {
	configPath, _ := writeConfig(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", configPath, "set", "--fan", "150", "127.0.0.1:1"}, &stdout, &stderr)
	if code != 1 || !strings.Contains(stderr.String(), "fan speed") {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
}

func TestUnknownCommand(t *testing.T) {
	configPath, _ := writeConfig(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", configPath, "dance"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit = %d, want 2", code)
	}
}

func TestMiners_EmptyList(t *testing.T) {
	configPath, _ := writeConfig(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", configPath, "miners"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "No miners saved") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRename_ByIDAndByAddress(t *testing.T) {
	configPath, minersPath := writeConfig(t)
	reg, err := registry.Open(minersPath)
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	miner, err := reg.Add("", "10.0.0.5")
	if err != nil {
		t.Fatalf("registry.Add: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--config", configPath, "rename", miner.ID, "Garage"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
	if got := stdout.String(); got != "Renamed 10.0.0.5 to Garage\n" {
		t.Fatalf("stdout = %q", got)
	}

	stdout.Reset()
	if code := run([]string{"--config", configPath, "rename", "http://10.0.0.5/", "Shed"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
	reopened, err := registry.Open(minersPath)
	if err != nil {
		t.Fatalf("registry.Open: %v", err)
	}
	if saved, ok := reopened.Find(miner.ID); !ok || saved.Name != "Shed" {
		t.Fatalf("saved = %#v, want renamed to Shed", saved)
	}
}

func TestRename_UnknownMiner(t *testing.T) {
	configPath, _ := writeConfig(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", configPath, "rename", "nowhere", "x"}, &stdout, &stderr)
	if code != 1 || !strings.Contains(stderr.String(), "miner not found") {
		t.Fatalf("exit = %d, stderr = %q", code, stderr.String())
	}
}
