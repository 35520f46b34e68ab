package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, ".config", "xl-vim")
	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", dir)
	return filepath.Join(cfgDir, "config.json")
}

func TestConfigPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "xl-vim", "config.json")
	if got := configPath(); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}
}

func TestLoadNonExistent(t *testing.T) {
	setupTestConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.RecentFiles) != 0 {
		t.Errorf("RecentFiles = %v, want none", cfg.RecentFiles)
	}
	if cfg.DefaultColumnWidth != 15 || cfg.MinColumnWidth != 5 || cfg.MaxColumnWidth != 50 {
		t.Errorf("widths = %d/%d/%d, want 15/5/50", cfg.DefaultColumnWidth, cfg.MinColumnWidth, cfg.MaxColumnWidth)
	}
	if cfg.MaxNotifications != 5 || !cfg.SyncClipboard {
		t.Errorf("notifications = %d sync = %v", cfg.MaxNotifications, cfg.SyncClipboard)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfgFile := setupTestConfig(t)
	if err := os.WriteFile(cfgFile, []byte(`{"max_column_width": 80}`), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxColumnWidth != 80 {
		t.Errorf("MaxColumnWidth = %d, want 80", cfg.MaxColumnWidth)
	}
	if cfg.DefaultColumnWidth != 15 || !cfg.SyncClipboard {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadNormalizes(t *testing.T) {
	cfgFile := setupTestConfig(t)
	data := `{"min_column_width": 0, "max_column_width": 2, "default_column_width": 99, "max_notifications": -1}`
	if err := os.WriteFile(cfgFile, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinColumnWidth != 5 || cfg.MaxColumnWidth != 50 || cfg.DefaultColumnWidth != 50 {
		t.Errorf("widths = %d/%d/%d, want 50/5/50", cfg.DefaultColumnWidth, cfg.MinColumnWidth, cfg.MaxColumnWidth)
	}
	if cfg.MaxNotifications != 5 {
		t.Errorf("MaxNotifications = %d, want 5", cfg.MaxNotifications)
	}
}

func TestSaveAndLoad(t *testing.T) {
	setupTestConfig(t)

	cfg := Default()
	cfg.SyncClipboard = false
	cfg.AddRecentFile("/data/report.xlsx")
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.SyncClipboard {
		t.Error("SyncClipboard = true, want false")
	}
	if len(loaded.RecentFiles) != 1 || loaded.RecentFiles[0] != "/data/report.xlsx" {
		t.Errorf("RecentFiles = %v", loaded.RecentFiles)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	cfgFile := setupTestConfig(t)
	if err := os.WriteFile(cfgFile, []byte("{invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not return error for invalid JSON, got %v", err)
	}
	if cfg == nil || cfg.DefaultColumnWidth != 15 {
		t.Fatalf("Load() = %+v, want defaults for invalid JSON", cfg)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	if err := Save(Default()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	p := filepath.Join(dir, ".config", "xl-vim", "config.json")
	if _, err := os.Stat(p); os.IsNotExist(err) {
		t.Errorf("expected config file to exist at %s", p)
	}
}

func TestSaveFilePermissions(t *testing.T) {
	setupTestConfig(t)

	if err := Save(Default()); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(configPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file perm = %o, want 0600", perm)
	}
}

func TestSaveProducesValidJSON(t *testing.T) {
	setupTestConfig(t)

	cfg := Default()
	cfg.AddRecent(Connection{Host: "h", Port: "22", Username: "u", KeyPath: "/k"})
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(configPath())
	if err != nil {
		t.Fatal(err)
	}
	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if loaded.RecentConnections[0].KeyPath != "/k" {
		t.Errorf("KeyPath = %q, want %q", loaded.RecentConnections[0].KeyPath, "/k")
	}
	if !strings.Contains(string(data), `"default_column_width": 15`) {
		t.Errorf("expected default_column_width in %s", data)
	}
}

// ---------------------------------------------------------------------------
// Recent files
// ---------------------------------------------------------------------------

func TestAddRecentFileMovesToFront(t *testing.T) {
	cfg := Default()
	cfg.AddRecentFile("a.xlsx")
	cfg.AddRecentFile("b.xlsx")
	cfg.AddRecentFile("a.xlsx")

	want := []string{"a.xlsx", "b.xlsx"}
	if fmt.Sprint(cfg.RecentFiles) != fmt.Sprint(want) {
		t.Errorf("RecentFiles = %v, want %v", cfg.RecentFiles, want)
	}
}

func TestAddRecentFileMaxTen(t *testing.T) {
	cfg := Default()
	for i := 0; i < 12; i++ {
		cfg.AddRecentFile(fmt.Sprintf("f%d.xlsx", i))
	}
	if len(cfg.RecentFiles) != 10 {
		t.Errorf("expected max 10 recent, got %d", len(cfg.RecentFiles))
	}
	if cfg.RecentFiles[0] != "f11.xlsx" {
		t.Errorf("first = %q, want f11.xlsx", cfg.RecentFiles[0])
	}
}

// ---------------------------------------------------------------------------
// Recent connections
// ---------------------------------------------------------------------------

func TestAddRecentUpdate(t *testing.T) {
	cfg := &Config{
		RecentConnections: []Connection{{Host: "h1", Port: "22", Username: "u1"}},
	}
	cfg.AddRecent(Connection{Host: "h1", Port: "22", Username: "u1", KeyPath: "/new"})
	if len(cfg.RecentConnections) != 1 {
		t.Fatalf("expected 1 (updated), got %d", len(cfg.RecentConnections))
	}
	if cfg.RecentConnections[0].KeyPath != "/new" {
		t.Errorf("KeyPath = %q, want %q", cfg.RecentConnections[0].KeyPath, "/new")
	}
}

func TestAddRecentPrependsNew(t *testing.T) {
	cfg := &Config{
		RecentConnections: []Connection{{Host: "h1", Port: "22", Username: "u1"}},
	}
	cfg.AddRecent(Connection{Host: "h2", Port: "22", Username: "u2"})
	if len(cfg.RecentConnections) != 2 {
		t.Fatalf("expected 2, got %d", len(cfg.RecentConnections))
	}
	if cfg.RecentConnections[0].Host != "h2" {
		t.Errorf("first entry Host = %q, want %q", cfg.RecentConnections[0].Host, "h2")
	}
}

func TestAddRecentDifferentPort(t *testing.T) {
	cfg := &Config{
		RecentConnections: []Connection{{Host: "h1", Port: "22", Username: "u1"}},
	}
	cfg.AddRecent(Connection{Host: "h1", Port: "2222", Username: "u1"})
	if len(cfg.RecentConnections) != 2 {
		t.Errorf("expected 2 (different port), got %d", len(cfg.RecentConnections))
	}
}

func TestConnectionJSONOmitsEmptyKey(t *testing.T) {
	data, err := json.Marshal(Connection{Host: "host", Port: "22", Username: "user"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "key_path") {
		t.Errorf("empty key_path should be omitted, got %s", data)
	}
}
