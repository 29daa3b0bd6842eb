package config

import (
	"os"
	"path/filepath"
	"testing"
)

// useConfigDir points the loader at a temp directory and returns the
// config file path inside it.
func useConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "dal", "config.yaml")
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataFile == "" {
		t.Error("DataFile should have a default")
	}
	if cfg.Theme.Primary == "" || cfg.Theme.Holiday == "" || cfg.Theme.Saturday == "" {
		t.Error("theme colors should have defaults")
	}
	if !cfg.UX.ConfirmDeletions {
		t.Error("ConfirmDeletions should default to true")
	}
	if !cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled should default to true")
	}
	if cfg.Notifications.Sound {
		t.Error("Notifications.Sound should default to false")
	}
	if !cfg.Holidays.Enabled {
		t.Error("Holidays.Enabled should default to true")
	}
	if cfg.UX.NarrowLayoutThreshold != 90 {
		t.Errorf("NarrowLayoutThreshold = %d, want 90", cfg.UX.NarrowLayoutThreshold)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	useConfigDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Theme.Primary != Default().Theme.Primary {
		t.Error("missing config file should yield defaults")
	}
}

func TestLoad_PartialConfigMergesOverDefaults(t *testing.T) {
	path := useConfigDir(t)
	writeConfig(t, path, `
theme:
  holiday: "#CC0000"
keys:
  quit: "Q"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Theme.Holiday != "#CC0000" {
		t.Errorf("Theme.Holiday = %q, want %q", cfg.Theme.Holiday, "#CC0000")
	}
	if cfg.Theme.Primary != Default().Theme.Primary {
		t.Error("unset theme colors should keep defaults")
	}
	if cfg.Keys.Quit != "Q" {
		t.Errorf("Keys.Quit = %q, want %q", cfg.Keys.Quit, "Q")
	}
	if !cfg.Notifications.Enabled {
		t.Error("unset notifications.enabled should keep the default")
	}
}

// A config that sets one boolean must not clobber the defaults of its
// absent siblings.
func TestLoad_BooleanPresence(t *testing.T) {
	path := useConfigDir(t)
	writeConfig(t, path, `
notifications:
  sound: true
ux:
  confirm_deletions: false
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.Notifications.Sound {
		t.Error("Notifications.Sound should be true")
	}
	if !cfg.Notifications.Enabled {
		t.Error("absent notifications.enabled should stay true")
	}
	if cfg.UX.ConfirmDeletions {
		t.Error("UX.ConfirmDeletions should be false")
	}
	if !cfg.Holidays.Enabled {
		t.Error("absent holidays.enabled should stay true")
	}
}

func TestLoad_DisableFeatures(t *testing.T) {
	path := useConfigDir(t)
	writeConfig(t, path, `
notifications:
  enabled: false
holidays:
  enabled: false
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Notifications.Enabled {
		t.Error("Notifications.Enabled should be false")
	}
	if cfg.Holidays.Enabled {
		t.Error("Holidays.Enabled should be false")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := useConfigDir(t)
	writeConfig(t, path, "theme: [not: a mapping\n")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}

func TestSaveAndReload(t *testing.T) {
	useConfigDir(t)

	cfg := Default()
	cfg.Theme.Primary = "#123456"
	cfg.Keys.Delete = "d"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Theme.Primary != "#123456" {
		t.Errorf("Theme.Primary = %q, want %q", loaded.Theme.Primary, "#123456")
	}
	if loaded.Keys.Delete != "d" {
		t.Errorf("Keys.Delete = %q, want %q", loaded.Keys.Delete, "d")
	}
}

func TestGetDataFile_TildeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := &Config{DataFile: "~/calendar/events.json"}
	want := filepath.Join(home, "calendar", "events.json")
	if got := cfg.GetDataFile(); got != want {
		t.Errorf("GetDataFile() = %q, want %q", got, want)
	}
}

func TestGetDataFile_AbsolutePathUntouched(t *testing.T) {
	cfg := &Config{DataFile: "/var/lib/dal/events.json"}
	if got := cfg.GetDataFile(); got != "/var/lib/dal/events.json" {
		t.Errorf("GetDataFile() = %q", got)
	}
}

func TestGetDataFile_EmptyFallsBackToDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataFile(); got == "" {
		t.Error("GetDataFile() should never be empty")
	}
}
