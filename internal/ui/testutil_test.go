package ui

import (
	"path/filepath"
	"testing"
	"time"

	"dal/internal/config"
	"dal/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore creates a Store backed by a temporary file.
func createTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "events.json"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// fixedClock returns a clock pinned to the given day.
func fixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()
	day, err := time.Parse(storage.DateLayout, date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return func() time.Time { return day }
}

func strPtr(s string) *string { return &s }

func typePtr(a storage.AlarmType) *storage.AlarmType { return &a }
