// Package backup provides backup and restore functionality for the
// calendar data file, kept as timestamped snapshot directories next to
// the data.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"dal/internal/fsutil"
)

// Version constants for the backup format.
const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// Manager handles backup and restore operations for a single data file.
type Manager struct {
	dataFile   string // Path to the data file (e.g., ~/.dal/events.json)
	backupDir  string // Path to the backups directory (e.g., ~/.dal/backups)
	appVersion string // Application version for the manifest
}

// Manifest contains metadata about a backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// Info contains summary information about a backup.
type Info struct {
	Name      string         // Directory name (2025-12-15_143022_381)
	Path      string         // Full path to the backup directory
	CreatedAt time.Time      // When the backup was created
	Stats     map[string]int // Statistics (events, holidays)
}

// NewManager creates a backup manager for the given data file. Backups
// live in a backups/ directory beside it.
func NewManager(dataFile, appVersion string) *Manager {
	return &Manager{
		dataFile:   dataFile,
		backupDir:  filepath.Join(filepath.Dir(dataFile), BackupsDir),
		appVersion: appVersion,
	}
}

// Create creates a new backup of the data file and returns the backup
// name (timestamp format). A missing data file yields an empty backup
// with a manifest, so a fresh install can still be restored to.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	// Milliseconds keep names unique across rapid successive backups.
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	var copiedFiles []string
	stats := make(map[string]int)

	filename := filepath.Base(m.dataFile)
	if _, err := os.Stat(m.dataFile); err == nil {
		if err := copyFileAtomic(m.dataFile, filepath.Join(backupPath, filename)); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("copy %s: %w", filename, err)
		}
		copiedFiles = append(copiedFiles, filename)

		if counts, err := countItems(m.dataFile); err == nil {
			stats = counts
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copiedFiles,
		Stats:      stats,
	}
	if err := writeJSON(filepath.Join(backupPath, ManifestFile), manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		backupPath := filepath.Join(m.backupDir, entry.Name())

		var manifest Manifest
		if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
			// No manifest; fall back to the timestamp in the name.
			createdAt, parseErr := parseBackupName(entry.Name())
			if parseErr != nil {
				continue
			}
			manifest.CreatedAt = createdAt
			manifest.Stats = make(map[string]int)
		}

		backups = append(backups, Info{
			Name:      entry.Name(),
			Path:      backupPath,
			CreatedAt: manifest.CreatedAt,
			Stats:     manifest.Stats,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore replaces the data file with the copy in the named backup. A
// safety backup of the current state is created first.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	filename := filepath.Base(m.dataFile)
	var manifest Manifest
	if err := readJSON(filepath.Join(backupPath, ManifestFile), &manifest); err != nil {
		manifest.Files = []string{filename}
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("create safety backup: %w", err)
	}

	for _, f := range manifest.Files {
		srcPath := filepath.Join(backupPath, f)
		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}
		if err := copyFileAtomic(srcPath, m.dataFile); err != nil {
			return fmt.Errorf("restore %s (safety backup: %s): %w", f, safetyName, err)
		}
	}

	if err := validateJSON(m.dataFile); err != nil {
		return fmt.Errorf("restored file is invalid (safety backup: %s): %w", safetyName, err)
	}

	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}
	return m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the N most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, b := range backups[keepCount:] {
		if err := m.Delete(b.Name); err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}

// Helper functions

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateJSON checks that a file contains valid JSON.
func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Missing file is OK
		}
		return err
	}

	var v interface{}
	return json.Unmarshal(data, &v)
}

// countItems counts events and holidays in a data file.
func countItems(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result struct {
		Events   map[string][]json.RawMessage `json:"events"`
		Holidays map[string]string            `json:"holidays"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	events := 0
	for _, list := range result.Events {
		events += len(list)
	}
	return map[string]int{
		"events":   events,
		"holidays": len(result.Holidays),
	}, nil
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports names with and without the millisecond suffix.
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		// Format: 2006-01-02_150405_XXX
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.Parse("2006-01-02_150405", name)
}
