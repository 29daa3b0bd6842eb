// Package config loads dal's configuration from XDG-compliant paths
// (typically ~/.config/dal/config.yaml), merging user settings over
// defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"dal/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	// DataFile overrides the default data file (~/.dal/events.json)
	DataFile string `yaml:"data_file,omitempty"`

	// Theme customizes the calendar's appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes interaction behavior
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures alarm notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// Holidays configures holiday display
	Holidays HolidayConfig `yaml:"holidays,omitempty"`
}

// NotificationConfig defines alarm notification settings.
type NotificationConfig struct {
	// Enabled starts the background alarm checker
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound plays the platform default sound with each notification
	Sound bool `yaml:"sound,omitempty"`
}

// HolidayConfig defines holiday integration settings.
type HolidayConfig struct {
	// Enabled materializes national holidays into displayed months
	Enabled bool `yaml:"enabled,omitempty"`
}

// ThemeConfig defines color settings (hex, e.g. "#FF5733").
type ThemeConfig struct {
	// Primary color for the focused pane and selected day
	Primary string `yaml:"primary,omitempty"`

	// Accent color for today's cell
	Accent string `yaml:"accent,omitempty"`

	// Muted color for secondary text
	Muted string `yaml:"muted,omitempty"`

	// Holiday color for holidays and Sundays
	Holiday string `yaml:"holiday,omitempty"`

	// Saturday color for Saturdays
	Saturday string `yaml:"saturday,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts. Each field accepts a
// comma-separated list of key bindings, e.g. "q,ctrl+c" or "left,h".
type KeysConfig struct {
	Quit string `yaml:"quit,omitempty"` // default: "q,ctrl+c"
	Help string `yaml:"help,omitempty"` // default: "?"

	// Day navigation
	Left  string `yaml:"left,omitempty"`  // default: "h,left"
	Right string `yaml:"right,omitempty"` // default: "l,right"
	Up    string `yaml:"up,omitempty"`    // default: "k,up"
	Down  string `yaml:"down,omitempty"`  // default: "j,down"

	// Month navigation
	PrevMonth string `yaml:"prev_month,omitempty"` // default: "[,pgup"
	NextMonth string `yaml:"next_month,omitempty"` // default: "],pgdown"
	Today     string `yaml:"today,omitempty"`      // default: "t"

	// Event operations
	Add    string `yaml:"add,omitempty"`    // default: "a"
	Edit   string `yaml:"edit,omitempty"`   // default: "enter"
	Delete string `yaml:"delete,omitempty"` // default: "x"
	Reset  string `yaml:"reset,omitempty"`  // default: "ctrl+r"

	// Form keys
	Confirm   string `yaml:"confirm,omitempty"`    // default: "enter"
	Cancel    string `yaml:"cancel,omitempty"`     // default: "esc"
	NextField string `yaml:"next_field,omitempty"` // default: "tab"
	PrevField string `yaml:"prev_field,omitempty"` // default: "shift+tab"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions asks before deleting events or resetting the store
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which the day
	// pane stacks under the month grid
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 90
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataFile: defaultDataFile(),
		Theme: ThemeConfig{
			Primary:  "#7C3AED", // Violet
			Accent:   "#F59E0B", // Amber, for today
			Muted:    "#6B7280", // Gray
			Holiday:  "#EF4444", // Red
			Saturday: "#3B82F6", // Blue
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 90,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		Holidays: HolidayConfig{
			Enabled: true,
		},
	}
}

// defaultDataFile returns the default data file path.
func defaultDataFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dal", "events.json")
	}
	return filepath.Join(home, ".dal", "events.json")
}

// configDir returns the configuration directory path (XDG compliant).
func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dal")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dal")
}

// configPath returns the path to the config file.
func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from disk, merging with defaults. If no config
// file exists, the defaults are returned as-is.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var userCfg Config
	if err := yaml.Unmarshal(data, &userCfg); err != nil {
		return nil, err
	}

	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc) // best-effort; falls back to a conservative merge

	cfg.merge(&userCfg, &doc)
	return cfg, nil
}

// mergeNonEmpty applies non-empty string and positive int values from
// other. Booleans need presence information and are handled in merge.
func (c *Config) mergeNonEmpty(other *Config) {
	if other.DataFile != "" {
		c.DataFile = other.DataFile
	}

	if other.Theme.Primary != "" {
		c.Theme.Primary = other.Theme.Primary
	}
	if other.Theme.Accent != "" {
		c.Theme.Accent = other.Theme.Accent
	}
	if other.Theme.Muted != "" {
		c.Theme.Muted = other.Theme.Muted
	}
	if other.Theme.Holiday != "" {
		c.Theme.Holiday = other.Theme.Holiday
	}
	if other.Theme.Saturday != "" {
		c.Theme.Saturday = other.Theme.Saturday
	}

	mergeKey := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	mergeKey(&c.Keys.Quit, other.Keys.Quit)
	mergeKey(&c.Keys.Help, other.Keys.Help)
	mergeKey(&c.Keys.Left, other.Keys.Left)
	mergeKey(&c.Keys.Right, other.Keys.Right)
	mergeKey(&c.Keys.Up, other.Keys.Up)
	mergeKey(&c.Keys.Down, other.Keys.Down)
	mergeKey(&c.Keys.PrevMonth, other.Keys.PrevMonth)
	mergeKey(&c.Keys.NextMonth, other.Keys.NextMonth)
	mergeKey(&c.Keys.Today, other.Keys.Today)
	mergeKey(&c.Keys.Add, other.Keys.Add)
	mergeKey(&c.Keys.Edit, other.Keys.Edit)
	mergeKey(&c.Keys.Delete, other.Keys.Delete)
	mergeKey(&c.Keys.Reset, other.Keys.Reset)
	mergeKey(&c.Keys.Confirm, other.Keys.Confirm)
	mergeKey(&c.Keys.Cancel, other.Keys.Cancel)
	mergeKey(&c.Keys.NextField, other.Keys.NextField)
	mergeKey(&c.Keys.PrevField, other.Keys.PrevField)

	if other.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = other.UX.NarrowLayoutThreshold
	}
}

func (c *Config) merge(other *Config, doc *yaml.Node) {
	c.mergeNonEmpty(other)

	// Booleans only override defaults when actually present in the YAML;
	// otherwise `notifications: {sound: true}` would also force
	// enabled=false.
	if yamlHasPath(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = other.UX.ConfirmDeletions
	}
	if yamlHasPath(doc, "notifications", "enabled") {
		c.Notifications.Enabled = other.Notifications.Enabled
	}
	if yamlHasPath(doc, "notifications", "sound") {
		c.Notifications.Sound = other.Notifications.Sound
	}
	if yamlHasPath(doc, "holidays", "enabled") {
		c.Holidays.Enabled = other.Holidays.Enabled
	}
}

func yamlHasPath(doc *yaml.Node, path ...string) bool {
	if doc == nil || len(path) == 0 {
		return false
	}

	n := doc
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	for _, key := range path {
		if n == nil || n.Kind != yaml.MappingNode {
			return false
		}
		var next *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			v := n.Content[i+1]
			if k.Kind == yaml.ScalarNode && k.Value == key {
				next = v
				break
			}
		}
		if next == nil {
			return false
		}
		n = next
	}
	return true
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataFile returns the resolved data file path, expanding a leading ~.
func (c *Config) GetDataFile() string {
	if c.DataFile == "" {
		return defaultDataFile()
	}

	if c.DataFile == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return c.DataFile
	}
	if strings.HasPrefix(c.DataFile, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(c.DataFile, "~/"))
		}
	}
	return c.DataFile
}
