// Package ui provides the terminal user interface for the calendar.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and customization.
package ui

import (
	"strings"

	"dal/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit key.Binding
	Help key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Quit, "q", "ctrl+c")...),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Help, "?")...),
			key.WithHelp("?", "help"),
		),
	}
}

// CalendarKeyMap defines keys for moving around the month grid and acting
// on the selected day.
type CalendarKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Reset     key.Binding
	NextEvent key.Binding
	PrevEvent key.Binding
}

// DefaultCalendarKeyMap returns the default calendar key bindings.
func DefaultCalendarKeyMap() CalendarKeyMap {
	return NewCalendarKeyMap(&config.KeysConfig{})
}

// NewCalendarKeyMap creates calendar key bindings from config.
func NewCalendarKeyMap(cfg *config.KeysConfig) CalendarKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return CalendarKeyMap{
		Left: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Left, "h", "left")...),
			key.WithHelp("h/←", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Right, "l", "right")...),
			key.WithHelp("l/→", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Up, "k", "up")...),
			key.WithHelp("k/↑", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Down, "j", "down")...),
			key.WithHelp("j/↓", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevMonth, "[", "pgup")...),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextMonth, "]", "pgdown")...),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Today, "t")...),
			key.WithHelp("t", "today"),
		),
		Add: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Add, "a")...),
			key.WithHelp("a", "add event"),
		),
		Edit: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Edit, "enter")...),
			key.WithHelp("enter", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Delete, "x")...),
			key.WithHelp("x", "delete"),
		),
		Reset: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Reset, "ctrl+r")...),
			key.WithHelp("ctrl+r", "reset all"),
		),
		NextEvent: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "next event"),
		),
		PrevEvent: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "prev event"),
		),
	}
}

// ShortHelp returns the short help for the calendar (implements help.KeyMap).
func (k CalendarKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Today}
}

// FullHelp returns the full help for the calendar (implements help.KeyMap).
func (k CalendarKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.Add, k.Edit, k.Delete, k.Reset},
	}
}

// FormKeyMap defines keys for the event form.
type FormKeyMap struct {
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
}

// DefaultFormKeyMap returns the default form key bindings.
func DefaultFormKeyMap() FormKeyMap {
	return NewFormKeyMap(&config.KeysConfig{})
}

// NewFormKeyMap creates form key bindings from config.
func NewFormKeyMap(cfg *config.KeysConfig) FormKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return FormKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Confirm, "enter")...),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(parseKeys(cfg.Cancel, "esc")...),
			key.WithHelp("esc", "cancel"),
		),
		NextField: key.NewBinding(
			key.WithKeys(parseKeys(cfg.NextField, "tab")...),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys(parseKeys(cfg.PrevField, "shift+tab")...),
			key.WithHelp("shift+tab", "prev field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
	}
}

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
