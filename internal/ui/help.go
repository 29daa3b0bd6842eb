package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{
		styles: styles,
	}
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = minInt(60, maxInt(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder

	b.WriteString(titleStyle.Render("📅 dal - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("h j k l") + descStyle.Render("Move by day/week") + "\n")
	b.WriteString(keyStyle.Render("[ / ]") + descStyle.Render("Previous/next month") + "\n")
	b.WriteString(keyStyle.Render("t") + descStyle.Render("Jump to today") + "\n")
	b.WriteString(keyStyle.Render("J / K") + descStyle.Render("Select event") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Events"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("a") + descStyle.Render("Add event") + "\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Edit selected event") + "\n")
	b.WriteString(keyStyle.Render("x") + descStyle.Render("Delete selected event") + "\n")
	b.WriteString(keyStyle.Render("Ctrl+r") + descStyle.Render("Reset all events") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Event Form"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("Tab") + descStyle.Render("Next field") + "\n")
	b.WriteString(keyStyle.Render("Space") + descStyle.Render("Toggle alarm/repeat") + "\n")
	b.WriteString(keyStyle.Render("Enter") + descStyle.Render("Save") + "\n")
	b.WriteString(keyStyle.Render("Esc") + descStyle.Render("Cancel") + "\n")

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global"))
	b.WriteString("\n")
	b.WriteString(keyStyle.Render("?") + descStyle.Render("Toggle help") + "\n")
	b.WriteString(keyStyle.Render("q") + descStyle.Render("Quit") + "\n")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Holidays are shown in red and cannot be edited"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
