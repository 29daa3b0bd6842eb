// Package ui provides the terminal user interface for the calendar.
package ui

import (
	"fmt"
	"strings"

	"dal/internal/storage"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DayPane lists the events of the selected day. Holiday entries are
// shown first in the holiday color and cannot be selected for editing
// or deletion.
type DayPane struct {
	store   *storage.Store
	styles  *Styles
	date    string
	events  []storage.Event
	cursor  int
	focused bool
	width   int
	height  int
}

// NewDayPane creates a day pane.
func NewDayPane(store *storage.Store, styles *Styles) *DayPane {
	return &DayPane{store: store, styles: styles}
}

// SetSize sets the pane dimensions.
func (p *DayPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *DayPane) SetFocused(focused bool) {
	p.focused = focused
}

// SetDate loads the events of the given day and resets the cursor.
func (p *DayPane) SetDate(date string) {
	p.date = date
	p.Reload()
	p.cursor = 0
}

// Reload refreshes the event list from the store, keeping the cursor in
// bounds.
func (p *DayPane) Reload() {
	p.events = p.store.EventsOn(p.date)
	if p.cursor >= len(p.events) {
		p.cursor = maxInt(0, len(p.events)-1)
	}
}

// MoveCursor moves the selection by delta, clamped to the list.
func (p *DayPane) MoveCursor(delta int) {
	if len(p.events) == 0 {
		p.cursor = 0
		return
	}
	p.cursor = minInt(maxInt(p.cursor+delta, 0), len(p.events)-1)
}

// SelectedEvent returns the event under the cursor, or nil when the list
// is empty or a protected holiday entry is selected.
func (p *DayPane) SelectedEvent() *storage.Event {
	if p.cursor < 0 || p.cursor >= len(p.events) {
		return nil
	}
	ev := p.events[p.cursor]
	if p.isProtected(ev) {
		return nil
	}
	return &ev
}

// isProtected reports whether the event is a holiday pseudo-entry, which
// the UI refuses to edit or delete.
func (p *DayPane) isProtected(ev storage.Event) bool {
	return p.store.IsHolidayTitle(ev.Title)
}

// View renders the day pane.
func (p *DayPane) View() string {
	var b strings.Builder

	title := p.date
	if name, ok := p.store.HolidayName(p.date); ok {
		title += "  " + p.styles.EventHolidayStyle.Render(name)
	}
	b.WriteString(p.styles.PaneTitleStyle.Render(title))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorMuted).Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if len(p.events) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(p.styles.ColorTextMuted).Italic(true).Render("  No events. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		maxRows := p.height - 5
		if maxRows < 3 {
			maxRows = 5
		}
		startIdx := 0
		if p.cursor >= maxRows {
			startIdx = p.cursor - maxRows + 1
		}

		for i, ev := range p.events {
			if i < startIdx || i >= startIdx+maxRows {
				continue
			}
			b.WriteString(p.renderEvent(i, ev))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString("  " + p.styles.HelpStyle.Render(fmt.Sprintf("%d event(s)", len(p.events))))
		b.WriteString("\n")
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}

func (p *DayPane) renderEvent(i int, ev storage.Event) string {
	badge := p.alarmBadge(ev)
	badgeWidth := lipgloss.Width(badge)

	availableWidth := p.width - 8 - badgeWidth
	if availableWidth < 5 {
		availableWidth = 5
	}
	text := runewidth.Truncate(ev.Title, availableWidth, "..")

	if i == p.cursor && p.focused {
		line := " " + text
		if badge != "" {
			line += " " + badge
		}
		return p.styles.EventSelectedStyle.Render(line + " ")
	}

	var styled string
	if p.isProtected(ev) {
		styled = p.styles.EventHolidayStyle.Render(text)
	} else {
		styled = p.styles.EventStyle.Render(text)
	}
	line := "  " + styled
	if badge != "" {
		line += " " + badge
	}
	return line
}

// alarmBadge renders a compact alarm indicator, e.g. "⏰ 09:00" for a
// once alarm or "⏰ 09:00 daily".
func (p *DayPane) alarmBadge(ev storage.Event) string {
	if !ev.Alarm {
		return ""
	}
	label := "⏰ " + ev.AlarmTimeValue()
	if ev.AlarmTypeValue() == storage.AlarmDaily {
		label += " daily"
	}
	return p.styles.AlarmBadgeStyle.Render(label)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
