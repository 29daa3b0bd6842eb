// Package ui provides the terminal user interface for the calendar.
package ui

import (
	"fmt"
	"strings"
	"time"

	"dal/internal/config"
	"dal/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CalendarPane renders the month grid and tracks the selected day. Weeks
// start on Sunday. Sundays and holidays render in the holiday color,
// Saturdays in the Saturday color, and today is accented.
type CalendarPane struct {
	store    *storage.Store
	styles   *Styles
	selected time.Time
	focused  bool
	width    int
	height   int

	keys CalendarKeyMap

	// now is injectable for deterministic rendering in tests.
	now func() time.Time
}

// NewCalendarPane creates a calendar pane selected on today.
func NewCalendarPane(store *storage.Store, styles *Styles, keyCfg *config.KeysConfig) *CalendarPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	p := &CalendarPane{
		store:  store,
		styles: styles,
		keys:   NewCalendarKeyMap(keyCfg),
		now:    time.Now,
	}
	p.selected = normalizeDay(p.now())
	return p
}

// normalizeDay strips the time-of-day component.
func normalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SetNowFunc overrides the pane's clock. Passing nil resets it to
// time.Now.
func (p *CalendarPane) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	p.now = now
	p.selected = normalizeDay(p.now())
}

// SetSize sets the pane dimensions.
func (p *CalendarPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *CalendarPane) SetFocused(focused bool) {
	p.focused = focused
}

// Selected returns the selected day.
func (p *CalendarPane) Selected() time.Time {
	return p.selected
}

// SelectedDate returns the selected day in YYYY-MM-DD form.
func (p *CalendarPane) SelectedDate() string {
	return p.selected.Format(storage.DateLayout)
}

// Select moves the selection to the given day.
func (p *CalendarPane) Select(day time.Time) {
	p.selected = normalizeDay(day)
}

// Update handles navigation keys. It returns true when the visible month
// changed, so the app can materialize holidays for a newly shown year.
func (p *CalendarPane) Update(msg tea.Msg) (monthChanged bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return false
	}

	before := p.selected
	switch {
	case key.Matches(keyMsg, p.keys.Left):
		p.selected = p.selected.AddDate(0, 0, -1)
	case key.Matches(keyMsg, p.keys.Right):
		p.selected = p.selected.AddDate(0, 0, 1)
	case key.Matches(keyMsg, p.keys.Up):
		p.selected = p.selected.AddDate(0, 0, -7)
	case key.Matches(keyMsg, p.keys.Down):
		p.selected = p.selected.AddDate(0, 0, 7)
	case key.Matches(keyMsg, p.keys.PrevMonth):
		p.selected = sameDayInMonth(p.selected, -1)
	case key.Matches(keyMsg, p.keys.NextMonth):
		p.selected = sameDayInMonth(p.selected, 1)
	case key.Matches(keyMsg, p.keys.Today):
		p.selected = normalizeDay(p.now())
	default:
		return false
	}

	return before.Month() != p.selected.Month() || before.Year() != p.selected.Year()
}

// sameDayInMonth moves by whole months, clamping the day so that e.g.
// Jan 31 lands on Feb 28 instead of Mar 3.
func sameDayInMonth(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	target := first.AddDate(0, months, 0)
	day := t.Day()
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// View renders the month grid.
func (p *CalendarPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render(p.selected.Format("January 2006"))
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(p.renderWeekdayHeader())
	b.WriteString("\n")

	today := normalizeDay(p.now())
	year, month := p.selected.Year(), p.selected.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, p.selected.Location())

	// Walk a Sunday-aligned grid covering the whole month.
	cell := first.AddDate(0, 0, -int(first.Weekday()))
	for cell.Month() == month || cell.Before(first) {
		var cells []string
		for i := 0; i < 7; i++ {
			cells = append(cells, p.renderDay(cell, month, today))
			cell = cell.AddDate(0, 0, 1)
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}

func (p *CalendarPane) renderWeekdayHeader() string {
	labels := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	cells := make([]string, 0, 7)
	for i, label := range labels {
		style := p.styles.WeekdayHeaderStyle
		if i == 0 {
			style = p.styles.SundayHeaderStyle
		}
		cells = append(cells, style.Render(fmt.Sprintf(" %s ", label)))
	}
	return strings.Join(cells, " ")
}

// renderDay renders one four-cell day: space, two digits, and an event
// mark. Days outside the shown month render muted.
func (p *CalendarPane) renderDay(day time.Time, month time.Month, today time.Time) string {
	date := day.Format(storage.DateLayout)

	mark := " "
	if p.hasOwnEvents(date) {
		mark = p.styles.DayEventMark
	}

	label := fmt.Sprintf("%2d", day.Day())

	var style lipgloss.Style
	switch {
	case day.Month() != month:
		style = p.styles.DayOtherStyle
		mark = " "
	case day.Equal(today):
		style = p.styles.DayTodayStyle
	case p.isHoliday(date) || day.Weekday() == time.Sunday:
		style = p.styles.DayHolidayStyle
	case day.Weekday() == time.Saturday:
		style = p.styles.DaySaturdayStyle
	default:
		style = p.styles.DayStyle
	}

	cell := " " + style.Render(label) + mark
	if day.Equal(p.selected) && p.focused {
		return p.styles.DaySelectedStyle.Render(cell)
	}
	return cell
}

func (p *CalendarPane) isHoliday(date string) bool {
	_, ok := p.store.HolidayName(date)
	return ok
}

// hasOwnEvents reports whether the date has user events beyond the
// holiday pseudo-entry.
func (p *CalendarPane) hasOwnEvents(date string) bool {
	for _, ev := range p.store.EventsOn(date) {
		if !p.store.IsHolidayTitle(ev.Title) {
			return true
		}
	}
	return false
}
