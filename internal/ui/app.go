// Package ui provides the terminal user interface for the calendar.
// This file contains the main App model which coordinates the month grid
// and the day pane, and routes messages using the Bubble Tea
// architecture.
package ui

import (
	"fmt"
	"strings"
	"time"

	"dal/internal/config"
	"dal/internal/holiday"
	"dal/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LayoutMode determines how the panes are arranged based on terminal width.
type LayoutMode int

const (
	// LayoutWide shows the month grid and the day pane side-by-side.
	LayoutWide LayoutMode = iota
	// LayoutNarrow stacks the day pane under the month grid.
	LayoutNarrow
)

// AppConfig holds user configuration for the app behavior.
type AppConfig struct {
	Keys                  *config.KeysConfig
	ConfirmDeletions      bool
	HolidaysEnabled       bool
	NarrowLayoutThreshold int
}

// App is the main application model.
type App struct {
	store       *storage.Store
	styles      *Styles
	config      *AppConfig
	holidaySrc  holiday.Source
	calendar    *CalendarPane
	dayPane     *DayPane
	form        *EventForm
	helpOverlay *HelpOverlay
	confirm     *confirmState
	layoutMode  LayoutMode
	showHelp    bool
	width       int
	height      int
	status      string
	statusErr   bool
	statusUntil time.Time
	quitting    bool

	// Key bindings
	keys     GlobalKeyMap
	calKeys  CalendarKeyMap
	helpKeys HelpKeyMap
}

type confirmState struct {
	title string
	body  string
	cmd   tea.Cmd
}

// NewApp creates a new application. Holiday materialization is deferred
// to Init() to keep the constructor non-blocking.
func NewApp(store *storage.Store, styles *Styles, src holiday.Source, cfg *AppConfig) *App {
	if cfg == nil {
		cfg = &AppConfig{
			Keys:                  &config.KeysConfig{},
			ConfirmDeletions:      true,
			HolidaysEnabled:       true,
			NarrowLayoutThreshold: 90,
		}
	}
	if cfg.Keys == nil {
		cfg.Keys = &config.KeysConfig{}
	}
	if !cfg.HolidaysEnabled {
		src = nil
	}

	calendar := NewCalendarPane(store, styles, cfg.Keys)
	dayPane := NewDayPane(store, styles)
	dayPane.SetDate(calendar.SelectedDate())

	app := &App{
		store:       store,
		styles:      styles,
		config:      cfg,
		holidaySrc:  src,
		calendar:    calendar,
		dayPane:     dayPane,
		helpOverlay: NewHelpOverlay(styles),
		keys:        NewGlobalKeyMap(cfg.Keys),
		calKeys:     NewCalendarKeyMap(cfg.Keys),
		helpKeys:    DefaultHelpKeyMap(),
	}

	calendar.SetFocused(true)
	dayPane.SetFocused(true)

	return app
}

// tickMsg is sent periodically for status expiry and today tracking.
type tickMsg time.Time

// tickCmd returns a command that sends a tick every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the tick loop and records the visible year's holidays.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		materializeHolidaysCmd(a.store, a.holidaySrc, a.calendar.Selected().Year()),
	)
}

// Update handles all messages and routes them appropriately.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventSavedMsg:
		if msg.err != nil {
			a.SetStatus("Save event: "+msg.err.Error(), true)
		} else if msg.added {
			a.SetStatus(fmt.Sprintf("Added %q", msg.title), false)
		} else {
			a.SetStatus(fmt.Sprintf("Updated %q", msg.title), false)
		}
		a.dayPane.Reload()
		return a, nil

	case eventDeletedMsg:
		if msg.err != nil {
			a.SetStatus("Delete event: "+msg.err.Error(), true)
		} else {
			a.SetStatus(fmt.Sprintf("Deleted %q", msg.title), false)
		}
		a.dayPane.Reload()
		return a, nil

	case eventsResetMsg:
		if msg.err != nil {
			a.SetStatus("Reset: "+msg.err.Error(), true)
		} else {
			a.SetStatus("All events cleared", false)
		}
		a.dayPane.Reload()
		return a, nil

	case holidaysReadyMsg:
		if msg.err != nil {
			a.SetStatus("Holidays: "+msg.err.Error(), true)
		}
		a.dayPane.Reload()
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tickMsg:
		if a.status != "" && !a.statusUntil.IsZero() && time.Now().After(a.statusUntil) {
			a.status = ""
			a.statusErr = false
			a.statusUntil = time.Time{}
		}
		return a, tickCmd()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Remaining messages (cursor blinks) belong to the form's inputs.
	if a.form != nil {
		_, cmd := a.form.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirm != nil {
		switch msg.String() {
		case "y", "Y", "enter":
			cmd := a.confirm.cmd
			a.confirm = nil
			return a, cmd
		case "n", "N", "esc":
			a.confirm = nil
			a.SetStatus("Canceled", false)
			return a, nil
		default:
			return a, nil
		}
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	if a.form != nil {
		return a.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.calKeys.Add):
		a.form = NewEventForm(a.styles, a.config.Keys, a.calendar.SelectedDate())
		a.form.SetWidth(a.width)
		return a, nil

	case key.Matches(msg, a.calKeys.Edit):
		ev := a.dayPane.SelectedEvent()
		if ev == nil {
			a.SetStatus("No editable event selected", true)
			return a, nil
		}
		a.form = NewEditForm(a.styles, a.config.Keys, a.calendar.SelectedDate(), *ev)
		a.form.SetWidth(a.width)
		return a, nil

	case key.Matches(msg, a.calKeys.Delete):
		ev := a.dayPane.SelectedEvent()
		if ev == nil {
			a.SetStatus("No deletable event selected", true)
			return a, nil
		}
		cmd := deleteEventCmd(a.store, a.calendar.SelectedDate(), *ev)
		if a.config.ConfirmDeletions {
			a.confirm = &confirmState{
				title: "Delete event?",
				body:  truncateText(ev.Title, 60),
				cmd:   cmd,
			}
			return a, nil
		}
		return a, cmd

	case key.Matches(msg, a.calKeys.Reset):
		cmd := resetEventsCmd(a.store)
		if a.config.ConfirmDeletions {
			a.confirm = &confirmState{
				title: "Reset all events?",
				body:  "Every event will be removed. Holidays stay.",
				cmd:   cmd,
			}
			return a, nil
		}
		return a, cmd

	case key.Matches(msg, a.calKeys.NextEvent):
		a.dayPane.MoveCursor(1)
		return a, nil

	case key.Matches(msg, a.calKeys.PrevEvent):
		a.dayPane.MoveCursor(-1)
		return a, nil
	}

	// Calendar navigation
	monthChanged := a.calendar.Update(msg)
	a.dayPane.SetDate(a.calendar.SelectedDate())
	if monthChanged {
		return a, materializeHolidaysCmd(a.store, a.holidaySrc, a.calendar.Selected().Year())
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := a.form.Update(msg)
	switch result {
	case formCancel:
		a.form = nil
		a.SetStatus("Canceled", false)
		return a, nil

	case formSubmit:
		draft := a.form.Draft()
		date := a.form.Date()
		old := a.form.Editing()
		a.form = nil
		if old != nil {
			return a, updateEventCmd(a.store, date, *old, draft)
		}
		return a, addEventCmd(a.store, date, draft)
	}
	return a, cmd
}

// updateLayout recalculates pane sizes based on terminal dimensions.
func (a *App) updateLayout() {
	// Leave room for the title bar (2) and the help bar (1).
	contentHeight := a.height - 4
	if contentHeight < 10 {
		contentHeight = 10
	}

	a.helpOverlay.SetSize(a.width, a.height)
	if a.form != nil {
		a.form.SetWidth(a.width)
	}

	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 90
	}

	// The grid needs 7 four-cell columns plus borders.
	const calendarWidth = 36

	if a.width < threshold {
		a.layoutMode = LayoutNarrow
		paneWidth := maxInt(a.width-4, calendarWidth)
		calHeight := 9
		a.calendar.SetSize(paneWidth, calHeight)
		a.dayPane.SetSize(paneWidth, maxInt(contentHeight-calHeight-2, 6))
	} else {
		a.layoutMode = LayoutWide
		a.calendar.SetSize(calendarWidth, contentHeight)
		dayWidth := a.width - calendarWidth - 7
		if dayWidth < 20 {
			dayWidth = 20
		}
		a.dayPane.SetSize(dayWidth, contentHeight)
	}
}

// View renders the entire app.
func (a *App) View() string {
	if a.quitting {
		return a.renderGoodbye()
	}

	if a.confirm != nil {
		return a.renderConfirm()
	}

	if a.showHelp {
		return a.helpOverlay.View()
	}

	if a.form != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.form.View())
	}

	var b strings.Builder

	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	switch a.layoutMode {
	case LayoutNarrow:
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, a.calendar.View(), a.dayPane.View()))
	default:
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, a.calendar.View(), " ", a.dayPane.View()))
	}
	b.WriteString("\n")

	b.WriteString(a.renderHelpBar())

	return b.String()
}

func (a *App) renderConfirm() string {
	overlayWidth := 60
	if a.width > 0 {
		overlayWidth = minInt(60, maxInt(20, a.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(a.styles.ColorDanger).
		MarginBottom(1)

	bodyStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorText)

	hintStyle := lipgloss.NewStyle().
		Foreground(a.styles.ColorTextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.confirm.title))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(a.confirm.body))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("[y/enter] confirm    [n/esc] cancel"))

	content := overlayStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
}

// renderGoodbye shows a short exit message with store totals.
func (a *App) renderGoodbye() string {
	events, holidays := a.store.Counts()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  See you later!\n")
	if events > 0 {
		b.WriteString(fmt.Sprintf("  %d event(s) on file, %d holiday(s).\n", events, holidays))
	}
	b.WriteString("\n")
	return b.String()
}

// renderTitleBar creates the top title bar with the selected day and
// store totals.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render(" dal ")

	events, _ := a.store.Counts()
	stats := ""
	if events > 0 {
		stats = a.styles.HelpStyle.Render(fmt.Sprintf("%d event(s)", events))
	}

	selected := a.styles.DateStyle.Render(a.calendar.Selected().Format("Mon, Jan 2 2006"))

	titleWidth := lipgloss.Width(title)
	statsWidth := lipgloss.Width(stats)
	selWidth := lipgloss.Width(selected)

	spacerWidth := a.width - titleWidth - statsWidth - selWidth - 4
	if spacerWidth < 2 {
		spacerWidth = 2
	}

	var parts []string
	parts = append(parts, title)
	if stats != "" {
		parts = append(parts, "  "+stats)
	}
	parts = append(parts, strings.Repeat(" ", spacerWidth), selected)

	return strings.Join(parts, "")
}

// renderHelpBar creates the bottom help bar with context-sensitive hints.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return a.styles.ErrorStyle.Render(a.status)
		}
		return a.styles.StatusStyle.Render(a.status)
	}

	if a.form != nil {
		return a.styles.RenderHelp(
			"enter", "save",
			"esc", "cancel",
		)
	}

	return a.styles.RenderHelp(
		"a", "add",
		"enter", "edit",
		"x", "del",
		"hjkl", "nav",
		"[ ]", "month",
		"t", "today",
		"?", "help",
	)
}

// SetStatus sets a status message to display to the user.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := 5 * time.Second
	if isErr {
		ttl = 8 * time.Second
	}
	a.statusUntil = time.Now().Add(ttl)
}

// truncateText shortens text to at most max runes.
func truncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}

// Run starts the Bubble Tea program with the given store, styles,
// holiday source, and config.
func Run(store *storage.Store, styles *Styles, src holiday.Source, cfg *AppConfig) error {
	app := NewApp(store, styles, src, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
