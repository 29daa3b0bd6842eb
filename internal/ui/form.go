// Package ui provides the terminal user interface for the calendar.
package ui

import (
	"strings"

	"dal/internal/config"
	"dal/internal/storage"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// formField identifies the focusable fields of the event form.
type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldAlarm
	fieldAlarmType
	fieldAlarmTime
	fieldCount
)

// EventForm edits a single event. It produces a draft storage.Event on
// submit; validation beyond the HH:MM shape is left to the store.
type EventForm struct {
	styles *Styles
	keys   FormKeyMap

	date    string
	editing *storage.Event // nil when adding

	title       textinput.Model
	description textinput.Model
	alarmTime   textinput.Model
	alarm       bool
	alarmType   storage.AlarmType

	field formField
	width int
}

// NewEventForm creates a form for adding an event on the given date.
func NewEventForm(styles *Styles, keyCfg *config.KeysConfig, date string) *EventForm {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}

	title := textinput.New()
	title.Placeholder = "Event title"
	title.CharLimit = 120
	title.Width = 40
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Description (optional)"
	description.CharLimit = 200
	description.Width = 40

	alarmTime := textinput.New()
	alarmTime.Placeholder = "HH:MM"
	alarmTime.CharLimit = 5
	alarmTime.Width = 8

	return &EventForm{
		styles:      styles,
		keys:        NewFormKeyMap(keyCfg),
		date:        date,
		title:       title,
		description: description,
		alarmTime:   alarmTime,
		alarmType:   storage.AlarmOnce,
	}
}

// NewEditForm creates a form pre-filled with an existing event.
func NewEditForm(styles *Styles, keyCfg *config.KeysConfig, date string, ev storage.Event) *EventForm {
	f := NewEventForm(styles, keyCfg, date)
	evCopy := ev
	f.editing = &evCopy
	f.title.SetValue(ev.Title)
	f.description.SetValue(ev.Description)
	f.alarm = ev.Alarm
	f.alarmType = ev.AlarmTypeValue()
	f.alarmTime.SetValue(ev.AlarmTimeValue())
	return f
}

// Date returns the day the form targets.
func (f *EventForm) Date() string { return f.date }

// Editing returns the original event when the form edits one, nil when
// it adds.
func (f *EventForm) Editing() *storage.Event { return f.editing }

// SetWidth adjusts the input widths to the available space.
func (f *EventForm) SetWidth(width int) {
	f.width = width
	w := maxInt(20, width-20)
	f.title.Width = w
	f.description.Width = w
}

// Draft assembles the event described by the form's current state.
func (f *EventForm) Draft() storage.Event {
	draft := storage.Event{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.description.Value()),
		Alarm:       f.alarm,
	}
	if f.alarm {
		t := strings.TrimSpace(f.alarmTime.Value())
		draft.AlarmTime = &t
		at := f.alarmType
		draft.AlarmType = &at
	}
	return draft
}

// formResult signals what a key did to the form.
type formResult int

const (
	formContinue formResult = iota
	formSubmit
	formCancel
)

// Update handles form input. The returned tea.Cmd carries cursor blink
// commands from the focused text input.
func (f *EventForm) Update(msg tea.Msg) (formResult, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return formContinue, f.updateFocusedInput(msg)
	}

	switch {
	case key.Matches(keyMsg, f.keys.Cancel):
		return formCancel, nil

	case key.Matches(keyMsg, f.keys.Confirm):
		return formSubmit, nil

	case key.Matches(keyMsg, f.keys.NextField):
		f.moveFocus(1)
		return formContinue, textinput.Blink

	case key.Matches(keyMsg, f.keys.PrevField):
		f.moveFocus(-1)
		return formContinue, textinput.Blink
	}

	// Space toggles the boolean fields; elsewhere it is ordinary text.
	if key.Matches(keyMsg, f.keys.Toggle) {
		switch f.field {
		case fieldAlarm:
			f.alarm = !f.alarm
			return formContinue, nil
		case fieldAlarmType:
			if f.alarmType == storage.AlarmOnce {
				f.alarmType = storage.AlarmDaily
			} else {
				f.alarmType = storage.AlarmOnce
			}
			return formContinue, nil
		}
	}

	return formContinue, f.updateFocusedInput(msg)
}

// moveFocus shifts field focus by delta, skipping alarm detail fields
// while the alarm is off.
func (f *EventForm) moveFocus(delta int) {
	for {
		f.field = formField((int(f.field) + delta + int(fieldCount)) % int(fieldCount))
		if f.alarm || (f.field != fieldAlarmType && f.field != fieldAlarmTime) {
			break
		}
	}

	f.title.Blur()
	f.description.Blur()
	f.alarmTime.Blur()
	switch f.field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldAlarmTime:
		f.alarmTime.Focus()
	}
}

func (f *EventForm) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.field {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldAlarmTime:
		f.alarmTime, cmd = f.alarmTime.Update(msg)
	}
	return cmd
}

// View renders the form.
func (f *EventForm) View() string {
	var b strings.Builder

	heading := "Add event"
	if f.editing != nil {
		heading = "Edit event"
	}
	b.WriteString(f.styles.PaneTitleStyle.Render(heading + "  " + f.date))
	b.WriteString("\n\n")

	b.WriteString(f.renderLabel(fieldTitle, "Title"))
	b.WriteString(f.title.View())
	b.WriteString("\n")

	b.WriteString(f.renderLabel(fieldDescription, "Description"))
	b.WriteString(f.description.View())
	b.WriteString("\n")

	b.WriteString(f.renderLabel(fieldAlarm, "Alarm"))
	b.WriteString(f.renderToggle(f.alarm, "on", "off"))
	b.WriteString("\n")

	if f.alarm {
		b.WriteString(f.renderLabel(fieldAlarmType, "Repeat"))
		b.WriteString(f.renderToggle(f.alarmType == storage.AlarmDaily, "daily", "once"))
		b.WriteString("\n")

		b.WriteString(f.renderLabel(fieldAlarmTime, "Time"))
		b.WriteString(f.alarmTime.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.styles.RenderHelp(
		"tab", "next field",
		"space", "toggle",
		"enter", "save",
		"esc", "cancel",
	))

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(f.styles.ColorPrimary).
		Padding(1, 2)
	return style.Render(b.String())
}

func (f *EventForm) renderLabel(field formField, label string) string {
	marker := "  "
	if f.field == field {
		marker = f.styles.InputPromptStyle.Render("> ")
	}
	return marker + f.styles.InputLabelStyle.Render(padLabel(label)) + " "
}

func (f *EventForm) renderToggle(on bool, onLabel, offLabel string) string {
	if on {
		return f.styles.InputTextStyle.Render("[" + onLabel + "]")
	}
	return f.styles.HelpStyle.Render("[" + offLabel + "]")
}

func padLabel(label string) string {
	const width = 12
	if len(label) >= width {
		return label
	}
	return label + strings.Repeat(" ", width-len(label))
}
