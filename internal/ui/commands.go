// Package ui provides the terminal user interface for the calendar.
// This file contains tea.Cmd factories that wrap store operations. The
// store persists synchronously, so running its mutations inside commands
// keeps disk I/O off the Bubble Tea event loop. Each command returns a
// corresponding message type defined in messages.go.
package ui

import (
	"dal/internal/holiday"
	"dal/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// addEventCmd returns a command that creates a new event on the date.
func addEventCmd(store *storage.Store, date string, draft storage.Event) tea.Cmd {
	return func() tea.Msg {
		ev, err := store.AddEvent(date, draft)
		title := draft.Title
		if ev != nil {
			title = ev.Title
		}
		return eventSavedMsg{date: date, title: title, added: true, err: err}
	}
}

// updateEventCmd returns a command that replaces old with draft on the date.
func updateEventCmd(store *storage.Store, date string, old, draft storage.Event) tea.Cmd {
	return func() tea.Msg {
		ev, err := store.UpdateEvent(date, old, draft)
		title := draft.Title
		if ev != nil {
			title = ev.Title
		}
		return eventSavedMsg{date: date, title: title, err: err}
	}
}

// deleteEventCmd returns a command that removes the event from the date.
func deleteEventCmd(store *storage.Store, date string, ev storage.Event) tea.Cmd {
	return func() tea.Msg {
		err := store.DeleteEvent(date, ev)
		return eventDeletedMsg{date: date, title: ev.Title, err: err}
	}
}

// resetEventsCmd returns a command that clears all events, keeping
// holiday entries.
func resetEventsCmd(store *storage.Store) tea.Cmd {
	return func() tea.Msg {
		return eventsResetMsg{err: store.ResetEvents()}
	}
}

// materializeHolidaysCmd returns a command that records the year's
// holidays in the store. It is idempotent, so navigating back to an
// already-seen year is a no-op.
func materializeHolidaysCmd(store *storage.Store, src holiday.Source, year int) tea.Cmd {
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		err := store.MaterializeHolidays(year, src)
		return holidaysReadyMsg{year: year, err: err}
	}
}
