// Package ui provides the terminal user interface for the calendar.
// This file defines message types for async store operations using the
// Bubble Tea command pattern. All mutations return these messages to
// keep the event loop non-blocking.
package ui

// eventSavedMsg is sent when an event was added or updated.
type eventSavedMsg struct {
	date  string
	title string
	added bool // true for add, false for update
	err   error
}

// eventDeletedMsg is sent when an event was removed.
type eventDeletedMsg struct {
	date  string
	title string
	err   error
}

// eventsResetMsg is sent when all events were cleared.
type eventsResetMsg struct {
	err error
}

// holidaysReadyMsg is sent when a year's holidays were materialized into
// the store.
type holidaysReadyMsg struct {
	year int
	err  error
}
