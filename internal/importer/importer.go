// Package importer brings events from external calendar files into the
// store. Only the iCalendar format is supported.
package importer

import (
	"io"

	"dal/internal/storage"
)

// Result contains statistics about an import operation.
type Result struct {
	Added   int      // Number of successfully imported events
	Skipped int      // Number of skipped entries (duplicates, undated items)
	Errors  []string // Error messages for entries that could not be read
}

// PreviewEvent represents an event before import.
type PreviewEvent struct {
	Date        string // YYYY-MM-DD
	Title       string
	Description string
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads events from the reader and adds them to the store.
	Import(reader io.Reader, store *storage.Store) (*Result, error)

	// Preview reads events from the reader without importing.
	Preview(reader io.Reader) ([]PreviewEvent, error)

	// Name returns the importer name (e.g., "ics").
	Name() string
}

// GetImporter returns the importer for the given format, or nil when the
// format is unknown.
func GetImporter(format string) Importer {
	switch format {
	case "ics", "ical", "icalendar":
		return &ICSImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"ics"}
}
