package importer

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"dal/internal/storage"
)

// ICSImporter imports events from iCalendar (.ics) files, the export
// format of Google Calendar, Apple Calendar and most other calendar
// applications.
type ICSImporter struct{}

// Name returns the importer name.
func (i *ICSImporter) Name() string { return "ics" }

// Import reads VEVENTs from the reader and adds them to the store. An
// event whose title already exists on its date is counted as a duplicate
// and skipped; recurring events contribute only their first occurrence.
func (i *ICSImporter) Import(reader io.Reader, store *storage.Store) (*Result, error) {
	previews, errs, err := parseCalendar(reader)
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: errs}
	for _, p := range previews {
		if hasTitleOn(store, p.Date, p.Title) {
			result.Skipped++
			continue
		}
		if _, err := store.AddEvent(p.Date, storage.Event{
			Title:       p.Title,
			Description: p.Description,
		}); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s %q: %v", p.Date, p.Title, err))
			continue
		}
		result.Added++
	}
	return result, nil
}

// Preview reads VEVENTs from the reader without touching the store.
func (i *ICSImporter) Preview(reader io.Reader) ([]PreviewEvent, error) {
	previews, _, err := parseCalendar(reader)
	return previews, err
}

func parseCalendar(reader io.Reader) ([]PreviewEvent, []string, error) {
	cal, err := ical.ParseCalendar(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("parse calendar: %w", err)
	}

	var previews []PreviewEvent
	var errs []string
	for _, ve := range cal.Events() {
		p, err := parseVEvent(ve)
		if err != nil {
			// Keep going; one malformed entry must not abort the file.
			errs = append(errs, err.Error())
			continue
		}
		previews = append(previews, p)
	}
	return previews, errs, nil
}

func parseVEvent(ve *ical.VEvent) (PreviewEvent, error) {
	var p PreviewEvent

	if prop := ve.GetProperty(ical.ComponentPropertySummary); prop != nil {
		p.Title = strings.TrimSpace(unescapeText(prop.Value))
	}
	if p.Title == "" {
		return p, fmt.Errorf("entry without a summary")
	}
	if prop := ve.GetProperty(ical.ComponentPropertyDescription); prop != nil {
		p.Description = strings.TrimSpace(unescapeText(prop.Value))
	}

	start, err := startDate(ve)
	if err != nil {
		return p, fmt.Errorf("%q: %w", p.Title, err)
	}
	p.Date = start.Format(storage.DateLayout)
	return p, nil
}

// startDate resolves DTSTART to a calendar date. All-day events carry
// VALUE=DATE or a bare YYYYMMDD value; timed events go through the
// library's timezone handling.
func startDate(ve *ical.VEvent) (time.Time, error) {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil || prop.Value == "" {
		return time.Time{}, fmt.Errorf("missing start date")
	}

	if !strings.Contains(prop.Value, "T") {
		return time.ParseInLocation("20060102", prop.Value, time.Local)
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, fmt.Errorf("bad start date %q: %w", prop.Value, err)
	}
	return start.In(time.Local), nil
}

// unescapeText undoes RFC 5545 text escaping (\n, \, \; \\).
func unescapeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'N':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func hasTitleOn(store *storage.Store, date, title string) bool {
	for _, ev := range store.EventsOn(date) {
		if ev.Title == title {
			return true
		}
	}
	return false
}
