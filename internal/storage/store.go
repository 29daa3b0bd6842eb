package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"dal/internal/fsutil"

	"github.com/google/uuid"
)

const (
	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600

	maxTitleLen       = 120
	maxDescriptionLen = 2000
)

// HolidaySource resolves official holiday names for a calendar year,
// keyed by YYYY-MM-DD date.
type HolidaySource interface {
	Lookup(year int) map[string]string
}

// Store holds all calendar events and materialized holidays in memory,
// mirrored to a single JSON file. Every mutating method persists before
// returning. One RWMutex guards both maps; the alarm checker reads through
// Snapshot so it never observes a half-applied mutation.
type Store struct {
	path string

	mu       sync.RWMutex
	events   map[string][]Event
	holidays map[string]string
}

// Open loads the store from path. A missing file yields an empty store and
// no error. A file that exists but cannot be decoded yields a *CorruptError;
// if the .bak copy was readable the returned store is populated from it and
// CorruptError.Recovered is set, so the caller can warn and continue.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{
		path:     path,
		events:   make(map[string][]Event),
		holidays: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return s, err
	}
	return s, nil
}

// Path returns the data file path the store reads and writes.
func (s *Store) Path() string { return s.path }

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", s.path, err)
	}

	file, err := decodeStoreFile(data)
	if err != nil {
		return s.recoverFromBackup(err)
	}
	s.install(file)
	return nil
}

// decodeStoreFile parses and shape-checks the data file bytes.
func decodeStoreFile(data []byte) (storeFile, error) {
	var file storeFile
	if len(bytes.TrimSpace(data)) == 0 {
		return file, fmt.Errorf("file is empty")
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return file, err
	}
	for date := range file.Events {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return file, fmt.Errorf("bad event date key %q", date)
		}
	}
	for date := range file.Holidays {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return file, fmt.Errorf("bad holiday date key %q", date)
		}
	}
	return file, nil
}

// install replaces the in-memory maps with file contents, assigning a fresh
// session ID to every event.
func (s *Store) install(file storeFile) {
	events := make(map[string][]Event, len(file.Events))
	for date, list := range file.Events {
		copied := make([]Event, len(list))
		for i, ev := range list {
			ev.ID = uuid.NewString()
			copied[i] = ev
		}
		events[date] = copied
	}
	holidays := make(map[string]string, len(file.Holidays))
	for date, name := range file.Holidays {
		holidays[date] = name
	}
	s.events = events
	s.holidays = holidays
}

// recoverFromBackup tries the .bak copy written before each save. On
// success the broken file is moved aside and the recovered state is
// persisted; the returned CorruptError still surfaces what happened.
func (s *Store) recoverFromBackup(cause error) error {
	bak, bakErr := os.ReadFile(s.path + ".bak")
	if bakErr != nil {
		return &CorruptError{Path: s.path, Err: cause}
	}
	file, err := decodeStoreFile(bak)
	if err != nil {
		return &CorruptError{Path: s.path, Err: cause}
	}

	asidePath := fmt.Sprintf("%s.corrupt.%s", s.path, time.Now().Format("20060102-150405"))
	_ = os.Rename(s.path, asidePath)

	s.install(file)
	_ = s.saveLocked()
	return &CorruptError{Path: s.path, Recovered: true, Err: cause}
}

// Save serializes the store to its data file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

// saveLocked writes the data file. Callers must hold mu.
func (s *Store) saveLocked() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Korean titles must survive verbatim, not as \uXXXX escapes.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(storeFile{Events: s.events, Holidays: s.holidays}); err != nil {
		return fmt.Errorf("serialize %s: %w", s.path, err)
	}

	fsutil.BestEffortBackup(s.path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(s.path, buf.Bytes(), dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// normalizeEvent validates a draft and returns the canonical event that
// will be stored: title and description trimmed, alarm fields cleared when
// the alarm is off, alarm time validated and type defaulted when it is on.
func normalizeEvent(draft Event) (Event, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return Event{}, ErrEmptyTitle
	}
	if len(title) > maxTitleLen {
		return Event{}, fmt.Errorf("event title too long (max %d)", maxTitleLen)
	}
	desc := strings.TrimSpace(draft.Description)
	if len(desc) > maxDescriptionLen {
		return Event{}, fmt.Errorf("event description too long (max %d)", maxDescriptionLen)
	}

	ev := Event{
		Title:       title,
		Description: desc,
		Alarm:       draft.Alarm,
		Debug:       draft.Debug,
	}
	if !draft.Alarm {
		return ev, nil
	}

	if draft.AlarmTime == nil {
		return Event{}, ErrBadAlarmTime
	}
	if _, err := time.Parse(ClockLayout, *draft.AlarmTime); err != nil {
		return Event{}, ErrBadAlarmTime
	}
	at := *draft.AlarmTime
	ev.AlarmTime = &at

	kind := AlarmOnce
	if draft.AlarmType != nil {
		kind = *draft.AlarmType
	}
	if kind != AlarmDaily && kind != AlarmOnce {
		return Event{}, ErrBadAlarmType
	}
	ev.AlarmType = &kind
	return ev, nil
}

func validDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrBadDate
	}
	return nil
}

// AddEvent validates draft, appends it to the given date's list, and
// persists. The stored event (with its session ID) is returned.
func (s *Store) AddEvent(date string, draft Event) (*Event, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	ev, err := normalizeEvent(draft)
	if err != nil {
		return nil, err
	}
	ev.ID = uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[date] = append(s.events[date], ev)
	if err := s.saveLocked(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// UpdateEvent removes the first structural match of old on the given date
// and appends the normalized draft, so the updated event moves to the end
// of the day's list. The session ID carries over from the old event.
func (s *Store) UpdateEvent(date string, old Event, draft Event) (*Event, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	ev, err := normalizeEvent(draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.events[date]
	idx := indexOfSame(list, old)
	if idx < 0 {
		return nil, ErrEventNotFound
	}
	ev.ID = list[idx].ID

	s.events[date] = append(append(list[:idx:idx], list[idx+1:]...), ev)
	if err := s.saveLocked(); err != nil {
		return nil, err
	}
	return &ev, nil
}

// DeleteEvent removes the first structural match of ev on the given date
// and persists. Holiday protection is a presentation-layer policy; the
// store deletes whatever it is told to.
func (s *Store) DeleteEvent(date string, ev Event) error {
	if err := validDate(date); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.events[date]
	idx := indexOfSame(list, ev)
	if idx < 0 {
		return ErrEventNotFound
	}
	s.events[date] = append(list[:idx:idx], list[idx+1:]...)
	if len(s.events[date]) == 0 {
		delete(s.events, date)
	}
	return s.saveLocked()
}

// ResetEvents discards every user-created event and rebuilds the events
// map with one default entry per recorded holiday. Destructive and
// unconditional; confirmation belongs to the caller.
func (s *Store) ResetEvents() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	events := make(map[string][]Event, len(s.holidays))
	for date, name := range s.holidays {
		events[date] = []Event{holidayEvent(name)}
	}
	s.events = events
	return s.saveLocked()
}

// MaterializeHolidays records the source's holidays for a year into the
// holidays map and injects a pseudo-event at position 0 of each holiday
// date that does not already carry one. Idempotent per year: re-displaying
// a month never duplicates the holiday entry.
func (s *Store) MaterializeHolidays(year int, src HolidaySource) error {
	if src == nil {
		return nil
	}
	found := src.Lookup(year)
	if len(found) == 0 {
		return nil
	}

	dates := make([]string, 0, len(found))
	for date := range found {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, date := range dates {
		name := found[date]
		if s.holidays[date] != name {
			s.holidays[date] = name
			changed = true
		}
		if !hasTitle(s.events[date], name) {
			s.events[date] = append([]Event{holidayEvent(name)}, s.events[date]...)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.saveLocked()
}

// EventsOn returns a copy of the given date's event list, in insertion
// order (holiday entries first).
func (s *Store) EventsOn(date string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.events[date]
	out := make([]Event, len(list))
	copy(out, list)
	return out
}

// Snapshot returns a copy of the full events map. The alarm checker scans
// snapshots so in-flight mutations are never observed mid-change.
func (s *Store) Snapshot() map[string][]Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]Event, len(s.events))
	for date, list := range s.events {
		copied := make([]Event, len(list))
		copy(copied, list)
		out[date] = copied
	}
	return out
}

// Holidays returns a copy of the materialized holiday map.
func (s *Store) Holidays() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.holidays))
	for date, name := range s.holidays {
		out[date] = name
	}
	return out
}

// HolidayName returns the recorded holiday name for a date, if any.
func (s *Store) HolidayName(date string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.holidays[date]
	return name, ok
}

// IsHolidayTitle reports whether title matches any recorded holiday name.
// The UI uses this to refuse editing or deleting holiday entries.
func (s *Store) IsHolidayTitle(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, name := range s.holidays {
		if name == title {
			return true
		}
	}
	return false
}

// Counts returns the number of events and holiday entries, for backup
// manifests and reports.
func (s *Store) Counts() (events, holidays int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range s.events {
		events += len(list)
	}
	return events, len(s.holidays)
}

func holidayEvent(name string) Event {
	return Event{ID: uuid.NewString(), Title: name}
}

func hasTitle(list []Event, title string) bool {
	for _, ev := range list {
		if ev.Title == title {
			return true
		}
	}
	return false
}

func indexOfSame(list []Event, target Event) int {
	for i, ev := range list {
		if ev.Same(target) {
			return i
		}
	}
	return -1
}
