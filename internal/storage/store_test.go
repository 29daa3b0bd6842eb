package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// createTestStore opens a store backed by a file in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "events.json"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	return store
}

func strPtr(s string) *string { return &s }

func typePtr(a AlarmType) *AlarmType { return &a }

// fixedHolidays is a canned holiday source for tests.
type fixedHolidays map[int]map[string]string

func (f fixedHolidays) Lookup(year int) map[string]string { return f[year] }

// =============================================================================
// Open / Save
// =============================================================================

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "events.json"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if events, holidays := store.Counts(); events != 0 || holidays != 0 {
		t.Errorf("Counts() = (%d, %d), want (0, 0)", events, holidays)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if _, err := store.AddEvent("2024-03-01", Event{
		Title:       "치과 예약",
		Description: "오후 검진",
		Alarm:       true,
		AlarmTime:   strPtr("13:00"),
		AlarmType:   typePtr(AlarmOnce),
	}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if _, err := store.AddEvent("2024-03-01", Event{Title: "Standup"}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if err := store.MaterializeHolidays(2024, fixedHolidays{
		2024: {"2024-03-01": "삼일절"},
	}); err != nil {
		t.Fatalf("MaterializeHolidays() error = %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open() after save error = %v", err)
	}

	got := reloaded.EventsOn("2024-03-01")
	want := store.EventsOn("2024-03-01")
	if len(got) != len(want) {
		t.Fatalf("len(events) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Same(want[i]) {
			t.Errorf("event[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	holidays := reloaded.Holidays()
	if holidays["2024-03-01"] != "삼일절" {
		t.Errorf("holidays[2024-03-01] = %q, want %q", holidays["2024-03-01"], "삼일절")
	}
}

func TestSave_KoreanTextStaysVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	store, _ := Open(path)

	if _, err := store.AddEvent("2024-01-01", Event{Title: "신정"}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "신정") {
		t.Errorf("data file does not contain verbatim Korean text:\n%s", data)
	}
	if strings.Contains(string(data), `\u`) {
		t.Errorf("data file contains unicode escapes:\n%s", data)
	}
}

func TestLoad_LegacyStringEventUpgrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	legacy := `{
  "events": {"2024-08-15": ["Independence Day"]},
  "holidays": {"2024-08-15": "Independence Day"}
}`
	if err := os.WriteFile(path, []byte(legacy), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	events := store.EventsOn("2024-08-15")
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	got := events[0]
	if got.Title != "Independence Day" {
		t.Errorf("Title = %q, want %q", got.Title, "Independence Day")
	}
	if got.Description != "" || got.Alarm || got.AlarmTime != nil || got.AlarmType != nil || got.Debug {
		t.Errorf("legacy upgrade defaults wrong: %+v", got)
	}
	if got.ID == "" {
		t.Error("loaded event has no session ID")
	}
}

func TestOpen_CorruptFileWithoutBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	store, err := Open(path)
	var ce *CorruptError
	if !errors.As(err, &ce) {
		t.Fatalf("Open() error = %v, want *CorruptError", err)
	}
	if ce.Recovered {
		t.Error("Recovered = true, want false without a .bak")
	}
	if events, _ := store.Counts(); events != 0 {
		t.Errorf("store not empty after unrecoverable corruption: %d events", events)
	}

	// The broken file must be left in place for the user to inspect.
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("corrupt file was removed: %v", statErr)
	}
}

func TestOpen_CorruptFileRecoversFromBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.json")

	// Build a good store, then corrupt the main file. Saving twice
	// guarantees the .bak copy holds the first event.
	store, _ := Open(path)
	if _, err := store.AddEvent("2024-05-05", Event{Title: "어린이날 나들이"}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := os.WriteFile(path, []byte("garbage"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	recovered, err := Open(path)
	var ce *CorruptError
	if !errors.As(err, &ce) {
		t.Fatalf("Open() error = %v, want *CorruptError", err)
	}
	if !ce.Recovered {
		t.Fatal("Recovered = false, want true with a valid .bak")
	}
	events := recovered.EventsOn("2024-05-05")
	if len(events) != 1 || events[0].Title != "어린이날 나들이" {
		t.Errorf("recovered events = %+v, want the backed-up event", events)
	}
}

func TestOpen_RejectsBadDateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	bad := `{"events": {"03/01/2024": [{"title": "x"}]}, "holidays": {}}`
	if err := os.WriteFile(path, []byte(bad), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := Open(path)
	var ce *CorruptError
	if !errors.As(err, &ce) {
		t.Fatalf("Open() error = %v, want *CorruptError", err)
	}
}

// =============================================================================
// AddEvent
// =============================================================================

func TestAddEvent(t *testing.T) {
	tests := []struct {
		name  string
		draft Event
	}{
		{
			name:  "plain event",
			draft: Event{Title: "Dentist", Description: "  checkup  "},
		},
		{
			name: "daily alarm",
			draft: Event{
				Title:     "Medication",
				Alarm:     true,
				AlarmTime: strPtr("09:00"),
				AlarmType: typePtr(AlarmDaily),
			},
		},
		{
			name: "alarm without type defaults to once",
			draft: Event{
				Title:     "Call mom",
				Alarm:     true,
				AlarmTime: strPtr("19:30"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStore(t)

			ev, err := store.AddEvent("2024-06-01", tt.draft)
			if err != nil {
				t.Fatalf("AddEvent() error = %v", err)
			}
			if ev.ID == "" {
				t.Error("stored event has no session ID")
			}
			if ev.Description != strings.TrimSpace(tt.draft.Description) {
				t.Errorf("Description = %q, want trimmed %q", ev.Description, tt.draft.Description)
			}
			if tt.draft.Alarm && tt.draft.AlarmType == nil {
				if ev.AlarmTypeValue() != AlarmOnce {
					t.Errorf("AlarmTypeValue() = %q, want %q", ev.AlarmTypeValue(), AlarmOnce)
				}
			}

			events := store.EventsOn("2024-06-01")
			if len(events) != 1 || !events[0].Same(*ev) {
				t.Errorf("EventsOn() = %+v, want the stored event", events)
			}
		})
	}
}

func TestAddEvent_Validation(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		draft   Event
		wantErr error
	}{
		{"empty title", "2024-06-01", Event{Title: "   "}, ErrEmptyTitle},
		{"bad date", "06/01/2024", Event{Title: "x"}, ErrBadDate},
		{"alarm without time", "2024-06-01", Event{Title: "x", Alarm: true}, ErrBadAlarmTime},
		{"alarm with bad time", "2024-06-01", Event{Title: "x", Alarm: true, AlarmTime: strPtr("25:99")}, ErrBadAlarmTime},
		{"bad alarm type", "2024-06-01", Event{Title: "x", Alarm: true, AlarmTime: strPtr("09:00"), AlarmType: typePtr("hourly")}, ErrBadAlarmType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStore(t)
			_, err := store.AddEvent(tt.date, tt.draft)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddEvent() error = %v, want %v", err, tt.wantErr)
			}
			if events := store.EventsOn("2024-06-01"); len(events) != 0 {
				t.Errorf("store changed by rejected add: %+v", events)
			}
		})
	}
}

func TestAddEvent_ClearsAlarmFieldsWhenAlarmOff(t *testing.T) {
	store := createTestStore(t)

	ev, err := store.AddEvent("2024-06-01", Event{
		Title:     "No alarm",
		AlarmTime: strPtr("09:00"),
		AlarmType: typePtr(AlarmDaily),
	})
	if err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	if ev.AlarmTime != nil || ev.AlarmType != nil {
		t.Errorf("alarm fields not cleared: %+v", ev)
	}
}

// =============================================================================
// UpdateEvent / DeleteEvent
// =============================================================================

func TestUpdateEvent_MovesToEnd(t *testing.T) {
	store := createTestStore(t)

	first, _ := store.AddEvent("2024-06-01", Event{Title: "First"})
	if _, err := store.AddEvent("2024-06-01", Event{Title: "Second"}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	updated, err := store.UpdateEvent("2024-06-01", *first, Event{Title: "First, renamed"})
	if err != nil {
		t.Fatalf("UpdateEvent() error = %v", err)
	}

	events := store.EventsOn("2024-06-01")
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Title != "Second" {
		t.Errorf("events[0].Title = %q, want %q", events[0].Title, "Second")
	}
	if events[1].Title != "First, renamed" {
		t.Errorf("events[1].Title = %q, want %q (updated event must be last)", events[1].Title, "First, renamed")
	}
	if updated.ID != first.ID {
		t.Errorf("updated.ID = %q, want the original %q", updated.ID, first.ID)
	}
}

func TestUpdateEvent_TargetMissing(t *testing.T) {
	store := createTestStore(t)
	store.AddEvent("2024-06-01", Event{Title: "Here"})

	_, err := store.UpdateEvent("2024-06-01", Event{Title: "Gone"}, Event{Title: "New"})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("UpdateEvent() error = %v, want ErrEventNotFound", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	store := createTestStore(t)

	keep, _ := store.AddEvent("2024-06-01", Event{Title: "Keep"})
	drop, _ := store.AddEvent("2024-06-01", Event{Title: "Drop"})

	if err := store.DeleteEvent("2024-06-01", *drop); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}

	events := store.EventsOn("2024-06-01")
	if len(events) != 1 || events[0].ID != keep.ID {
		t.Errorf("EventsOn() = %+v, want only the kept event", events)
	}
}

func TestDeleteEvent_AbsentLeavesStoreIntact(t *testing.T) {
	store := createTestStore(t)
	store.AddEvent("2024-06-01", Event{Title: "Here"})

	err := store.DeleteEvent("2024-06-01", Event{Title: "Gone"})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("DeleteEvent() error = %v, want ErrEventNotFound", err)
	}
	if events := store.EventsOn("2024-06-01"); len(events) != 1 {
		t.Errorf("len(events) = %d, want 1", len(events))
	}
}

func TestDeleteEvent_FirstStructuralMatchOnly(t *testing.T) {
	store := createTestStore(t)

	store.AddEvent("2024-06-01", Event{Title: "Twin"})
	store.AddEvent("2024-06-01", Event{Title: "Twin"})

	if err := store.DeleteEvent("2024-06-01", Event{Title: "Twin"}); err != nil {
		t.Fatalf("DeleteEvent() error = %v", err)
	}
	if events := store.EventsOn("2024-06-01"); len(events) != 1 {
		t.Errorf("len(events) = %d, want 1 (only the first match removed)", len(events))
	}
}

// =============================================================================
// Holidays / Reset
// =============================================================================

func TestMaterializeHolidays_Idempotent(t *testing.T) {
	store := createTestStore(t)
	src := fixedHolidays{2024: {
		"2024-01-01": "신정",
		"2024-03-01": "삼일절",
	}}

	for i := 0; i < 2; i++ {
		if err := store.MaterializeHolidays(2024, src); err != nil {
			t.Fatalf("MaterializeHolidays() pass %d error = %v", i+1, err)
		}
	}

	for date, name := range src[2024] {
		count := 0
		for _, ev := range store.EventsOn(date) {
			if ev.Title == name {
				count++
			}
		}
		if count != 1 {
			t.Errorf("%s: %d events titled %q, want exactly 1", date, count, name)
		}
	}
}

func TestMaterializeHolidays_InsertsAtFront(t *testing.T) {
	store := createTestStore(t)

	store.AddEvent("2024-01-01", Event{Title: "New year dinner"})
	src := fixedHolidays{2024: {"2024-01-01": "신정"}}
	if err := store.MaterializeHolidays(2024, src); err != nil {
		t.Fatalf("MaterializeHolidays() error = %v", err)
	}

	events := store.EventsOn("2024-01-01")
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Title != "신정" {
		t.Errorf("events[0].Title = %q, want the holiday at position 0", events[0].Title)
	}
	if events[0].Alarm || events[0].Debug {
		t.Errorf("holiday pseudo-event has alarm/debug set: %+v", events[0])
	}
}

func TestIsHolidayTitle(t *testing.T) {
	store := createTestStore(t)
	store.MaterializeHolidays(2024, fixedHolidays{2024: {"2024-03-01": "삼일절"}})

	if !store.IsHolidayTitle("삼일절") {
		t.Error(`IsHolidayTitle("삼일절") = false, want true`)
	}
	if store.IsHolidayTitle("Dentist") {
		t.Error(`IsHolidayTitle("Dentist") = true, want false`)
	}
}

func TestResetEvents(t *testing.T) {
	store := createTestStore(t)
	store.MaterializeHolidays(2024, fixedHolidays{2024: {
		"2024-01-01": "신정",
		"2024-03-01": "삼일절",
	}})
	store.AddEvent("2024-06-01", Event{Title: "User event"})
	store.AddEvent("2024-01-01", Event{Title: "Another user event"})

	if err := store.ResetEvents(); err != nil {
		t.Fatalf("ResetEvents() error = %v", err)
	}

	if events := store.EventsOn("2024-06-01"); len(events) != 0 {
		t.Errorf("user events survived reset: %+v", events)
	}
	jan := store.EventsOn("2024-01-01")
	if len(jan) != 1 || jan[0].Title != "신정" {
		t.Errorf("EventsOn(2024-01-01) = %+v, want exactly the holiday", jan)
	}
	mar := store.EventsOn("2024-03-01")
	if len(mar) != 1 || mar[0].Title != "삼일절" {
		t.Errorf("EventsOn(2024-03-01) = %+v, want exactly the holiday", mar)
	}
}

// =============================================================================
// Snapshots and misc
// =============================================================================

func TestSnapshot_IsolatedFromStore(t *testing.T) {
	store := createTestStore(t)
	store.AddEvent("2024-06-01", Event{Title: "Original"})

	snap := store.Snapshot()
	snap["2024-06-01"][0].Title = "Mutated"
	snap["2024-07-01"] = []Event{{Title: "Injected"}}

	events := store.EventsOn("2024-06-01")
	if events[0].Title != "Original" {
		t.Errorf("store observed snapshot mutation: %+v", events)
	}
	if len(store.EventsOn("2024-07-01")) != 0 {
		t.Error("store observed snapshot insertion")
	}
}

func TestStore_PermissionsArePrivate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions are not meaningful on Windows")
	}

	path := filepath.Join(t.TempDir(), "events.json")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := store.AddEvent("2024-06-01", Event{Title: "x"}); err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm()&0o077 != 0 {
		t.Fatalf("permissions = %o, want no group/other bits", info.Mode().Perm())
	}
}
