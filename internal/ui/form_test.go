package ui

import (
	"strings"
	"testing"

	"dal/internal/storage"
)

func typeText(f *EventForm, text string) {
	for _, r := range text {
		f.Update(keyMsg(string(r)))
	}
}

func TestForm_AddDraft(t *testing.T) {
	setupTest(t)
	f := NewEventForm(createTestStyles(), nil, "2024-03-15")

	typeText(f, "Team lunch")

	draft := f.Draft()
	if draft.Title != "Team lunch" {
		t.Errorf("Title = %q, want %q", draft.Title, "Team lunch")
	}
	if draft.Alarm || draft.AlarmTime != nil || draft.AlarmType != nil {
		t.Errorf("fresh draft should have no alarm: %+v", draft)
	}
	if f.Editing() != nil {
		t.Error("add form should not report an edited event")
	}
}

func TestForm_AlarmFields(t *testing.T) {
	setupTest(t)
	f := NewEventForm(createTestStyles(), nil, "2024-03-15")

	typeText(f, "Wake up")
	f.Update(keyMsg("tab")) // description
	f.Update(keyMsg("tab")) // alarm
	f.Update(keyMsg(" "))   // toggle on
	f.Update(keyMsg("tab")) // repeat
	f.Update(keyMsg(" "))   // once -> daily
	f.Update(keyMsg("tab")) // time
	typeText(f, "07:30")

	draft := f.Draft()
	if !draft.Alarm {
		t.Fatal("alarm should be enabled")
	}
	if draft.AlarmTime == nil || *draft.AlarmTime != "07:30" {
		t.Errorf("AlarmTime = %v, want 07:30", draft.AlarmTime)
	}
	if draft.AlarmType == nil || *draft.AlarmType != storage.AlarmDaily {
		t.Errorf("AlarmType = %v, want daily", draft.AlarmType)
	}
}

func TestForm_AlarmFieldsSkippedWhenOff(t *testing.T) {
	setupTest(t)
	f := NewEventForm(createTestStyles(), nil, "2024-03-15")

	// With the alarm off, tab cycles title -> description -> alarm -> title.
	f.Update(keyMsg("tab"))
	f.Update(keyMsg("tab"))
	if f.field != fieldAlarm {
		t.Fatalf("field = %v, want fieldAlarm", f.field)
	}
	f.Update(keyMsg("tab"))
	if f.field != fieldTitle {
		t.Errorf("field = %v, want fieldTitle (alarm details skipped)", f.field)
	}
}

func TestForm_EditPrefills(t *testing.T) {
	setupTest(t)
	ev := storage.Event{
		Title:       "Dentist",
		Description: "Bring card",
		Alarm:       true,
		AlarmTime:   strPtr("14:00"),
		AlarmType:   typePtr(storage.AlarmOnce),
	}
	f := NewEditForm(createTestStyles(), nil, "2024-03-15", ev)

	if f.Editing() == nil || !f.Editing().Same(ev) {
		t.Fatal("edit form should carry the original event")
	}

	draft := f.Draft()
	if !draft.Same(ev) {
		t.Errorf("unedited draft = %+v, want a copy of the original", draft)
	}
}

func TestForm_SubmitAndCancel(t *testing.T) {
	setupTest(t)
	f := NewEventForm(createTestStyles(), nil, "2024-03-15")

	if result, _ := f.Update(keyMsg("enter")); result != formSubmit {
		t.Errorf("enter = %v, want formSubmit", result)
	}
	if result, _ := f.Update(keyMsg("esc")); result != formCancel {
		t.Errorf("esc = %v, want formCancel", result)
	}
	if result, _ := f.Update(keyMsg("x")); result != formContinue {
		t.Errorf("plain rune = %v, want formContinue", result)
	}
}

func TestForm_ViewShowsFields(t *testing.T) {
	setupTest(t)
	f := NewEventForm(createTestStyles(), nil, "2024-03-15")

	view := f.View()
	for _, want := range []string{"Add event", "2024-03-15", "Title", "Description", "Alarm"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Repeat") {
		t.Error("alarm details should be hidden while the alarm is off")
	}

	// Toggle the alarm on and check the extra fields appear.
	f.Update(keyMsg("tab"))
	f.Update(keyMsg("tab"))
	f.Update(keyMsg(" "))
	view = f.View()
	if !strings.Contains(view, "Repeat") || !strings.Contains(view, "Time") {
		t.Error("alarm details should be visible while the alarm is on")
	}

	ev := storage.Event{Title: "Dentist"}
	edit := NewEditForm(createTestStyles(), nil, "2024-03-15", ev)
	if !strings.Contains(edit.View(), "Edit event") {
		t.Error("edit form should render its heading")
	}
}
