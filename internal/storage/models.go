package storage

import "encoding/json"

// DateLayout is the wire format for date keys in the data file and the
// date strings used throughout the app.
const DateLayout = "2006-01-02"

// ClockLayout is the wire format for alarm times (24-hour, minute
// granularity).
const ClockLayout = "15:04"

// AlarmType selects how often an alarm fires.
type AlarmType string

const (
	// AlarmDaily fires every day at the event's alarm time.
	AlarmDaily AlarmType = "daily"
	// AlarmOnce fires only on the event's own date.
	AlarmOnce AlarmType = "once"
)

// Event is a single scheduled item on a calendar date.
type Event struct {
	// ID identifies the event within a session. It is assigned when the
	// event is created or loaded and never written to disk, keeping the
	// file format compatible with older releases.
	ID string `json:"-"`

	Title       string     `json:"title"`
	Description string     `json:"description"`
	Alarm       bool       `json:"alarm"`
	AlarmTime   *string    `json:"alarm_time"`
	AlarmType   *AlarmType `json:"alarm_type"`

	// Debug is a legacy flag carried through for file compatibility.
	// It no longer affects alarm timing.
	Debug bool `json:"debug"`
}

// UnmarshalJSON accepts both the current object form and the legacy form
// where an event was stored as its bare title string.
func (e *Event) UnmarshalJSON(data []byte) error {
	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*e = Event{Title: title}
		return nil
	}

	type plain Event
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Event(p)
	return nil
}

// Same reports whether two events carry identical persisted fields.
// The session ID is ignored: update and delete target the first structural
// match, which is how older releases identified events.
func (e Event) Same(o Event) bool {
	return e.Title == o.Title &&
		e.Description == o.Description &&
		e.Alarm == o.Alarm &&
		strPtrEqual(e.AlarmTime, o.AlarmTime) &&
		typePtrEqual(e.AlarmType, o.AlarmType) &&
		e.Debug == o.Debug
}

// AlarmTimeValue returns the alarm time or "" when none is set.
func (e Event) AlarmTimeValue() string {
	if e.AlarmTime == nil {
		return ""
	}
	return *e.AlarmTime
}

// AlarmTypeValue returns the alarm type, defaulting to AlarmOnce when the
// field is absent (older files omitted it for alarmed events).
func (e Event) AlarmTypeValue() AlarmType {
	if e.AlarmType == nil {
		return AlarmOnce
	}
	return *e.AlarmType
}

// storeFile is the on-disk shape of the data file.
type storeFile struct {
	Events   map[string][]Event `json:"events"`
	Holidays map[string]string  `json:"holidays"`
}

func strPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func typePtrEqual(a, b *AlarmType) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
