package storage

import (
	"errors"
	"fmt"
)

// Validation errors returned by the store's mutating operations. The
// presentation layer is expected to validate first; the store returns
// these instead of silently dropping the operation so that a bug in a
// caller is visible.
var (
	// ErrEmptyTitle rejects an add or update whose title is empty after
	// trimming.
	ErrEmptyTitle = errors.New("event title is required")

	// ErrEventNotFound rejects an update or delete whose target event is
	// not present on the given date.
	ErrEventNotFound = errors.New("event not found")

	// ErrBadAlarmTime rejects an alarmed event without a valid HH:MM time.
	ErrBadAlarmTime = errors.New("alarm time must be HH:MM")

	// ErrBadAlarmType rejects an alarm type other than daily or once.
	ErrBadAlarmType = errors.New(`alarm type must be "daily" or "once"`)

	// ErrBadDate rejects a date key that is not YYYY-MM-DD.
	ErrBadDate = errors.New("date must be YYYY-MM-DD")
)

// CorruptError reports that the data file existed but could not be decoded.
// When Recovered is true the store was rebuilt from the .bak copy and is
// usable; the broken file was moved aside. Otherwise the file was left
// untouched and the store is empty.
type CorruptError struct {
	Path      string
	Recovered bool
	Err       error
}

func (e *CorruptError) Error() string {
	if e.Recovered {
		return fmt.Sprintf("data file %s is corrupt (recovered from %s.bak): %v", e.Path, e.Path, e.Err)
	}
	return fmt.Sprintf("data file %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }
