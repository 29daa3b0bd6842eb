// Package alarm scans the event store once per minute and fires desktop
// notifications for events whose alarm is due.
package alarm

import (
	"context"
	"fmt"
	"time"

	"dal/internal/notify"
	"dal/internal/storage"

	"github.com/robfig/cron/v3"
)

// notificationTitle heads every alarm notification; the event's own title
// goes in the body.
const notificationTitle = "Reminder"

// EventSource provides a consistent snapshot of scheduled events, keyed by
// YYYY-MM-DD date. *storage.Store satisfies it.
type EventSource interface {
	Snapshot() map[string][]storage.Event
}

// Checker matches alarms against the current minute and dispatches
// notifications. One Checker runs per process, started from main and
// cancelled through its context; tests call Check directly with a fixed
// clock instead of waiting on the schedule.
type Checker struct {
	source   EventSource
	notifier notify.Notifier
	sound    bool
	now      func() time.Time
}

// New creates a checker over the given source and notifier.
func New(source EventSource, notifier notify.Notifier) *Checker {
	return &Checker{
		source:   source,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetSound makes notifications play the platform default sound.
func (c *Checker) SetSound(sound bool) { c.sound = sound }

// SetNowFunc overrides the checker's clock. Passing nil resets it to
// time.Now.
func (c *Checker) SetNowFunc(now func() time.Time) {
	if now == nil {
		c.now = time.Now
		return
	}
	c.now = now
}

// Run fires Check on every minute boundary until ctx is cancelled. Minute
// boundaries rather than a free-running 60s sleep keep the comparison
// aligned with the HH:MM granularity of alarm times: each due alarm is
// seen exactly once per matching minute.
func (c *Checker) Run(ctx context.Context) error {
	sched := cron.New()
	if _, err := sched.AddFunc("* * * * *", func() {
		c.Check(c.now())
	}); err != nil {
		return fmt.Errorf("schedule alarm check: %w", err)
	}

	sched.Start()
	<-ctx.Done()
	<-sched.Stop().Done()
	return ctx.Err()
}

// Check performs a single scan at the given instant and returns how many
// notifications were dispatched. Notification failures are ignored: a
// broken notifier must never stop the loop.
//
// A daily alarm matches on time alone. A once alarm additionally requires
// the event's date to be today; it is not disabled after firing, so it
// would fire again if the same minute were scanned twice, and never fires
// on any later date.
func (c *Checker) Check(now time.Time) int {
	today := now.Format(storage.DateLayout)
	minute := now.Format(storage.ClockLayout)

	fired := 0
	for date, events := range c.source.Snapshot() {
		for _, ev := range events {
			if !ev.Alarm || ev.AlarmTimeValue() != minute {
				continue
			}
			switch ev.AlarmTypeValue() {
			case storage.AlarmDaily:
				c.send(fmt.Sprintf("It's time for %q.", ev.Title))
				fired++
			case storage.AlarmOnce:
				if date != today {
					continue
				}
				body := fmt.Sprintf("It's time for %q.", ev.Title)
				if ev.Description != "" {
					body += "\n" + ev.Description
				}
				c.send(body)
				fired++
			}
		}
	}
	return fired
}

func (c *Checker) send(body string) {
	if c.sound {
		_ = c.notifier.SendWithSound(notificationTitle, body)
		return
	}
	_ = c.notifier.Send(notificationTitle, body)
}
