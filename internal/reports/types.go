// Package reports provides month report generation for the calendar.
// Reports aggregate events and holidays for export and review.
package reports

import "time"

// MonthReport contains aggregated data for a calendar month.
type MonthReport struct {
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	Days        []DayEntry `json:"days"`
	Stats       MonthStats `json:"stats"`
	GeneratedAt time.Time  `json:"generated_at"`
}

// DayEntry describes a single day that has anything to report. Days
// without events or a holiday are omitted.
type DayEntry struct {
	Date    string       `json:"date"`
	Weekday string       `json:"weekday"`
	Holiday string       `json:"holiday,omitempty"`
	Events  []EventEntry `json:"events"`
}

// EventEntry is the report view of one event.
type EventEntry struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AlarmTime   string `json:"alarm_time,omitempty"`
	AlarmType   string `json:"alarm_type,omitempty"`
}

// MonthStats contains summary statistics for a month.
type MonthStats struct {
	TotalEvents   int    `json:"total_events"`
	AlarmedEvents int    `json:"alarmed_events"`
	Holidays      int    `json:"holidays"`
	BusiestDay    string `json:"busiest_day,omitempty"`
}
