package reports

import (
	"sort"
	"strings"
	"time"

	"dal/internal/storage"
)

// Generator creates reports from store data.
type Generator struct {
	store *storage.Store
}

// NewGenerator creates a new report generator.
func NewGenerator(store *storage.Store) *Generator {
	return &Generator{store: store}
}

// GenerateMonth generates a report for the given month. Only days with
// events or a holiday contribute a DayEntry; the stats always cover the
// whole month.
func (g *Generator) GenerateMonth(year int, month time.Month) *MonthReport {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	events := g.store.Snapshot()
	holidays := g.store.Holidays()

	dates := make(map[string]struct{})
	for date := range events {
		if strings.HasPrefix(date, prefix) {
			dates[date] = struct{}{}
		}
	}
	for date := range holidays {
		if strings.HasPrefix(date, prefix) {
			dates[date] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(dates))
	for date := range dates {
		sorted = append(sorted, date)
	}
	sort.Strings(sorted)

	report := &MonthReport{
		Year:        year,
		Month:       month,
		Days:        make([]DayEntry, 0, len(sorted)),
		GeneratedAt: time.Now(),
	}

	busiest := ""
	busiestCount := 0
	for _, date := range sorted {
		entry := DayEntry{
			Date:    date,
			Holiday: holidays[date],
		}
		if day, err := time.Parse(storage.DateLayout, date); err == nil {
			entry.Weekday = day.Format("Mon")
		}

		for _, ev := range events[date] {
			ee := EventEntry{
				Title:       ev.Title,
				Description: ev.Description,
			}
			if ev.Alarm {
				ee.AlarmTime = ev.AlarmTimeValue()
				ee.AlarmType = string(ev.AlarmTypeValue())
				report.Stats.AlarmedEvents++
			}
			entry.Events = append(entry.Events, ee)
		}

		report.Stats.TotalEvents += len(entry.Events)
		if entry.Holiday != "" {
			report.Stats.Holidays++
		}
		if len(entry.Events) > busiestCount {
			busiest = date
			busiestCount = len(entry.Events)
		}

		report.Days = append(report.Days, entry)
	}
	report.Stats.BusiestDay = busiest

	return report
}
