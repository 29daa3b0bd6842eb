package reports

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatMonthJSON formats a month report as indented JSON. Non-ASCII
// text stays verbatim.
func FormatMonthJSON(report *MonthReport) ([]byte, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// FormatMonthMarkdown formats a month report as a Markdown document.
func FormatMonthMarkdown(report *MonthReport) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s %d\n\n", report.Month, report.Year)
	fmt.Fprintf(&b, "%d events, %d with alarms, %d holidays\n",
		report.Stats.TotalEvents, report.Stats.AlarmedEvents, report.Stats.Holidays)
	if report.Stats.BusiestDay != "" {
		fmt.Fprintf(&b, "Busiest day: %s\n", report.Stats.BusiestDay)
	}

	for _, day := range report.Days {
		fmt.Fprintf(&b, "\n## %s (%s)", day.Date, day.Weekday)
		if day.Holiday != "" {
			fmt.Fprintf(&b, " - %s", day.Holiday)
		}
		b.WriteString("\n")

		for _, ev := range day.Events {
			fmt.Fprintf(&b, "\n- %s", ev.Title)
			if ev.AlarmTime != "" {
				fmt.Fprintf(&b, " (alarm %s, %s)", ev.AlarmTime, ev.AlarmType)
			}
			b.WriteString("\n")
			if ev.Description != "" {
				for _, line := range strings.Split(ev.Description, "\n") {
					fmt.Fprintf(&b, "  %s\n", line)
				}
			}
		}
	}

	return []byte(b.String())
}
