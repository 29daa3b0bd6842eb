package holiday

import (
	"fmt"
	"time"
)

// Korean resolves statutory public holidays of South Korea.
//
// Fixed-date holidays are computed for any year. Seollal, Buddha's
// Birthday, and Chuseok follow the Korean lunar calendar; their Gregorian
// dates come from a table covering 2020-2030. Years outside the table get
// the fixed-date holidays only. Substitute holidays (대체공휴일) are not
// modeled; the designation rules changed several times over the covered
// range and depend on cabinet decisions.
type Korean struct{}

// Lookup returns the holidays observed in the given year.
func (Korean) Lookup(year int) map[string]string {
	h := make(map[string]string, 16)

	h[ymd(year, 1, 1)] = "신정"
	h[ymd(year, 3, 1)] = "삼일절"
	h[ymd(year, 5, 5)] = "어린이날"
	h[ymd(year, 6, 6)] = "현충일"
	h[ymd(year, 8, 15)] = "광복절"
	h[ymd(year, 10, 3)] = "개천절"
	h[ymd(year, 10, 9)] = "한글날"
	h[ymd(year, 12, 25)] = "성탄절"

	// Lunar holidays win when they land on a fixed holiday (e.g. Buddha's
	// Birthday on Children's Day in 2025): one name per date, and the
	// lunar observance is the one the calendar highlights.
	for _, l := range lunarTable[year] {
		h[ymd(year, l.month, l.day)] = l.name
	}

	return h
}

type lunarDate struct {
	month int
	day   int
	name  string
}

// lunarTable holds the Gregorian dates of Korea's lunar-calendar holidays.
// Seollal and Chuseok are three-day observances (the eve, the day, and the
// day after).
var lunarTable = map[int][]lunarDate{
	2020: {
		{1, 24, "설날 연휴"}, {1, 25, "설날"}, {1, 26, "설날 연휴"},
		{4, 30, "부처님오신날"},
		{9, 30, "추석 연휴"}, {10, 1, "추석"}, {10, 2, "추석 연휴"},
	},
	2021: {
		{2, 11, "설날 연휴"}, {2, 12, "설날"}, {2, 13, "설날 연휴"},
		{5, 19, "부처님오신날"},
		{9, 20, "추석 연휴"}, {9, 21, "추석"}, {9, 22, "추석 연휴"},
	},
	2022: {
		{1, 31, "설날 연휴"}, {2, 1, "설날"}, {2, 2, "설날 연휴"},
		{5, 8, "부처님오신날"},
		{9, 9, "추석 연휴"}, {9, 10, "추석"}, {9, 11, "추석 연휴"},
	},
	2023: {
		{1, 21, "설날 연휴"}, {1, 22, "설날"}, {1, 23, "설날 연휴"},
		{5, 27, "부처님오신날"},
		{9, 28, "추석 연휴"}, {9, 29, "추석"}, {9, 30, "추석 연휴"},
	},
	2024: {
		{2, 9, "설날 연휴"}, {2, 10, "설날"}, {2, 11, "설날 연휴"},
		{5, 15, "부처님오신날"},
		{9, 16, "추석 연휴"}, {9, 17, "추석"}, {9, 18, "추석 연휴"},
	},
	2025: {
		{1, 28, "설날 연휴"}, {1, 29, "설날"}, {1, 30, "설날 연휴"},
		{5, 5, "부처님오신날"},
		{10, 5, "추석 연휴"}, {10, 6, "추석"}, {10, 7, "추석 연휴"},
	},
	2026: {
		{2, 16, "설날 연휴"}, {2, 17, "설날"}, {2, 18, "설날 연휴"},
		{5, 24, "부처님오신날"},
		{9, 24, "추석 연휴"}, {9, 25, "추석"}, {9, 26, "추석 연휴"},
	},
	2027: {
		{2, 5, "설날 연휴"}, {2, 6, "설날"}, {2, 7, "설날 연휴"},
		{5, 13, "부처님오신날"},
		{9, 14, "추석 연휴"}, {9, 15, "추석"}, {9, 16, "추석 연휴"},
	},
	2028: {
		{1, 25, "설날 연휴"}, {1, 26, "설날"}, {1, 27, "설날 연휴"},
		{5, 2, "부처님오신날"},
		{10, 2, "추석 연휴"}, {10, 3, "추석"}, {10, 4, "추석 연휴"},
	},
	2029: {
		{2, 12, "설날 연휴"}, {2, 13, "설날"}, {2, 14, "설날 연휴"},
		{5, 20, "부처님오신날"},
		{9, 21, "추석 연휴"}, {9, 22, "추석"}, {9, 23, "추석 연휴"},
	},
	2030: {
		{2, 2, "설날 연휴"}, {2, 3, "설날"}, {2, 4, "설날 연휴"},
		{5, 9, "부처님오신날"},
		{9, 11, "추석 연휴"}, {9, 12, "추석"}, {9, 13, "추석 연휴"},
	},
}

// ymd formats a civil date as YYYY-MM-DD. Noon UTC avoids any risk of the
// date shifting under formatting.
func ymd(year, month, day int) string {
	return time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// Covered reports whether the lunar table knows the given year.
func Covered(year int) bool {
	_, ok := lunarTable[year]
	return ok
}

// String names the source for display.
func (Korean) String() string { return fmt.Sprintf("Korean statutory holidays (lunar table %d-%d)", 2020, 2030) }
