package holiday

import "testing"

func TestKorean_FixedHolidays(t *testing.T) {
	h := Korean{}.Lookup(2024)

	fixed := map[string]string{
		"2024-01-01": "신정",
		"2024-03-01": "삼일절",
		"2024-05-05": "어린이날",
		"2024-06-06": "현충일",
		"2024-08-15": "광복절",
		"2024-10-03": "개천절",
		"2024-10-09": "한글날",
		"2024-12-25": "성탄절",
	}
	for date, name := range fixed {
		if h[date] != name {
			t.Errorf("Lookup(2024)[%s] = %q, want %q", date, h[date], name)
		}
	}
}

func TestKorean_LunarHolidays(t *testing.T) {
	tests := []struct {
		year int
		date string
		name string
	}{
		{2024, "2024-02-10", "설날"},
		{2024, "2024-02-09", "설날 연휴"},
		{2024, "2024-02-11", "설날 연휴"},
		{2024, "2024-05-15", "부처님오신날"},
		{2024, "2024-09-17", "추석"},
		{2022, "2022-02-01", "설날"},
		{2025, "2025-10-06", "추석"},
		{2030, "2030-02-03", "설날"},
	}

	for _, tt := range tests {
		h := Korean{}.Lookup(tt.year)
		if h[tt.date] != tt.name {
			t.Errorf("Lookup(%d)[%s] = %q, want %q", tt.year, tt.date, h[tt.date], tt.name)
		}
	}
}

// Buddha's Birthday falls on Children's Day in 2025; the lunar observance
// takes the date.
func TestKorean_LunarWinsOverFixed(t *testing.T) {
	h := Korean{}.Lookup(2025)
	if h["2025-05-05"] != "부처님오신날" {
		t.Errorf(`Lookup(2025)["2025-05-05"] = %q, want "부처님오신날"`, h["2025-05-05"])
	}
}

func TestKorean_YearOutsideLunarTable(t *testing.T) {
	h := Korean{}.Lookup(1999)

	if Covered(1999) {
		t.Fatal("Covered(1999) = true, want false")
	}
	if h["1999-01-01"] != "신정" {
		t.Errorf("fixed holidays missing outside lunar coverage: %v", h)
	}
	for date, name := range h {
		if name == "설날" || name == "추석" {
			t.Errorf("unexpected lunar holiday %s=%s outside table coverage", date, name)
		}
	}
}

func TestKorean_AllDatesParse(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for date := range (Korean{}.Lookup(year)) {
			if len(date) != 10 || date[4] != '-' || date[7] != '-' {
				t.Errorf("Lookup(%d) produced malformed date key %q", year, date)
			}
		}
	}
}

func TestFunc_AdaptsFunction(t *testing.T) {
	src := Func(func(year int) map[string]string {
		return map[string]string{"2024-07-04": "Test Day"}
	})
	if got := src.Lookup(2024)["2024-07-04"]; got != "Test Day" {
		t.Errorf("Func.Lookup() = %q, want %q", got, "Test Day")
	}
}
