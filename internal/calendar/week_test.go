package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOfAnchorsOnMonday(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{date(2024, time.January, 15), "2024-01-15"}, // Monday stays
		{date(2024, time.January, 17), "2024-01-15"}, // Wednesday backs up
		{date(2024, time.January, 21), "2024-01-15"}, // Sunday belongs to preceding Monday
		{date(2024, time.January, 1), "2024-01-01"},  // New Year Monday
		{date(2024, time.March, 3), "2024-02-26"},    // month boundary
		{date(2024, time.December, 31), "2024-12-30"},
	}
	for _, c := range cases {
		if got := WeekOf(c.in).Key(); got != c.want {
			t.Errorf("WeekOf(%s) = %s, want %s", c.in.Format(DateLayout), got, c.want)
		}
	}
}

func TestWeekOfIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2024, time.January, 21, 23, 59, 59, 0, time.UTC)
	if got := WeekOf(late).Key(); got != "2024-01-15" {
		t.Errorf("late Sunday resolved to %s, want 2024-01-15", got)
	}
}

func TestWeekNavigationIsSymmetric(t *testing.T) {
	w := WeekOf(date(2024, time.June, 12))
	if got := w.Next().Previous(); got != w {
		t.Errorf("Next().Previous() = %v, want %v", got.Key(), w.Key())
	}
	if got := w.Previous().Next(); got != w {
		t.Errorf("Previous().Next() = %v, want %v", got.Key(), w.Key())
	}
}

func TestWeekDates(t *testing.T) {
	w := WeekOf(date(2024, time.January, 17))
	dates := w.Dates()
	if dates[0] != w.Start() {
		t.Fatalf("first date %v, want %v", dates[0], w.Start())
	}
	for i := 1; i < 7; i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("dates not consecutive at index %d", i)
		}
	}
	if dates[6] != w.End() {
		t.Errorf("last date %v, want %v", dates[6], w.End())
	}
}

func TestWeekContains(t *testing.T) {
	w := WeekOf(date(2024, time.January, 15))
	if !w.Contains(date(2024, time.January, 15)) {
		t.Error("week should contain its Monday")
	}
	if !w.Contains(time.Date(2024, time.January, 21, 18, 30, 0, 0, time.UTC)) {
		t.Error("week should contain its Sunday regardless of time")
	}
	if w.Contains(date(2024, time.January, 22)) {
		t.Error("week should not contain the next Monday")
	}
	if w.Contains(date(2024, time.January, 14)) {
		t.Error("week should not contain the preceding Sunday")
	}
}

func TestParseWeek(t *testing.T) {
	w, err := ParseWeek("2024-01-18")
	if err != nil {
		t.Fatalf("ParseWeek: %v", err)
	}
	if w.Key() != "2024-01-15" {
		t.Errorf("ParseWeek resolved to %s, want 2024-01-15", w.Key())
	}

	if _, err := ParseWeek("18-01-2024"); err == nil {
		t.Error("expected error for malformed date")
	}
}
