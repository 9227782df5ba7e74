package calendar

import (
	"testing"
	"time"
)

func TestMergeWeekAlwaysYieldsSevenDays(t *testing.T) {
	w := WeekOf(date(2024, time.January, 15))
	view := MergeWeek(w, nil, nil)

	if view.WeekStart != "2024-01-15" || view.WeekEnd != "2024-01-21" {
		t.Errorf("window = %s..%s, want 2024-01-15..2024-01-21", view.WeekStart, view.WeekEnd)
	}
	if len(view.Days) != 7 {
		t.Fatalf("got %d days, want 7", len(view.Days))
	}
	for i, day := range view.Days {
		want := w.Start().AddDate(0, 0, i).Format(DateLayout)
		if day.Date != want {
			t.Errorf("day %d dated %s, want %s", i, day.Date, want)
		}
		if day.Entries == nil {
			t.Errorf("day %s has nil entries, want empty slice", day.Date)
		}
	}
}

func TestMergeWeekBucketsAndSorts(t *testing.T) {
	w := WeekOf(date(2024, time.January, 15))
	occurrences := []Entry{
		{ID: "r1:2024-01-15", Kind: KindClass, Date: "2024-01-15", StartTime: "18:00:00"},
	}
	events := []Entry{
		{ID: "b-event", Kind: KindExtraClass, Date: "2024-01-15", StartTime: "09:00:00"},
		{ID: "a-event", Kind: KindGeneric, Date: "2024-01-15", StartTime: "09:00:00"},
		{ID: "holiday", Kind: KindHoliday, Date: "2024-01-18", StartTime: "00:00:00"},
	}

	view := MergeWeek(w, occurrences, events)

	monday := view.Days[0]
	if len(monday.Entries) != 3 {
		t.Fatalf("Monday has %d entries, want 3", len(monday.Entries))
	}
	// Start time ascending, id as tiebreaker.
	wantOrder := []string{"a-event", "b-event", "r1:2024-01-15"}
	for i, want := range wantOrder {
		if monday.Entries[i].ID != want {
			t.Errorf("Monday[%d] = %s, want %s", i, monday.Entries[i].ID, want)
		}
	}

	thursday := view.Days[3]
	if len(thursday.Entries) != 1 || thursday.Entries[0].ID != "holiday" {
		t.Errorf("Thursday entries = %+v, want the holiday", thursday.Entries)
	}
}

func TestMergeWeekDropsEntriesOutsideWindow(t *testing.T) {
	w := WeekOf(date(2024, time.January, 15))
	events := []Entry{
		{ID: "before", Date: "2024-01-14", StartTime: "10:00:00"},
		{ID: "after", Date: "2024-01-22", StartTime: "10:00:00"},
		{ID: "inside", Date: "2024-01-21", StartTime: "10:00:00"},
	}

	view := MergeWeek(w, nil, events)

	total := 0
	for _, day := range view.Days {
		total += len(day.Entries)
	}
	if total != 1 {
		t.Fatalf("got %d entries across the week, want 1", total)
	}
	if view.Days[6].Entries[0].ID != "inside" {
		t.Errorf("surviving entry = %s, want inside", view.Days[6].Entries[0].ID)
	}
}
