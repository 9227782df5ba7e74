package calendar

import (
	"testing"
	"time"
)

func TestCampaignEnd(t *testing.T) {
	start := date(2024, time.January, 1)
	if got := CampaignEnd(start, 1); !got.Equal(date(2024, time.January, 31)) {
		t.Errorf("1 month end = %s, want 2024-01-31", got.Format(DateLayout))
	}
	if got := CampaignEnd(start, 6); !got.Equal(date(2024, time.June, 29)) {
		t.Errorf("6 month end = %s, want 2024-06-29", got.Format(DateLayout))
	}
}

// A one month campaign from Monday Jan 1 2024 on Monday and Wednesday covers
// Jan 1 through Jan 30 and yields exactly 9 session dates: Jan 31 falls
// outside the 30 day span.
func TestCampaignDatesOneMonthMonWed(t *testing.T) {
	dates := CampaignDates(date(2024, time.January, 1), 1, []string{"Monday", "Wednesday"})

	if len(dates) != 9 {
		t.Fatalf("got %d dates, want 9", len(dates))
	}
	want := []string{
		"2024-01-01", "2024-01-03",
		"2024-01-08", "2024-01-10",
		"2024-01-15", "2024-01-17",
		"2024-01-22", "2024-01-24",
		"2024-01-29",
	}
	for i, d := range dates {
		if got := d.Format(DateLayout); got != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestCampaignDatesStartDateInclusive(t *testing.T) {
	// Start date itself matches the weekday set.
	dates := CampaignDates(date(2024, time.January, 1), 1, []string{"Monday"})
	if len(dates) == 0 || !dates[0].Equal(date(2024, time.January, 1)) {
		t.Errorf("first date = %v, want the start date itself", dates)
	}
}

func TestCampaignDatesNormalizesStartTime(t *testing.T) {
	noon := time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC)
	dates := CampaignDates(noon, 1, []string{"Monday"})
	for _, d := range dates {
		if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
			t.Errorf("date %v carries a time of day", d)
		}
	}
}

func TestCampaignDatesEmptyWeekdaySet(t *testing.T) {
	if dates := CampaignDates(date(2024, time.January, 1), 6, nil); len(dates) != 0 {
		t.Errorf("got %d dates for an empty weekday set, want 0", len(dates))
	}
}

func TestCampaignDatesSevenDayWeek(t *testing.T) {
	// All seven weekdays selected enumerates every day of the span.
	dates := CampaignDates(date(2024, time.January, 1), 1, WeekdayNames)
	if len(dates) != 30 {
		t.Errorf("got %d dates, want 30", len(dates))
	}
}
