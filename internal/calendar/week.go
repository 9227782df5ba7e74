package calendar

import "time"

const (
	// DateLayout is the canonical date key format used across the calendar.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical time-of-day format. All entry times are
	// normalized to this zero-padded form so lexicographic order equals
	// chronological order.
	TimeLayout = "15:04:05"
)

// Week is an immutable Monday-anchored window of 7 consecutive dates.
// It is a value: navigation produces new Weeks, never mutates one.
type Week struct {
	start time.Time
}

// WeekOf returns the week containing t, anchored on Monday at midnight UTC.
func WeekOf(t time.Time) Week {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	// time.Weekday has Sunday=0; back up to the preceding Monday.
	offset := (int(d.Weekday()) + 6) % 7
	return Week{start: d.AddDate(0, 0, -offset)}
}

// ParseWeek parses a YYYY-MM-DD string and returns the week containing it.
func ParseWeek(s string) (Week, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Week{}, err
	}
	return WeekOf(t), nil
}

// Start returns the Monday of the week (midnight UTC).
func (w Week) Start() time.Time { return w.start }

// End returns the Sunday of the week (midnight UTC).
func (w Week) End() time.Time { return w.start.AddDate(0, 0, 6) }

// Next returns the following week.
func (w Week) Next() Week { return Week{start: w.start.AddDate(0, 0, 7)} }

// Previous returns the preceding week.
func (w Week) Previous() Week { return Week{start: w.start.AddDate(0, 0, -7)} }

// Dates returns the 7 dates of the week, Monday first.
func (w Week) Dates() [7]time.Time {
	var dates [7]time.Time
	for i := 0; i < 7; i++ {
		dates[i] = w.start.AddDate(0, 0, i)
	}
	return dates
}

// Contains reports whether the date part of t lies inside the window.
func (w Week) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(w.start) && !d.After(w.End())
}

// Key returns the canonical YYYY-MM-DD key of the week's Monday.
func (w Week) Key() string { return w.start.Format(DateLayout) }
