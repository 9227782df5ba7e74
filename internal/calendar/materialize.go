package calendar

import "time"

// legacyMonthDays is the month length the eager materializer has always
// used: a flat 30 days. Campaign spans are durationMonths × 30 days from the
// start date, start inclusive and end exclusive, so "1 month from Jan 1"
// covers Jan 1–30. Kept as-is for compatibility with rows materialized by
// the old system.
const legacyMonthDays = 30

// CampaignEnd returns the exclusive end date of a campaign starting at
// start and running durationMonths legacy months.
func CampaignEnd(start time.Time, durationMonths int) time.Time {
	return start.AddDate(0, 0, durationMonths*legacyMonthDays)
}

// CampaignDates enumerates every date in the campaign span whose weekday is
// named in the weekday set, in chronological order.
func CampaignDates(start time.Time, durationMonths int, weekdays []string) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end := CampaignEnd(start, durationMonths)

	var dates []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if WeekdayMatches(d, weekdays) {
			dates = append(dates, d)
		}
	}
	return dates
}
