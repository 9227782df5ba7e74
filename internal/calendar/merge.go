package calendar

import "sort"

// Day is one dated bucket of the merged week. Entries is always non-nil so
// an empty day serializes as [] rather than null.
type Day struct {
	Date    string  `json:"date"`
	Entries []Entry `json:"entries"`
}

// WeekView is the merged, grouped, sorted result for one window: exactly 7
// days, Monday first, every date present even when empty.
type WeekView struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
	Days      []Day  `json:"days"`
}

// MergeWeek unions rule occurrences and persisted events into one WeekView.
// Entries are bucketed by their date key; anything dated outside the window
// (e.g. the tail of an event that merely overlaps it) is dropped. Within a
// day entries sort ascending by start time — the HH:MM:SS normalization makes
// plain string comparison chronological — with the id as tiebreaker so the
// order is stable across refetches.
func MergeWeek(w Week, occurrences, events []Entry) *WeekView {
	buckets := make(map[string][]Entry, 7)
	dates := w.Dates()
	for _, d := range dates {
		buckets[d.Format(DateLayout)] = []Entry{}
	}

	for _, entry := range occurrences {
		if day, ok := buckets[entry.Date]; ok {
			buckets[entry.Date] = append(day, entry)
		}
	}
	for _, entry := range events {
		if day, ok := buckets[entry.Date]; ok {
			buckets[entry.Date] = append(day, entry)
		}
	}

	view := &WeekView{
		WeekStart: w.Key(),
		WeekEnd:   w.End().Format(DateLayout),
		Days:      make([]Day, 0, 7),
	}
	for _, d := range dates {
		key := d.Format(DateLayout)
		entries := buckets[key]
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].StartTime != entries[j].StartTime {
				return entries[i].StartTime < entries[j].StartTime
			}
			return entries[i].ID < entries[j].ID
		})
		view.Days = append(view.Days, Day{Date: key, Entries: entries})
	}
	return view
}
