package calendar

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// weekdayIndex carries the legacy weekday numbering the scheduler was built
// around: Monday=1 .. Saturday=6, Sunday=0. The Monday-based window offset is
// then (idx-1+7) mod 7, which puts every produced date inside the window.
var weekdayIndex = map[string]int{
	"Sunday":    0,
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
}

// WeekdayNames lists the accepted weekday names for schedule rules.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsWeekdayName reports whether s is a valid schedule-rule weekday name.
func IsWeekdayName(s string) bool {
	_, ok := weekdayIndex[s]
	return ok
}

// WeekdayMatches reports whether the date's weekday is named in the set.
func WeekdayMatches(date time.Time, weekdays []string) bool {
	for _, name := range weekdays {
		if weekdayIndex[name] == int(date.Weekday()) {
			return true
		}
	}
	return false
}

// OccurrenceID derives the stable id of a (rule, date) occurrence. The id is
// deterministic so repeated expansions of the same window agree, and the
// ":date" suffix keeps it disjoint from the event UUID space.
func OccurrenceID(ruleID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s:%s", ruleID, date.Format(DateLayout))
}

// Expander projects schedule rules onto a concrete week window. Expansion is
// pure: the same (rule, window) pair always yields identical entries, which
// also makes the memo below safe. The memo only short-circuits repeated calls
// for the same window; it holds no cross-window state.
type Expander struct {
	mu   sync.Mutex
	memo map[string][]Entry
}

// NewExpander creates an Expander with an empty memo.
func NewExpander() *Expander {
	return &Expander{memo: make(map[string][]Entry)}
}

// memoLimit bounds the memo map; past it the memo is reset wholesale.
const memoLimit = 512

// Expand produces one occurrence per (rule, weekday) for the given window.
// Rules with an invalid class reference must be filtered before this point;
// the expander trusts its input.
func (e *Expander) Expand(rule model.ScheduleRule, w Week) []Entry {
	key := rule.ID.String() + "|" + w.Key()

	e.mu.Lock()
	if cached, ok := e.memo[key]; ok {
		e.mu.Unlock()
		return cloneEntries(cached)
	}
	e.mu.Unlock()

	entries := expandRule(rule, w)

	e.mu.Lock()
	if len(e.memo) >= memoLimit {
		e.memo = make(map[string][]Entry)
	}
	e.memo[key] = entries
	e.mu.Unlock()

	return cloneEntries(entries)
}

// ExpandAll expands every rule onto the window and concatenates the results.
func (e *Expander) ExpandAll(rules []model.ScheduleRule, w Week) []Entry {
	var entries []Entry
	for _, rule := range rules {
		entries = append(entries, e.Expand(rule, w)...)
	}
	return entries
}

func expandRule(rule model.ScheduleRule, w Week) []Entry {
	entries := make([]Entry, 0, len(rule.Weekdays))
	classID := rule.ClassID

	for _, name := range rule.Weekdays {
		idx, ok := weekdayIndex[name]
		if !ok {
			continue
		}
		// Monday-based offset into the window: Monday→0 .. Sunday→6.
		offset := (idx - 1 + 7) % 7
		date := w.Start().AddDate(0, 0, offset)

		entries = append(entries, Entry{
			ID:        OccurrenceID(rule.ID, date),
			Kind:      KindClass,
			Title:     rule.CourseName + " Class",
			Date:      date.Format(DateLayout),
			StartTime: rule.StartTime,
			EndTime:   AddMinutes(rule.StartTime, rule.DurationMinutes),
			Color:     rule.CourseColor,
			CourseID:  rule.CourseID,
			ClassID:   &classID,
		})
	}
	return entries
}

// AddMinutes adds a duration to an HH:MM:SS time-of-day string, wrapping at
// midnight. Malformed input is returned unchanged.
func AddMinutes(clock string, minutes int) string {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return clock
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format(TimeLayout)
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
