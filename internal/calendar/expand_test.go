package calendar

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

func testRule(weekdays ...string) model.ScheduleRule {
	return model.ScheduleRule{
		ID:              uuid.MustParse("5f2e9c71-32a4-4e46-9a2e-0d6a0c6b1a11"),
		CourseID:        1,
		ClassID:         4,
		Weekdays:        weekdays,
		StartTime:       "18:00:00",
		DurationMinutes: 90,
		StartDate:       date(2024, time.January, 1),
		CourseName:      "Full Stack Web Development",
		CourseColor:     "#2563eb",
	}
}

func TestExpandProducesOneEntryPerWeekday(t *testing.T) {
	e := NewExpander()
	w := WeekOf(date(2024, time.January, 15))

	entries := e.Expand(testRule("Monday", "Wednesday"), w)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if entries[0].Date != "2024-01-15" {
		t.Errorf("Monday occurrence on %s, want 2024-01-15", entries[0].Date)
	}
	if entries[1].Date != "2024-01-17" {
		t.Errorf("Wednesday occurrence on %s, want 2024-01-17", entries[1].Date)
	}
	for _, entry := range entries {
		if entry.Kind != KindClass {
			t.Errorf("kind = %s, want class", entry.Kind)
		}
		if entry.Title != "Full Stack Web Development Class" {
			t.Errorf("title = %q", entry.Title)
		}
		if entry.StartTime != "18:00:00" || entry.EndTime != "19:30:00" {
			t.Errorf("times = %s-%s, want 18:00:00-19:30:00", entry.StartTime, entry.EndTime)
		}
		if entry.ClassID == nil || *entry.ClassID != 4 {
			t.Errorf("class id = %v, want 4", entry.ClassID)
		}
	}
}

func TestExpandSundayLandsAtWindowEnd(t *testing.T) {
	e := NewExpander()
	w := WeekOf(date(2024, time.January, 15))

	entries := e.Expand(testRule("Sunday"), w)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Date != "2024-01-21" {
		t.Errorf("Sunday occurrence on %s, want 2024-01-21", entries[0].Date)
	}
}

func TestExpandAllDatesInsideWindow(t *testing.T) {
	e := NewExpander()
	w := WeekOf(date(2024, time.January, 15))

	entries := e.Expand(testRule(WeekdayNames...), w)
	if len(entries) != 7 {
		t.Fatalf("got %d entries, want 7", len(entries))
	}
	for _, entry := range entries {
		d, err := time.Parse(DateLayout, entry.Date)
		if err != nil {
			t.Fatalf("bad date %q: %v", entry.Date, err)
		}
		if !w.Contains(d) {
			t.Errorf("occurrence %s outside window %s", entry.Date, w.Key())
		}
	}
}

func TestExpandIsDeterministic(t *testing.T) {
	e := NewExpander()
	w := WeekOf(date(2024, time.January, 15))
	rule := testRule("Tuesday", "Friday")

	first := e.Expand(rule, w)
	second := e.Expand(rule, w)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated expansion of the same window differs")
	}

	// A fresh expander (cold memo) must agree as well.
	third := NewExpander().Expand(rule, w)
	if !reflect.DeepEqual(first, third) {
		t.Error("memoized and cold expansion differ")
	}
}

func TestExpandMemoReturnsCopies(t *testing.T) {
	e := NewExpander()
	w := WeekOf(date(2024, time.January, 15))
	rule := testRule("Monday")

	first := e.Expand(rule, w)
	first[0].Title = "mutated"

	second := e.Expand(rule, w)
	if second[0].Title == "mutated" {
		t.Error("caller mutation leaked into the memo")
	}
}

func TestOccurrenceIDDisjointFromEventIDs(t *testing.T) {
	ruleID := uuid.New()
	id := OccurrenceID(ruleID, date(2024, time.January, 15))
	want := ruleID.String() + ":2024-01-15"
	if id != want {
		t.Errorf("OccurrenceID = %s, want %s", id, want)
	}
	if _, err := uuid.Parse(id); err == nil {
		t.Error("occurrence id must not parse as a bare UUID")
	}
}

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		clock   string
		minutes int
		want    string
	}{
		{"18:00:00", 90, "19:30:00"},
		{"09:15:00", 45, "10:00:00"},
		{"23:30:00", 60, "00:30:00"}, // wraps midnight
		{"bogus", 30, "bogus"},
	}
	for _, c := range cases {
		if got := AddMinutes(c.clock, c.minutes); got != c.want {
			t.Errorf("AddMinutes(%s, %d) = %s, want %s", c.clock, c.minutes, got, c.want)
		}
	}
}

func TestWeekdayMatches(t *testing.T) {
	monday := date(2024, time.January, 15)
	if !WeekdayMatches(monday, []string{"Monday", "Friday"}) {
		t.Error("Monday should match")
	}
	if WeekdayMatches(monday, []string{"Tuesday"}) {
		t.Error("Monday should not match Tuesday")
	}
	sunday := date(2024, time.January, 21)
	if !WeekdayMatches(sunday, []string{"Sunday"}) {
		t.Error("Sunday should match")
	}
}
