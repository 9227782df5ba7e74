package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

func TestEntryFromEvent(t *testing.T) {
	courseID := 2
	classID := 5
	ev := model.Event{
		ID:          uuid.MustParse("0b6c7e3a-8f7d-4c40-9a3e-111111111111"),
		Type:        model.EventExtraClass,
		Title:       "Doubt Clearing Session",
		Description: "Bring your questions.",
		StartAt:     time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC),
		EndAt:       time.Date(2024, time.January, 20, 11, 30, 0, 0, time.UTC),
		CourseID:    &courseID,
		ClassID:     &classID,
	}

	entry := EntryFromEvent(ev)
	if entry.ID != ev.ID.String() {
		t.Errorf("id = %s", entry.ID)
	}
	if entry.Kind != KindExtraClass {
		t.Errorf("kind = %s, want extra_class", entry.Kind)
	}
	if entry.Date != "2024-01-20" {
		t.Errorf("date = %s, want 2024-01-20", entry.Date)
	}
	if entry.StartTime != "10:00:00" || entry.EndTime != "11:30:00" {
		t.Errorf("times = %s-%s", entry.StartTime, entry.EndTime)
	}
	if entry.CourseID != 2 || entry.ClassID == nil || *entry.ClassID != 5 {
		t.Errorf("scope = course %d class %v", entry.CourseID, entry.ClassID)
	}
}

func TestEntryFromEventHolidayRendersFullDay(t *testing.T) {
	midnight := time.Date(2024, time.January, 26, 0, 0, 0, 0, time.UTC)
	ev := model.Event{
		ID:      uuid.New(),
		Type:    model.EventHoliday,
		Title:   "Republic Day",
		StartAt: midnight,
		EndAt:   midnight, // holidays are stored zero-width
	}

	entry := EntryFromEvent(ev)
	if entry.StartTime != "00:00:00" || entry.EndTime != "23:59:59" {
		t.Errorf("holiday times = %s-%s, want full day", entry.StartTime, entry.EndTime)
	}
	if entry.Date != "2024-01-26" {
		t.Errorf("holiday date = %s", entry.Date)
	}
}

func TestEntryFromEventNormalizesToUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	ev := model.Event{
		ID:      uuid.New(),
		Type:    model.EventGeneric,
		Title:   "Orientation",
		StartAt: time.Date(2024, time.January, 20, 2, 0, 0, 0, ist),
		EndAt:   time.Date(2024, time.January, 20, 3, 0, 0, 0, ist),
	}

	entry := EntryFromEvent(ev)
	// 02:00 IST is 20:30 UTC the previous day.
	if entry.Date != "2024-01-19" || entry.StartTime != "20:30:00" {
		t.Errorf("got %s %s, want 2024-01-19 20:30:00", entry.Date, entry.StartTime)
	}
}
