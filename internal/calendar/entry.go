package calendar

import (
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// Kind discriminates the calendar entry variants. Expanded rule occurrences
// are KindClass; everything else comes from the persisted event store.
type Kind string

const (
	KindClass      Kind = "class"
	KindExtraClass Kind = "extra_class"
	KindHoliday    Kind = "holiday"
	KindGeneric    Kind = "generic"
)

// Entry is the single shape both sources merge into: a persisted Event and an
// ephemeral rule occurrence are indistinguishable to the view except by Kind.
// Entry ids never collide across sources: events carry a bare UUID, while
// occurrences carry the derived "<rule-uuid>:<date>" form.
type Entry struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`       // YYYY-MM-DD
	StartTime   string `json:"start_time"` // HH:MM:SS
	EndTime     string `json:"end_time"`   // HH:MM:SS
	Color       string `json:"color,omitempty"`
	CourseID    int    `json:"course_id,omitempty"`
	ClassID     *int   `json:"class_id,omitempty"`
}

// EntryFromEvent normalizes a persisted event into a calendar entry.
// The entry is keyed on the event's start date.
func EntryFromEvent(ev model.Event) Entry {
	courseID := 0
	if ev.CourseID != nil {
		courseID = *ev.CourseID
	}
	entry := Entry{
		ID:          ev.ID.String(),
		Kind:        Kind(ev.Type),
		Title:       ev.Title,
		Description: ev.Description,
		Date:        ev.StartAt.UTC().Format(DateLayout),
		StartTime:   ev.StartAt.UTC().Format(TimeLayout),
		EndTime:     ev.EndAt.UTC().Format(TimeLayout),
		CourseID:    courseID,
		ClassID:     ev.ClassID,
	}
	// Holiday rows are stored with equal start and end timestamps; render
	// them as full-day entries.
	if entry.Kind == KindHoliday {
		entry.StartTime = "00:00:00"
		entry.EndTime = "23:59:59"
	}
	return entry
}

// EntriesFromEvents normalizes a slice of persisted events.
func EntriesFromEvents(events []model.Event) []Entry {
	entries := make([]Entry, len(events))
	for i, ev := range events {
		entries[i] = EntryFromEvent(ev)
	}
	return entries
}
