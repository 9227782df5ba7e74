package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates persisted one-off calendar entries. EventClass rows
// only exist when the legacy eager materializer is enabled; the lazy path
// produces class occurrences at read time instead.
type EventType string

const (
	EventHoliday    EventType = "holiday"
	EventExtraClass EventType = "extra_class"
	EventClass      EventType = "class"
	EventGeneric    EventType = "generic"
)

// Event is a persisted, non-recurring calendar entry. A nil ClassID means
// the event is global (holidays). SourceRuleID is set on rows the eager
// materializer produced, linking them back to their schedule rule for
// reconciliation and orphan cleanup.
type Event struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Type         EventType  `json:"type"`
	StartAt      time.Time  `json:"start_at"`
	EndAt        time.Time  `json:"end_at"`
	CourseID     *int       `json:"course_id,omitempty"`
	ClassID      *int       `json:"class_id,omitempty"`
	SourceRuleID *uuid.UUID `json:"source_rule_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateExtraClassRequest is the admin payload for a one-off extra class,
// bound to a course and class on a specific date and time.
type CreateExtraClassRequest struct {
	Title           string `json:"title" binding:"required,min=2,max=200"`
	Description     string `json:"description" binding:"omitempty,max=2000"`
	CourseID        int    `json:"course_id" binding:"required,min=1"`
	ClassID         int    `json:"class_id" binding:"required,min=1"`
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" binding:"required,datetime=15:04:05"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=15,max=480"`
}

// CreateHolidayRequest is the admin payload for a global holiday.
type CreateHolidayRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
}

// CreateEventRequest is the admin payload for a generic calendar event.
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required,min=2,max=200"`
	Description string     `json:"description" binding:"omitempty,max=2000"`
	StartAt     *time.Time `json:"start_at" binding:"required"`
	EndAt       *time.Time `json:"end_at" binding:"required,gtefield=StartAt"`
	CourseID    *int       `json:"course_id" binding:"omitempty,min=1"`
	ClassID     *int       `json:"class_id" binding:"omitempty,min=1"`
}
