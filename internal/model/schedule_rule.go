package model

import (
	"time"

	"github.com/google/uuid"
)

// RuleDurations is the preset list of allowed session lengths in minutes.
var RuleDurations = []int{30, 45, 60, 90, 120}

// IsRuleDuration reports whether minutes is one of the preset lengths.
func IsRuleDuration(minutes int) bool {
	for _, d := range RuleDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// ScheduleRule is a persisted weekly recurrence: the named weekdays at
// StartTime for DurationMinutes, bound to one class of one course. Rules are
// created once and never edited; a rule whose class row disappears is
// excluded from every read by the repository's class join.
type ScheduleRule struct {
	ID              uuid.UUID `json:"id"`
	CourseID        int       `json:"course_id"`
	ClassID         int       `json:"class_id"`
	Weekdays        []string  `json:"weekdays"`
	StartTime       string    `json:"start_time"` // HH:MM:SS
	DurationMinutes int       `json:"duration_minutes"`
	StartDate       time.Time `json:"start_date"`
	CreatedAt       time.Time `json:"created_at"`

	// Display attributes joined from the course row.
	CourseName  string `json:"course_name,omitempty"`
	CourseColor string `json:"course_color,omitempty"`
}

// CreateScheduleRuleRequest is the admin payload for creating a rule. The
// weekday tag is registered in the validator package.
type CreateScheduleRuleRequest struct {
	CourseID        int      `json:"course_id" binding:"required,min=1"`
	ClassID         int      `json:"class_id" binding:"required,min=1"`
	Weekdays        []string `json:"weekdays" binding:"required,min=1,dive,weekday"`
	StartTime       string   `json:"start_time" binding:"required,datetime=15:04:05"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,oneof=30 45 60 90 120"`
	StartDate       string   `json:"start_date" binding:"required,datetime=2006-01-02"`
}
