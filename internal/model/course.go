package model

import "time"

// Course represents one course in the institute catalog. Color is the hex
// display color the calendar uses for the course's sessions; DurationMonths
// drives the materializer's campaign span.
type Course struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Color          string    `json:"color"`
	DurationMonths int       `json:"duration_months"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating or updating a course.
type CreateCourseRequest struct {
	Name           string `json:"name" binding:"required,min=2,max=120"`
	Code           string `json:"code" binding:"required,min=2,max=20"`
	Color          string `json:"color" binding:"required,hexcolor"`
	DurationMonths int    `json:"duration_months" binding:"required,min=1,max=36"`
	Description    string `json:"description" binding:"omitempty,max=2000"`
}
