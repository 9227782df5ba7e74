package model

import "time"

// Class represents one batch of a course. Schedule rules and class-scoped
// events both hang off a class.
type Class struct {
	ID        int       `json:"id"`
	CourseID  int       `json:"course_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	CourseID int    `json:"course_id" binding:"required,min=1"`
	Name     string `json:"name" binding:"required,min=1,max=60"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=500"`
}
