package model

import "time"

// EnrollmentStatus enumerates the lifecycle of an enrollment. Only active
// rows contribute to a student's calendar visibility.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCompleted EnrollmentStatus = "completed"
	EnrollmentDropped   EnrollmentStatus = "dropped"
)

// Enrollment links a student to a class.
type Enrollment struct {
	ID         int              `json:"id"`
	StudentID  int              `json:"student_id"`
	ClassID    int              `json:"class_id"`
	Status     EnrollmentStatus `json:"status"`
	EnrolledAt time.Time        `json:"enrolled_at"`
}

// CreateEnrollmentRequest is the payload for enrolling a student.
type CreateEnrollmentRequest struct {
	StudentID int `json:"student_id" binding:"required,min=1"`
	ClassID   int `json:"class_id" binding:"required,min=1"`
}

// UpdateEnrollmentRequest changes an enrollment's status.
type UpdateEnrollmentRequest struct {
	Status string `json:"status" binding:"required,oneof=active completed dropped"`
}
