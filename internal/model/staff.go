package model

import "time"

// StaffRole enumerates the staff-side roles. Students have their own token
// type and never appear in this table.
type StaffRole string

const (
	RoleTeacher StaffRole = "teacher"
	RoleAdmin   StaffRole = "admin"
)

// Staff represents a teacher or administrator account.
type Staff struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         StaffRole `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateStaffRequest is the payload for creating a staff member.
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=teacher admin"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateStaffRequest is the payload for updating a staff member.
type UpdateStaffRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=teacher admin"`
	Password string `json:"password" binding:"omitempty,min=6"`
}
