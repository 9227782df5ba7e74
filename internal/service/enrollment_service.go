package service

import (
	"context"

	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/repository"
)

// EnrollmentService handles enrollment business logic.
type EnrollmentService struct {
	enrollmentRepo *repository.EnrollmentRepository
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository) *EnrollmentService {
	return &EnrollmentService{enrollmentRepo: enrollmentRepo}
}

// Enroll creates a new active enrollment. The unique constraint on
// (student_id, class_id) rejects duplicates; the handler maps that error.
func (s *EnrollmentService) Enroll(ctx context.Context, req *model.CreateEnrollmentRequest) (*model.Enrollment, error) {
	e := &model.Enrollment{
		StudentID: req.StudentID,
		ClassID:   req.ClassID,
		Status:    model.EnrollmentActive,
	}
	if err := s.enrollmentRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// ListByStudent retrieves a student's enrollments.
func (s *EnrollmentService) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListByStudent(ctx, studentID)
}

// ListByClass retrieves a class's enrollments.
func (s *EnrollmentService) ListByClass(ctx context.Context, classID int) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListByClass(ctx, classID)
}

// UpdateStatus changes an enrollment's lifecycle status. Dropping or
// completing an enrollment immediately narrows the student's calendar scope.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, id int, status model.EnrollmentStatus) error {
	return s.enrollmentRepo.UpdateStatus(ctx, id, status)
}

// Delete removes an enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id int) error {
	return s.enrollmentRepo.Delete(ctx, id)
}
