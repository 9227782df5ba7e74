package service

import (
	"context"

	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/repository"
)

// CourseService handles course catalog business logic.
type CourseService struct {
	courseRepo *repository.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// GetByID retrieves a course by its ID.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// List retrieves all courses.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx)
}

// Create creates a new course.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Create(ctx, course)
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Update(ctx, course)
}

// Delete removes a course. The foreign key on classes prevents deleting a
// course that still has classes; the handler maps that constraint error.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.courseRepo.Delete(ctx, id)
}
