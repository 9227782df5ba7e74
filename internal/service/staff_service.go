package service

import (
	"context"

	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/repository"
)

// StaffService handles teacher and admin account business logic.
type StaffService struct {
	staffRepo *repository.StaffRepository
	auth      *AuthService
}

// NewStaffService creates a new StaffService.
func NewStaffService(staffRepo *repository.StaffRepository, auth *AuthService) *StaffService {
	return &StaffService{staffRepo: staffRepo, auth: auth}
}

// GetByID retrieves a staff member by ID.
func (s *StaffService) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	return s.staffRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a staff member by login email.
func (s *StaffService) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	return s.staffRepo.GetByEmail(ctx, email)
}

// List retrieves staff with pagination.
func (s *StaffService) List(ctx context.Context, limit, offset int) ([]model.Staff, int, error) {
	return s.staffRepo.List(ctx, limit, offset)
}

// Create hashes the password and inserts a new staff member.
func (s *StaffService) Create(ctx context.Context, req *model.CreateStaffRequest) (*model.Staff, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	staff := &model.Staff{
		Name:         req.Name,
		Email:        req.Email,
		Role:         model.StaffRole(req.Role),
		PasswordHash: hash,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Update modifies a staff member. An empty password keeps the current hash.
func (s *StaffService) Update(ctx context.Context, id int, req *model.UpdateStaffRequest) (*model.Staff, error) {
	var hash string
	if req.Password != "" {
		var err error
		hash, err = s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
	}

	staff := &model.Staff{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		Role:         model.StaffRole(req.Role),
		PasswordHash: hash,
	}
	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return s.staffRepo.GetByID(ctx, id)
}

// Delete removes a staff member.
func (s *StaffService) Delete(ctx context.Context, id int) error {
	return s.staffRepo.Delete(ctx, id)
}
