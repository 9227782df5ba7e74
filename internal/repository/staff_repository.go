package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// StaffRepository handles staff (teacher/admin) data access.
type StaffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository creates a new StaffRepository.
func NewStaffRepository(pool *pgxpool.Pool) *StaffRepository {
	return &StaffRepository{pool: pool}
}

// GetByID retrieves a staff member by ID.
func (r *StaffRepository) GetByID(ctx context.Context, id int) (*model.Staff, error) {
	s := &model.Staff{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM staff WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByEmail retrieves a staff member by login email.
func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*model.Staff, error) {
	s := &model.Staff{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM staff WHERE email = $1`, email,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves staff members with limit/offset pagination and the total
// count.
func (r *StaffRepository) List(ctx context.Context, limit, offset int) ([]model.Staff, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, name, email, role, password_hash, created_at, updated_at
		 FROM staff ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var staff []model.Staff
	for rows.Next() {
		var s model.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Role, &s.PasswordHash, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		staff = append(staff, s)
	}
	return staff, total, rows.Err()
}

// Create inserts a new staff member.
func (r *StaffRepository) Create(ctx context.Context, s *model.Staff) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO staff (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Email, s.Role, s.PasswordHash,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Update modifies an existing staff member. An empty password hash keeps the
// current one.
func (r *StaffRepository) Update(ctx context.Context, s *model.Staff) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE staff
		 SET name = $1, email = $2, role = $3,
		     password_hash = COALESCE(NULLIF($4, ''), password_hash),
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		s.Name, s.Email, s.Role, s.PasswordHash, s.ID,
	)
	return err
}

// Delete removes a staff member by ID.
func (r *StaffRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	return err
}
