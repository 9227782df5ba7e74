package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// ClassRepository handles class (batch) data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, name, capacity, created_at, updated_at
		 FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.CourseID, &c.Name, &c.Capacity, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, name, capacity, created_at, updated_at
		 FROM classes ORDER BY course_id, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.CourseID, &c.Name, &c.Capacity, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// ListByCourse retrieves all classes of one course.
func (r *ClassRepository) ListByCourse(ctx context.Context, courseID int) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, name, capacity, created_at, updated_at
		 FROM classes WHERE course_id = $1 ORDER BY name`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.CourseID, &c.Name, &c.Capacity, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (course_id, name, capacity)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.CourseID, c.Name, c.Capacity,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing class.
func (r *ClassRepository) Update(ctx context.Context, c *model.Class) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classes SET course_id = $1, name = $2, capacity = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		c.CourseID, c.Name, c.Capacity, c.ID,
	)
	return err
}

// Delete removes a class by its ID. Schedule rules pointing at it become
// orphans and drop out of every calendar read via the class join.
func (r *ClassRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM classes WHERE id = $1`, id)
	return err
}
