package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// EnrollmentRepository handles enrollment data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// ActiveClassIDs returns the class ids of a student's active enrollments.
// This is the input to the student visibility scope; an empty result is a
// valid answer, not an error.
func (r *EnrollmentRepository) ActiveClassIDs(ctx context.Context, studentID int) ([]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT class_id FROM enrollments
		 WHERE student_id = $1 AND status = 'active'`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListByStudent retrieves all of a student's enrollments.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, class_id, status, enrolled_at
		 FROM enrollments WHERE student_id = $1 ORDER BY enrolled_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// ListByClass retrieves all enrollments of a class.
func (r *EnrollmentRepository) ListByClass(ctx context.Context, classID int) ([]model.Enrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_id, class_id, status, enrolled_at
		 FROM enrollments WHERE class_id = $1 ORDER BY enrolled_at DESC`, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEnrollments(rows)
}

// Create inserts a new active enrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *model.Enrollment) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO enrollments (student_id, class_id, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, enrolled_at`,
		e.StudentID, e.ClassID, e.Status,
	).Scan(&e.ID, &e.EnrolledAt)
}

// UpdateStatus changes an enrollment's status.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int, status model.EnrollmentStatus) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE enrollments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an enrollment by ID.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	return err
}

func scanEnrollments(rows pgx.Rows) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	for rows.Next() {
		var e model.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.ClassID, &e.Status, &e.EnrolledAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
