package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// ScheduleRuleRepository handles weekly recurrence rules. Every read joins
// classes and courses: a rule whose class row has been deleted is excluded
// here, upstream of the expander, which therefore never sees an invalid
// class reference.
type ScheduleRuleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRuleRepository creates a new ScheduleRuleRepository.
func NewScheduleRuleRepository(pool *pgxpool.Pool) *ScheduleRuleRepository {
	return &ScheduleRuleRepository{pool: pool}
}

const ruleSelect = `
	SELECT r.id, r.course_id, r.class_id, r.weekdays, r.start_time::text,
	       r.duration_minutes, r.start_date, r.created_at, co.name, co.color
	FROM schedule_rules r
	JOIN classes cl ON cl.id = r.class_id
	JOIN courses co ON co.id = r.course_id`

// GetByID retrieves one rule with its course display attributes.
func (r *ScheduleRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleRule, error) {
	rule := &model.ScheduleRule{}
	err := r.pool.QueryRow(ctx, ruleSelect+` WHERE r.id = $1`, id).Scan(
		&rule.ID, &rule.CourseID, &rule.ClassID, &rule.Weekdays, &rule.StartTime,
		&rule.DurationMinutes, &rule.StartDate, &rule.CreatedAt,
		&rule.CourseName, &rule.CourseColor)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// ListVisible retrieves the rules admitted by the scope. A restricted scope
// with no classes yields no rules: rules are never global.
func (r *ScheduleRuleRepository) ListVisible(ctx context.Context, scope calendar.Scope) ([]model.ScheduleRule, error) {
	if scope.Unrestricted {
		rows, err := r.pool.Query(ctx, ruleSelect+` ORDER BY r.created_at`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return scanRules(rows)
	}

	if len(scope.ClassIDs) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, ruleSelect+` WHERE r.class_id = ANY($1) ORDER BY r.created_at`, scope.ClassIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRules(rows)
}

// Create inserts a new rule header. The caller assigns the UUID.
func (r *ScheduleRuleRepository) Create(ctx context.Context, rule *model.ScheduleRule) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO schedule_rules (id, course_id, class_id, weekdays, start_time, duration_minutes, start_date)
		 VALUES ($1, $2, $3, $4, $5::time, $6, $7)
		 RETURNING created_at`,
		rule.ID, rule.CourseID, rule.ClassID, rule.Weekdays, rule.StartTime,
		rule.DurationMinutes, rule.StartDate,
	).Scan(&rule.CreatedAt)
}

// Delete removes a rule header by ID.
func (r *ScheduleRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM schedule_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanRules(rows pgx.Rows) ([]model.ScheduleRule, error) {
	var rules []model.ScheduleRule
	for rows.Next() {
		var rule model.ScheduleRule
		if err := rows.Scan(&rule.ID, &rule.CourseID, &rule.ClassID, &rule.Weekdays, &rule.StartTime,
			&rule.DurationMinutes, &rule.StartDate, &rule.CreatedAt,
			&rule.CourseName, &rule.CourseColor); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
