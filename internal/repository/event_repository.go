package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// EventRepository handles persisted one-off calendar events.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, type, start_at, end_at, course_id, class_id, source_rule_id, created_at`

// ListOverlapping retrieves events whose interval intersects [from, to)
// under the given scope. A restricted scope admits class-NULL (global)
// events plus events whose class is in the permitted set; an empty permitted
// set therefore yields global events only.
func (r *EventRepository) ListOverlapping(ctx context.Context, from, to time.Time, scope calendar.Scope) ([]model.Event, error) {
	if scope.Unrestricted {
		rows, err := r.pool.Query(ctx,
			`SELECT `+eventColumns+` FROM events
			 WHERE start_at < $2 AND end_at >= $1
			 ORDER BY start_at`, from, to)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return scanEvents(rows)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE start_at < $2 AND end_at >= $1
		   AND (class_id IS NULL OR class_id = ANY($3))
		 ORDER BY start_at`, from, to, scope.ClassIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// GetByID retrieves one event.
func (r *EventRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	ev := &model.Event{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id,
	).Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Type, &ev.StartAt, &ev.EndAt,
		&ev.CourseID, &ev.ClassID, &ev.SourceRuleID, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// Create inserts a single event. The caller assigns the UUID.
func (r *EventRepository) Create(ctx context.Context, ev *model.Event) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO events (id, title, description, type, start_at, end_at, course_id, class_id, source_rule_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		ev.ID, ev.Title, ev.Description, ev.Type, ev.StartAt, ev.EndAt,
		ev.CourseID, ev.ClassID, ev.SourceRuleID,
	).Scan(&ev.CreatedAt)
}

// CreateBatch inserts events in one CopyFrom operation and returns the
// number of rows written. This is the materializer's single batched insert:
// one round trip, one partial-failure surface.
func (r *EventRepository) CreateBatch(ctx context.Context, events []model.Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	rows := make([][]any, len(events))
	for i, ev := range events {
		rows[i] = []any{
			ev.ID, ev.Title, ev.Description, ev.Type, ev.StartAt, ev.EndAt,
			ev.CourseID, ev.ClassID, ev.SourceRuleID,
		}
	}

	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"events"},
		[]string{"id", "title", "description", "type", "start_at", "end_at", "course_id", "class_id", "source_rule_id"},
		pgx.CopyFromRows(rows),
	)
	return int(n), err
}

// DatesByRule returns the distinct start dates of events the materializer
// produced for a rule. Used by reconciliation to find missing sessions.
func (r *EventRepository) DatesByRule(ctx context.Context, ruleID uuid.UUID) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT date_trunc('day', start_at) FROM events WHERE source_rule_id = $1`, ruleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// DeleteByRule removes every event a rule materialized. Used when an
// orphaned (partially materialized) rule is discarded.
func (r *EventRepository) DeleteByRule(ctx context.Context, ruleID uuid.UUID) (int, error) {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE source_rule_id = $1`, ruleID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// Delete removes an event by ID.
func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanEvents(rows pgx.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Type, &ev.StartAt, &ev.EndAt,
			&ev.CourseID, &ev.ClassID, &ev.SourceRuleID, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
