package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// Store interfaces consumed by the calendar and schedule services. The
// pgx-backed repositories satisfy them; tests substitute in-memory fakes.

// EventStore is the persisted one-off event accessor.
type EventStore interface {
	ListOverlapping(ctx context.Context, from, to time.Time, scope calendar.Scope) ([]model.Event, error)
	Create(ctx context.Context, ev *model.Event) error
	CreateBatch(ctx context.Context, events []model.Event) (int, error)
	DatesByRule(ctx context.Context, ruleID uuid.UUID) ([]time.Time, error)
	DeleteByRule(ctx context.Context, ruleID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RuleStore is the weekly recurrence rule accessor.
type RuleStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleRule, error)
	ListVisible(ctx context.Context, scope calendar.Scope) ([]model.ScheduleRule, error)
	Create(ctx context.Context, rule *model.ScheduleRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnrollmentStore resolves a student's active class memberships.
type EnrollmentStore interface {
	ActiveClassIDs(ctx context.Context, studentID int) ([]int, error)
}

// CourseGetter resolves course rows for validation and display attributes.
type CourseGetter interface {
	GetByID(ctx context.Context, id int) (*model.Course, error)
}

// ClassGetter resolves class rows for validation.
type ClassGetter interface {
	GetByID(ctx context.Context, id int) (*model.Class, error)
}
