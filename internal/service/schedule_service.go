package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/config"
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// Validation errors, all raised before anything is persisted.
var (
	ErrCourseRequired   = errors.New("course is required")
	ErrClassRequired    = errors.New("class is required")
	ErrWeekdaysRequired = errors.New("at least one weekday is required")
	ErrInvalidWeekday   = errors.New("invalid weekday name")
	ErrBadDuration      = errors.New("duration is not one of the preset lengths")
	ErrBadStartTime     = errors.New("start time must be HH:MM:SS")
	ErrBadStartDate     = errors.New("start date must be YYYY-MM-DD")
	ErrClassMismatch    = errors.New("class does not belong to the course")
)

// Not-found errors for stale catalog references.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrClassNotFound  = errors.New("class not found")
	ErrRuleNotFound   = errors.New("schedule rule not found")
)

// PartialMaterializationError reports an eager materialization whose rule
// header committed but whose bulk event insert failed or only partially
// succeeded. The rule now exists with missing sessions and needs operator
// reconciliation (retry or discard); it must never be folded into a generic
// failure.
type PartialMaterializationError struct {
	RuleID   uuid.UUID
	Expected int
	Created  int
	Err      error
}

func (e *PartialMaterializationError) Error() string {
	return fmt.Sprintf("rule %s materialized %d of %d sessions: %v", e.RuleID, e.Created, e.Expected, e.Err)
}

func (e *PartialMaterializationError) Unwrap() error { return e.Err }

// MaterializationResult is what rule creation reports back.
type MaterializationResult struct {
	Rule          *model.ScheduleRule `json:"rule"`
	Materialized  bool                `json:"materialized"`
	EventsCreated int                 `json:"events_created"`
}

// ScheduleService owns schedule rules and the legacy eager materializer.
// The default path is lazy: the rule header is stored once and the expander
// produces sessions per window. Eager mode additionally bulk-inserts every
// concrete session across the course's campaign span.
type ScheduleService struct {
	rules   RuleStore
	events  EventStore
	courses CourseGetter
	classes ClassGetter
	rdb     *redis.Client // may be nil in tests; retry enqueue is skipped
	log     zerolog.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(rules RuleStore, events EventStore, courses CourseGetter, classes ClassGetter, rdb *redis.Client, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{
		rules:   rules,
		events:  events,
		courses: courses,
		classes: classes,
		rdb:     rdb,
		log:     log.With().Str("component", "schedule_service").Logger(),
	}
}

// CreateRule validates and persists a new weekly recurrence. With eager set,
// it then materializes every session of the campaign span in one batch
// insert. Validation failures reject the request before any row is written.
func (s *ScheduleService) CreateRule(ctx context.Context, req *model.CreateScheduleRuleRequest, eager bool) (*MaterializationResult, error) {
	if req.CourseID <= 0 {
		return nil, ErrCourseRequired
	}
	if req.ClassID <= 0 {
		return nil, ErrClassRequired
	}
	if len(req.Weekdays) == 0 {
		return nil, ErrWeekdaysRequired
	}
	weekdays := dedupeWeekdays(req.Weekdays)
	for _, name := range weekdays {
		if !calendar.IsWeekdayName(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
		}
	}
	if !model.IsRuleDuration(req.DurationMinutes) {
		return nil, ErrBadDuration
	}
	if _, err := time.Parse(calendar.TimeLayout, req.StartTime); err != nil {
		return nil, ErrBadStartTime
	}
	startDate, err := time.Parse(calendar.DateLayout, req.StartDate)
	if err != nil {
		return nil, ErrBadStartDate
	}

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course: %w", err)
	}
	class, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	if class.CourseID != course.ID {
		return nil, ErrClassMismatch
	}

	rule := &model.ScheduleRule{
		ID:              uuid.New(),
		CourseID:        course.ID,
		ClassID:         class.ID,
		Weekdays:        weekdays,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		StartDate:       startDate,
		CourseName:      course.Name,
		CourseColor:     course.Color,
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("create rule: %w", err)
	}

	result := &MaterializationResult{Rule: rule}

	if eager {
		created, err := s.materialize(ctx, rule, course)
		result.Materialized = true
		result.EventsCreated = created
		if err != nil {
			return result, err
		}
	}

	s.publishChange(ctx, "rule_created")
	s.log.Info().
		Str("rule_id", rule.ID.String()).
		Int("class_id", rule.ClassID).
		Bool("eager", eager).
		Int("events_created", result.EventsCreated).
		Msg("Schedule rule created")

	return result, nil
}

// materialize bulk-inserts the rule's sessions. On failure the rule header
// already exists, so the error is a PartialMaterializationError and the rule
// is queued for background reconciliation.
func (s *ScheduleService) materialize(ctx context.Context, rule *model.ScheduleRule, course *model.Course) (int, error) {
	dates := calendar.CampaignDates(rule.StartDate, course.DurationMonths, rule.Weekdays)
	events := buildSessionEvents(rule, course, dates)

	created, err := s.events.CreateBatch(ctx, events)
	if err != nil || created != len(events) {
		perr := &PartialMaterializationError{
			RuleID:   rule.ID,
			Expected: len(events),
			Created:  created,
			Err:      err,
		}
		s.enqueueRetry(ctx, rule.ID)
		return created, perr
	}
	return created, nil
}

// Rematerialize inserts whichever of a rule's sessions are missing. Used by
// the reconcile worker and the admin retry endpoint; safe to call on a fully
// materialized rule (no-op).
func (s *ScheduleService) Rematerialize(ctx context.Context, ruleID uuid.UUID) (int, error) {
	rule, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrRuleNotFound
		}
		return 0, fmt.Errorf("get rule: %w", err)
	}
	course, err := s.courses.GetByID(ctx, rule.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrCourseNotFound
		}
		return 0, fmt.Errorf("get course: %w", err)
	}

	existing, err := s.events.DatesByRule(ctx, ruleID)
	if err != nil {
		return 0, fmt.Errorf("list materialized dates: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, d := range existing {
		have[d.UTC().Format(calendar.DateLayout)] = true
	}

	var missing []time.Time
	for _, d := range calendar.CampaignDates(rule.StartDate, course.DurationMonths, rule.Weekdays) {
		if !have[d.Format(calendar.DateLayout)] {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	created, err := s.events.CreateBatch(ctx, buildSessionEvents(rule, course, missing))
	if err != nil {
		return created, fmt.Errorf("insert missing sessions: %w", err)
	}

	s.publishChange(ctx, "rule_rematerialized")
	s.log.Info().
		Str("rule_id", ruleID.String()).
		Int("created", created).
		Msg("Rule rematerialized")
	return created, nil
}

// DiscardRule deletes a rule together with every event it materialized.
// This is the operator's other way out of a partial materialization.
func (s *ScheduleService) DiscardRule(ctx context.Context, ruleID uuid.UUID) (int, error) {
	removed, err := s.events.DeleteByRule(ctx, ruleID)
	if err != nil {
		return 0, fmt.Errorf("delete materialized events: %w", err)
	}
	if err := s.rules.Delete(ctx, ruleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return removed, ErrRuleNotFound
		}
		return removed, fmt.Errorf("delete rule: %w", err)
	}

	s.publishChange(ctx, "rule_discarded")
	s.log.Info().
		Str("rule_id", ruleID.String()).
		Int("events_removed", removed).
		Msg("Rule discarded")
	return removed, nil
}

// GetRule retrieves one rule.
func (s *ScheduleService) GetRule(ctx context.Context, ruleID uuid.UUID) (*model.ScheduleRule, error) {
	rule, err := s.rules.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

// ListRules retrieves all rules (admin view, unrestricted scope).
func (s *ScheduleService) ListRules(ctx context.Context) ([]model.ScheduleRule, error) {
	return s.rules.ListVisible(ctx, calendar.UnrestrictedScope())
}

func (s *ScheduleService) enqueueRetry(ctx context.Context, ruleID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.MaterializeRetryQueue, ruleID.String()).Err(); err != nil {
		s.log.Error().Err(err).Str("rule_id", ruleID.String()).Msg("Failed to enqueue materialization retry")
	}
}

func (s *ScheduleService) publishChange(ctx context.Context, action string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.CalendarChangedChannel(), action).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to publish calendar change")
	}
}

// buildSessionEvents turns campaign dates into "<Course> Class" event rows
// linked back to the rule.
func buildSessionEvents(rule *model.ScheduleRule, course *model.Course, dates []time.Time) []model.Event {
	start, _ := time.Parse(calendar.TimeLayout, rule.StartTime)
	courseID := course.ID
	classID := rule.ClassID
	ruleID := rule.ID

	events := make([]model.Event, len(dates))
	for i, d := range dates {
		startAt := time.Date(d.Year(), d.Month(), d.Day(), start.Hour(), start.Minute(), start.Second(), 0, time.UTC)
		events[i] = model.Event{
			ID:           uuid.New(),
			Title:        course.Name + " Class",
			Type:         model.EventClass,
			StartAt:      startAt,
			EndAt:        startAt.Add(time.Duration(rule.DurationMinutes) * time.Minute),
			CourseID:     &courseID,
			ClassID:      &classID,
			SourceRuleID: &ruleID,
		}
	}
	return events
}

func dedupeWeekdays(weekdays []string) []string {
	seen := make(map[string]bool, len(weekdays))
	out := make([]string, 0, len(weekdays))
	for _, name := range weekdays {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
