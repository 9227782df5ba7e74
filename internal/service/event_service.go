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

// ErrEventNotFound is returned for lookups and deletes of missing events.
var ErrEventNotFound = errors.New("event not found")

// EventService manages one-off calendar events: holidays, extra classes and
// generic entries. Materialized class sessions are owned by ScheduleService.
type EventService struct {
	events  EventStore
	courses CourseGetter
	classes ClassGetter
	rdb     *redis.Client // may be nil in tests
	log     zerolog.Logger
}

// NewEventService creates a new EventService.
func NewEventService(events EventStore, courses CourseGetter, classes ClassGetter, rdb *redis.Client, log zerolog.Logger) *EventService {
	return &EventService{
		events:  events,
		courses: courses,
		classes: classes,
		rdb:     rdb,
		log:     log.With().Str("component", "event_service").Logger(),
	}
}

// CreateExtraClass stores a one-off class session for a course/class pair on
// a specific date. The class must belong to the course.
func (s *EventService) CreateExtraClass(ctx context.Context, req *model.CreateExtraClassRequest) (*model.Event, error) {
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

	date, err := time.Parse(calendar.DateLayout, req.Date)
	if err != nil {
		return nil, ErrBadStartDate
	}
	start, err := time.Parse(calendar.TimeLayout, req.StartTime)
	if err != nil {
		return nil, ErrBadStartTime
	}
	startAt := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), start.Second(), 0, time.UTC)

	courseID := course.ID
	classID := class.ID
	ev := &model.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        model.EventExtraClass,
		StartAt:     startAt,
		EndAt:       startAt.Add(time.Duration(req.DurationMinutes) * time.Minute),
		CourseID:    &courseID,
		ClassID:     &classID,
	}

	if err := s.events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("create extra class: %w", err)
	}

	s.publishChange(ctx, "event_created")
	s.log.Info().Str("event_id", ev.ID.String()).Int("class_id", classID).Msg("Extra class created")
	return ev, nil
}

// CreateHoliday stores a global all-day holiday. Holiday rows carry equal
// start and end timestamps at midnight of the date; the calendar layer
// normalizes them back into a full-day entry.
func (s *EventService) CreateHoliday(ctx context.Context, req *model.CreateHolidayRequest) (*model.Event, error) {
	date, err := time.Parse(calendar.DateLayout, req.Date)
	if err != nil {
		return nil, ErrBadStartDate
	}
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	ev := &model.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        model.EventHoliday,
		StartAt:     midnight,
		EndAt:       midnight,
	}

	if err := s.events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("create holiday: %w", err)
	}

	s.publishChange(ctx, "event_created")
	s.log.Info().Str("event_id", ev.ID.String()).Str("date", req.Date).Msg("Holiday created")
	return ev, nil
}

// CreateGeneric stores an arbitrary event, optionally scoped to a class.
func (s *EventService) CreateGeneric(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if req.ClassID != nil {
		class, err := s.classes.GetByID(ctx, *req.ClassID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrClassNotFound
			}
			return nil, fmt.Errorf("get class: %w", err)
		}
		if req.CourseID != nil && class.CourseID != *req.CourseID {
			return nil, ErrClassMismatch
		}
	} else if req.CourseID != nil {
		if _, err := s.courses.GetByID(ctx, *req.CourseID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrCourseNotFound
			}
			return nil, fmt.Errorf("get course: %w", err)
		}
	}

	ev := &model.Event{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Type:        model.EventGeneric,
		StartAt:     req.StartAt.UTC(),
		EndAt:       req.EndAt.UTC(),
		CourseID:    req.CourseID,
		ClassID:     req.ClassID,
	}

	if err := s.events.Create(ctx, ev); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.publishChange(ctx, "event_created")
	s.log.Info().Str("event_id", ev.ID.String()).Msg("Event created")
	return ev, nil
}

// ListRange lists events overlapping [from, to) with unrestricted scope.
func (s *EventService) ListRange(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	return s.events.ListOverlapping(ctx, from, to, calendar.UnrestrictedScope())
}

// Delete removes one event by id.
func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	s.publishChange(ctx, "event_deleted")
	return nil
}

func (s *EventService) publishChange(ctx context.Context, action string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.CalendarChangedChannel(), action).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to publish calendar change")
	}
}
