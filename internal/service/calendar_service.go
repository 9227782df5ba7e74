package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// Viewer identifies the calendar caller after authentication.
type Viewer struct {
	Role   string // "student", "teacher", "admin"
	UserID int
}

// Navigation directions accepted by Navigate.
const (
	NavNext     = "next"
	NavPrevious = "previous"
	NavCurrent  = "current"
)

// ErrUnknownRole is returned when a viewer's role cannot be mapped to a
// visibility policy. Auth middleware should make this unreachable.
var ErrUnknownRole = errors.New("unknown viewer role")

// CalendarService orchestrates the weekly calendar view: it resolves the
// viewer's visibility scope, reads both stores concurrently, expands rules
// onto the window and merges everything into one WeekView. It also owns the
// per-viewer week navigators implementing last-request-wins.
type CalendarService struct {
	events      EventStore
	rules       RuleStore
	enrollments EnrollmentStore
	expander    *calendar.Expander
	log         zerolog.Logger
	now         func() time.Time

	mu         sync.Mutex
	navigators map[string]*calendar.Navigator
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(events EventStore, rules RuleStore, enrollments EnrollmentStore, log zerolog.Logger) *CalendarService {
	return &CalendarService{
		events:      events,
		rules:       rules,
		enrollments: enrollments,
		expander:    calendar.NewExpander(),
		log:         log.With().Str("component", "calendar_service").Logger(),
		now:         time.Now,
		navigators:  make(map[string]*calendar.Navigator),
	}
}

// resolveScope maps the viewer's role to a visibility scope. Students are
// narrowed to their active enrollment classes; teachers and admins are
// unrestricted.
func (s *CalendarService) resolveScope(ctx context.Context, viewer Viewer) (calendar.Scope, error) {
	switch viewer.Role {
	case "admin", "teacher":
		return calendar.UnrestrictedScope(), nil
	case "student":
		classIDs, err := s.enrollments.ActiveClassIDs(ctx, viewer.UserID)
		if err != nil {
			return calendar.Scope{}, &calendar.FetchError{Op: "enrollments", Err: err}
		}
		return calendar.StudentScope(classIDs), nil
	default:
		return calendar.Scope{}, ErrUnknownRole
	}
}

// WeekView builds the merged view for one window. The event and rule reads
// are issued concurrently and joined before expansion; any failure aborts
// the whole window so a partially merged result is never rendered.
func (s *CalendarService) WeekView(ctx context.Context, viewer Viewer, week calendar.Week) (*calendar.WeekView, error) {
	scope, err := s.resolveScope(ctx, viewer)
	if err != nil {
		return nil, err
	}

	var (
		events []model.Event
		rules  []model.ScheduleRule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		evs, err := s.events.ListOverlapping(gctx, week.Start(), week.Start().AddDate(0, 0, 7), scope)
		if err != nil {
			return &calendar.FetchError{Op: "events", Err: err}
		}
		events = evs
		return nil
	})
	g.Go(func() error {
		rs, err := s.rules.ListVisible(gctx, scope)
		if err != nil {
			return &calendar.FetchError{Op: "rules", Err: err}
		}
		rules = rs
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	occurrences := s.expander.ExpandAll(rules, week)
	view := calendar.MergeWeek(week, occurrences, calendar.EntriesFromEvents(events))

	s.log.Debug().
		Str("week", week.Key()).
		Str("role", viewer.Role).
		Int("rules", len(rules)).
		Int("events", len(events)).
		Msg("Week view built")

	return view, nil
}

// Navigate applies a discrete transition to the viewer's navigator and
// builds the resulting window. If a newer navigation supersedes this one
// while the stores are being read, the result is discarded and
// calendar.ErrStaleResponse is returned; callers drop it silently.
func (s *CalendarService) Navigate(ctx context.Context, viewer Viewer, direction string) (*calendar.WeekView, error) {
	nav := s.navigatorFor(viewer)

	var (
		week calendar.Week
		gen  uint64
	)
	switch direction {
	case NavNext:
		week, gen = nav.Next()
	case NavPrevious:
		week, gen = nav.Previous()
	case NavCurrent:
		week, gen = nav.JumpToCurrentWeek(s.now())
	default:
		week, gen = nav.Current()
	}

	view, err := s.WeekView(ctx, viewer, week)
	if err != nil {
		return nil, err
	}
	if !nav.IsLatest(gen) {
		return nil, calendar.ErrStaleResponse
	}
	return view, nil
}

// ViewWeek jumps the viewer's navigator to the week containing the given
// date and builds it. Same staleness rule as Navigate.
func (s *CalendarService) ViewWeek(ctx context.Context, viewer Viewer, date string) (*calendar.WeekView, error) {
	week, err := calendar.ParseWeek(date)
	if err != nil {
		return nil, fmt.Errorf("parse week date: %w", err)
	}

	nav := s.navigatorFor(viewer)
	week, gen := nav.JumpTo(week)

	view, err := s.WeekView(ctx, viewer, week)
	if err != nil {
		return nil, err
	}
	if !nav.IsLatest(gen) {
		return nil, calendar.ErrStaleResponse
	}
	return view, nil
}

func (s *CalendarService) navigatorFor(viewer Viewer) *calendar.Navigator {
	key := fmt.Sprintf("%s:%d", viewer.Role, viewer.UserID)

	s.mu.Lock()
	defer s.mu.Unlock()
	nav, ok := s.navigators[key]
	if !ok {
		nav = calendar.NewNavigator(s.now())
		s.navigators[key] = nav
	}
	return nav
}
