package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// In-memory fakes for the store interfaces. Each fake lets a test inject a
// failure for one method via the corresponding err field.

type fakeEventStore struct {
	events []model.Event

	listErr   error
	createErr error

	// batchLimit caps how many rows CreateBatch accepts; -1 means no cap.
	batchLimit int
	batchErr   error
	batchCalls int
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{batchLimit: -1}
}

func (f *fakeEventStore) ListOverlapping(_ context.Context, from, to time.Time, scope calendar.Scope) ([]model.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Event
	for _, ev := range f.events {
		// Same predicate as the SQL: start_at < to AND end_at >= from.
		if ev.StartAt.Before(to) && !ev.EndAt.Before(from) && scope.AllowsEvent(ev.ClassID) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeEventStore) Create(_ context.Context, ev *model.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.events = append(f.events, *ev)
	return nil
}

func (f *fakeEventStore) CreateBatch(_ context.Context, events []model.Event) (int, error) {
	f.batchCalls++
	n := len(events)
	if f.batchLimit >= 0 && n > f.batchLimit {
		n = f.batchLimit
	}
	f.events = append(f.events, events[:n]...)
	if f.batchErr != nil {
		return n, f.batchErr
	}
	return n, nil
}

func (f *fakeEventStore) DatesByRule(_ context.Context, ruleID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	for _, ev := range f.events {
		if ev.SourceRuleID != nil && *ev.SourceRuleID == ruleID {
			dates = append(dates, ev.StartAt)
		}
	}
	return dates, nil
}

func (f *fakeEventStore) DeleteByRule(_ context.Context, ruleID uuid.UUID) (int, error) {
	kept := f.events[:0]
	removed := 0
	for _, ev := range f.events {
		if ev.SourceRuleID != nil && *ev.SourceRuleID == ruleID {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	f.events = kept
	return removed, nil
}

func (f *fakeEventStore) Delete(_ context.Context, id uuid.UUID) error {
	for i, ev := range f.events {
		if ev.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type fakeRuleStore struct {
	rules map[uuid.UUID]*model.ScheduleRule

	listErr   error
	createErr error
}

func newFakeRuleStore() *fakeRuleStore {
	return &fakeRuleStore{rules: make(map[uuid.UUID]*model.ScheduleRule)}
}

func (f *fakeRuleStore) GetByID(_ context.Context, id uuid.UUID) (*model.ScheduleRule, error) {
	rule, ok := f.rules[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *rule
	return &cp, nil
}

func (f *fakeRuleStore) ListVisible(_ context.Context, scope calendar.Scope) ([]model.ScheduleRule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.ScheduleRule
	for _, rule := range f.rules {
		if scope.AllowsRule(rule.ClassID) {
			out = append(out, *rule)
		}
	}
	return out, nil
}

func (f *fakeRuleStore) Create(_ context.Context, rule *model.ScheduleRule) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeRuleStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.rules[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.rules, id)
	return nil
}

type fakeEnrollmentStore struct {
	classIDs map[int][]int
	err      error
}

func (f *fakeEnrollmentStore) ActiveClassIDs(_ context.Context, studentID int) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.classIDs[studentID], nil
}

type fakeCourseGetter struct {
	courses map[int]*model.Course
}

func (f *fakeCourseGetter) GetByID(_ context.Context, id int) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *course
	return &cp, nil
}

type fakeClassGetter struct {
	classes map[int]*model.Class
}

func (f *fakeClassGetter) GetByID(_ context.Context, id int) (*model.Class, error) {
	class, ok := f.classes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *class
	return &cp, nil
}

// testCatalog is the shared fixture: one course with one class.
func testCatalog() (*fakeCourseGetter, *fakeClassGetter) {
	courses := &fakeCourseGetter{courses: map[int]*model.Course{
		1: {ID: 1, Name: "Full Stack Web Development", Code: "FSWD", Color: "#2563eb", DurationMonths: 1},
		2: {ID: 2, Name: "Python for Data Science", Code: "PYDS", Color: "#16a34a", DurationMonths: 4},
	}}
	classes := &fakeClassGetter{classes: map[int]*model.Class{
		4: {ID: 4, CourseID: 1, Name: "Batch A", Capacity: 30},
		5: {ID: 5, CourseID: 2, Name: "Batch A", Capacity: 30},
	}}
	return courses, classes
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
