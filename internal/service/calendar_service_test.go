package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/model"
)

// Fixture clock: Wednesday Jan 17 2024, inside the week of Monday Jan 15.
var testNow = time.Date(2024, time.January, 17, 12, 0, 0, 0, time.UTC)

func newCalendarFixture() (*CalendarService, *fakeEventStore, *fakeRuleStore, *fakeEnrollmentStore) {
	events := newFakeEventStore()
	rules := newFakeRuleStore()
	enrollments := &fakeEnrollmentStore{classIDs: map[int][]int{}}
	svc := NewCalendarService(events, rules, enrollments, testLogger())
	svc.now = func() time.Time { return testNow }
	return svc, events, rules, enrollments
}

func seedRule(rules *fakeRuleStore, classID int, weekdays ...string) uuid.UUID {
	id := uuid.New()
	rules.rules[id] = &model.ScheduleRule{
		ID:              id,
		CourseID:        1,
		ClassID:         classID,
		Weekdays:        weekdays,
		StartTime:       "18:00:00",
		DurationMinutes: 90,
		StartDate:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		CourseName:      "Full Stack Web Development",
		CourseColor:     "#2563eb",
	}
	return id
}

func seedEvent(events *fakeEventStore, classID *int, day time.Time, evType model.EventType) uuid.UUID {
	id := uuid.New()
	events.events = append(events.events, model.Event{
		ID:      id,
		Type:    evType,
		Title:   "Seeded",
		StartAt: day.Add(10 * time.Hour),
		EndAt:   day.Add(11 * time.Hour),
		ClassID: classID,
	})
	return id
}

func countEntries(view *calendar.WeekView) int {
	total := 0
	for _, day := range view.Days {
		total += len(day.Entries)
	}
	return total
}

func TestWeekViewMergesRulesAndEvents(t *testing.T) {
	svc, events, rules, _ := newCalendarFixture()
	seedRule(rules, 4, "Monday", "Wednesday")
	classID := 4
	seedEvent(events, &classID, time.Date(2024, time.January, 18, 0, 0, 0, 0, time.UTC), model.EventExtraClass)

	view, err := svc.WeekView(context.Background(), Viewer{Role: "admin", UserID: 1}, calendar.WeekOf(testNow))
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}
	if len(view.Days) != 7 {
		t.Fatalf("got %d days", len(view.Days))
	}
	// Two rule occurrences (Mon, Wed) plus the extra class on Thursday.
	if got := countEntries(view); got != 3 {
		t.Errorf("got %d entries, want 3", got)
	}
	if len(view.Days[0].Entries) != 1 || view.Days[0].Entries[0].Kind != calendar.KindClass {
		t.Errorf("Monday = %+v", view.Days[0].Entries)
	}
	if len(view.Days[3].Entries) != 1 || view.Days[3].Entries[0].Kind != calendar.KindExtraClass {
		t.Errorf("Thursday = %+v", view.Days[3].Entries)
	}
}

func TestWeekViewStudentScopeNarrows(t *testing.T) {
	svc, events, rules, enrollments := newCalendarFixture()
	enrollments.classIDs[7] = []int{4}

	seedRule(rules, 4, "Monday")  // visible: enrolled class
	seedRule(rules, 9, "Tuesday") // hidden: foreign class

	monday := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	mine, foreign := 4, 9
	seedEvent(events, &mine, monday, model.EventExtraClass)
	seedEvent(events, &foreign, monday, model.EventExtraClass)
	seedEvent(events, nil, monday, model.EventHoliday) // global, always visible

	view, err := svc.WeekView(context.Background(), Viewer{Role: "student", UserID: 7}, calendar.WeekOf(testNow))
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}
	if got := countEntries(view); got != 3 {
		t.Errorf("student sees %d entries, want 3 (own rule, own event, holiday)", got)
	}
	for _, entry := range view.Days[0].Entries {
		if entry.ClassID != nil && *entry.ClassID == foreign {
			t.Errorf("foreign class entry leaked: %+v", entry)
		}
	}
}

func TestWeekViewStudentWithoutEnrollments(t *testing.T) {
	svc, events, rules, _ := newCalendarFixture()
	seedRule(rules, 4, "Monday")
	monday := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	seedEvent(events, nil, monday, model.EventHoliday)

	view, err := svc.WeekView(context.Background(), Viewer{Role: "student", UserID: 42}, calendar.WeekOf(testNow))
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}
	if got := countEntries(view); got != 1 {
		t.Errorf("unenrolled student sees %d entries, want only the holiday", got)
	}
}

func TestWeekViewTeacherUnrestricted(t *testing.T) {
	svc, _, rules, _ := newCalendarFixture()
	seedRule(rules, 4, "Monday")
	seedRule(rules, 9, "Tuesday")

	view, err := svc.WeekView(context.Background(), Viewer{Role: "teacher", UserID: 3}, calendar.WeekOf(testNow))
	if err != nil {
		t.Fatalf("WeekView: %v", err)
	}
	if got := countEntries(view); got != 2 {
		t.Errorf("teacher sees %d entries, want 2", got)
	}
}

func TestWeekViewUnknownRole(t *testing.T) {
	svc, _, _, _ := newCalendarFixture()
	_, err := svc.WeekView(context.Background(), Viewer{Role: "janitor", UserID: 1}, calendar.WeekOf(testNow))
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("err = %v, want ErrUnknownRole", err)
	}
}

func TestWeekViewFailsClosedOnStoreError(t *testing.T) {
	svc, events, rules, enrollments := newCalendarFixture()
	seedRule(rules, 4, "Monday")

	events.listErr = errors.New("connection refused")
	_, err := svc.WeekView(context.Background(), Viewer{Role: "admin", UserID: 1}, calendar.WeekOf(testNow))
	var ferr *calendar.FetchError
	if !errors.As(err, &ferr) || ferr.Op != "events" {
		t.Errorf("err = %v, want FetchError{Op: events}", err)
	}

	events.listErr = nil
	rules.listErr = errors.New("connection refused")
	_, err = svc.WeekView(context.Background(), Viewer{Role: "admin", UserID: 1}, calendar.WeekOf(testNow))
	if !errors.As(err, &ferr) || ferr.Op != "rules" {
		t.Errorf("err = %v, want FetchError{Op: rules}", err)
	}

	rules.listErr = nil
	enrollments.err = errors.New("connection refused")
	_, err = svc.WeekView(context.Background(), Viewer{Role: "student", UserID: 7}, calendar.WeekOf(testNow))
	if !errors.As(err, &ferr) || ferr.Op != "enrollments" {
		t.Errorf("err = %v, want FetchError{Op: enrollments}", err)
	}
}

func TestNavigateDirections(t *testing.T) {
	svc, _, _, _ := newCalendarFixture()
	viewer := Viewer{Role: "admin", UserID: 1}
	ctx := context.Background()

	view, err := svc.Navigate(ctx, viewer, NavNext)
	if err != nil {
		t.Fatalf("Navigate next: %v", err)
	}
	if view.WeekStart != "2024-01-22" {
		t.Errorf("next week = %s, want 2024-01-22", view.WeekStart)
	}

	view, err = svc.Navigate(ctx, viewer, NavPrevious)
	if err != nil {
		t.Fatalf("Navigate previous: %v", err)
	}
	if view.WeekStart != "2024-01-15" {
		t.Errorf("previous week = %s, want 2024-01-15", view.WeekStart)
	}

	// A few hops out, then "current" snaps back to the week containing now.
	if _, err := svc.Navigate(ctx, viewer, NavNext); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := svc.Navigate(ctx, viewer, NavNext); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	view, err = svc.Navigate(ctx, viewer, NavCurrent)
	if err != nil {
		t.Fatalf("Navigate current: %v", err)
	}
	if view.WeekStart != "2024-01-15" {
		t.Errorf("current week = %s, want 2024-01-15", view.WeekStart)
	}
}

func TestNavigatorsAreIsolatedPerViewer(t *testing.T) {
	svc, _, _, _ := newCalendarFixture()
	ctx := context.Background()

	a := Viewer{Role: "student", UserID: 1}
	b := Viewer{Role: "student", UserID: 2}

	if _, err := svc.Navigate(ctx, a, NavNext); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	view, err := svc.Navigate(ctx, b, NavCurrent)
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if view.WeekStart != "2024-01-15" {
		t.Errorf("viewer b moved with viewer a: week = %s", view.WeekStart)
	}
}

func TestViewWeekJumpsToContainingWeek(t *testing.T) {
	svc, _, _, _ := newCalendarFixture()
	viewer := Viewer{Role: "admin", UserID: 1}

	view, err := svc.ViewWeek(context.Background(), viewer, "2024-03-07")
	if err != nil {
		t.Fatalf("ViewWeek: %v", err)
	}
	if view.WeekStart != "2024-03-04" || view.WeekEnd != "2024-03-10" {
		t.Errorf("window = %s..%s, want 2024-03-04..2024-03-10", view.WeekStart, view.WeekEnd)
	}

	if _, err := svc.ViewWeek(context.Background(), viewer, "07-03-2024"); err == nil {
		t.Error("expected error for malformed date")
	}
}

// A fetch that completes after the viewer has navigated again must be
// discarded, not rendered.
func TestNavigateStaleResponse(t *testing.T) {
	svc, _, rules, _ := newCalendarFixture()
	viewer := Viewer{Role: "admin", UserID: 1}

	release := make(chan struct{})
	supersede := make(chan struct{})

	// The rule store blocks the first fetch until the second navigation has
	// gone through.
	blocking := &blockingRuleStore{inner: rules, release: release, entered: make(chan struct{}, 2)}
	svc.rules = blocking

	done := make(chan error, 1)
	go func() {
		_, err := svc.Navigate(context.Background(), viewer, NavNext)
		done <- err
	}()

	<-blocking.entered
	go func() {
		// Second navigation; its own fetch also blocks, so release both
		// after it has bumped the generation.
		_, _ = svc.Navigate(context.Background(), viewer, NavNext)
		close(supersede)
	}()

	// Wait for the second call to enter the store, then let everything go.
	<-blocking.entered
	close(release)
	<-supersede

	if err := <-done; !errors.Is(err, calendar.ErrStaleResponse) {
		t.Errorf("superseded navigation returned %v, want ErrStaleResponse", err)
	}
}

// blockingRuleStore parks ListVisible callers on release and signals each
// arrival on entered.
type blockingRuleStore struct {
	inner   *fakeRuleStore
	release chan struct{}
	entered chan struct{}
}

func (b *blockingRuleStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduleRule, error) {
	return b.inner.GetByID(ctx, id)
}

func (b *blockingRuleStore) ListVisible(ctx context.Context, scope calendar.Scope) ([]model.ScheduleRule, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.inner.ListVisible(ctx, scope)
}

func (b *blockingRuleStore) Create(ctx context.Context, rule *model.ScheduleRule) error {
	return b.inner.Create(ctx, rule)
}

func (b *blockingRuleStore) Delete(ctx context.Context, id uuid.UUID) error {
	return b.inner.Delete(ctx, id)
}
