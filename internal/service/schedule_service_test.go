package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

func newScheduleFixture() (*ScheduleService, *fakeRuleStore, *fakeEventStore) {
	rules := newFakeRuleStore()
	events := newFakeEventStore()
	courses, classes := testCatalog()
	svc := NewScheduleService(rules, events, courses, classes, nil, testLogger())
	return svc, rules, events
}

func validRuleRequest() *model.CreateScheduleRuleRequest {
	return &model.CreateScheduleRuleRequest{
		CourseID:        1,
		ClassID:         4,
		Weekdays:        []string{"Monday", "Wednesday"},
		StartTime:       "18:00:00",
		DurationMinutes: 90,
		StartDate:       "2024-01-01",
	}
}

func TestCreateRuleLazy(t *testing.T) {
	svc, rules, events := newScheduleFixture()

	result, err := svc.CreateRule(context.Background(), validRuleRequest(), false)
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if result.Materialized || result.EventsCreated != 0 {
		t.Errorf("lazy create reported materialization: %+v", result)
	}
	if result.Rule.CourseName != "Full Stack Web Development" || result.Rule.CourseColor != "#2563eb" {
		t.Errorf("display attributes not filled: %+v", result.Rule)
	}
	if len(rules.rules) != 1 {
		t.Errorf("rule store holds %d rules, want 1", len(rules.rules))
	}
	if len(events.events) != 0 {
		t.Errorf("lazy create wrote %d events, want 0", len(events.events))
	}
}

func TestCreateRuleEagerMaterializesCampaign(t *testing.T) {
	svc, _, events := newScheduleFixture()

	// One legacy month (30 days) from Monday Jan 1 on Mon/Wed is 9 sessions.
	result, err := svc.CreateRule(context.Background(), validRuleRequest(), true)
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if !result.Materialized {
		t.Error("eager create did not report materialization")
	}
	if result.EventsCreated != 9 {
		t.Errorf("created %d events, want 9", result.EventsCreated)
	}
	if len(events.events) != 9 {
		t.Fatalf("event store holds %d events, want 9", len(events.events))
	}

	first := events.events[0]
	if first.Title != "Full Stack Web Development Class" || first.Type != model.EventClass {
		t.Errorf("session event = %q %s", first.Title, first.Type)
	}
	wantStart := time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC)
	if !first.StartAt.Equal(wantStart) {
		t.Errorf("first session starts %v, want %v", first.StartAt, wantStart)
	}
	if !first.EndAt.Equal(wantStart.Add(90 * time.Minute)) {
		t.Errorf("first session ends %v", first.EndAt)
	}
	if first.SourceRuleID == nil || *first.SourceRuleID != result.Rule.ID {
		t.Error("session not linked to its rule")
	}

	last := events.events[8]
	if got := last.StartAt.Format("2006-01-02"); got != "2024-01-29" {
		t.Errorf("last session on %s, want 2024-01-29", got)
	}
}

func TestCreateRuleValidatesBeforePersisting(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*model.CreateScheduleRuleRequest)
		wantErr error
	}{
		{"missing course", func(r *model.CreateScheduleRuleRequest) { r.CourseID = 0 }, ErrCourseRequired},
		{"missing class", func(r *model.CreateScheduleRuleRequest) { r.ClassID = 0 }, ErrClassRequired},
		{"no weekdays", func(r *model.CreateScheduleRuleRequest) { r.Weekdays = nil }, ErrWeekdaysRequired},
		{"bad weekday", func(r *model.CreateScheduleRuleRequest) { r.Weekdays = []string{"Funday"} }, ErrInvalidWeekday},
		{"lowercase weekday", func(r *model.CreateScheduleRuleRequest) { r.Weekdays = []string{"monday"} }, ErrInvalidWeekday},
		{"bad duration", func(r *model.CreateScheduleRuleRequest) { r.DurationMinutes = 75 }, ErrBadDuration},
		{"bad start time", func(r *model.CreateScheduleRuleRequest) { r.StartTime = "6pm" }, ErrBadStartTime},
		{"bad start date", func(r *model.CreateScheduleRuleRequest) { r.StartDate = "01-01-2024" }, ErrBadStartDate},
		{"unknown course", func(r *model.CreateScheduleRuleRequest) { r.CourseID = 99 }, ErrCourseNotFound},
		{"unknown class", func(r *model.CreateScheduleRuleRequest) { r.ClassID = 99 }, ErrClassNotFound},
		{"class of other course", func(r *model.CreateScheduleRuleRequest) { r.ClassID = 5 }, ErrClassMismatch},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc, rules, events := newScheduleFixture()
			req := validRuleRequest()
			c.mutate(req)

			_, err := svc.CreateRule(context.Background(), req, true)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("err = %v, want %v", err, c.wantErr)
			}
			if len(rules.rules) != 0 || len(events.events) != 0 {
				t.Error("rejected request left rows behind")
			}
		})
	}
}

func TestCreateRuleDedupesWeekdays(t *testing.T) {
	svc, _, _ := newScheduleFixture()
	req := validRuleRequest()
	req.Weekdays = []string{"Monday", "Monday", "Wednesday"}

	result, err := svc.CreateRule(context.Background(), req, false)
	if err != nil {
		t.Fatalf("CreateRule: %v", err)
	}
	if len(result.Rule.Weekdays) != 2 {
		t.Errorf("weekdays = %v, want deduped pair", result.Rule.Weekdays)
	}
}

func TestCreateRulePartialMaterialization(t *testing.T) {
	svc, rules, events := newScheduleFixture()
	events.batchLimit = 4 // insert dies after 4 of 9 rows

	result, err := svc.CreateRule(context.Background(), validRuleRequest(), true)

	var perr *PartialMaterializationError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want PartialMaterializationError", err)
	}
	if perr.Expected != 9 || perr.Created != 4 {
		t.Errorf("perr = %d/%d, want 4/9", perr.Created, perr.Expected)
	}
	// The rule header survives for reconciliation.
	if _, ok := rules.rules[perr.RuleID]; !ok {
		t.Error("rule header missing after partial materialization")
	}
	if result == nil || result.EventsCreated != 4 {
		t.Errorf("result = %+v, want 4 events created", result)
	}
}

func TestRematerializeInsertsOnlyMissing(t *testing.T) {
	svc, _, events := newScheduleFixture()
	events.batchLimit = 4

	_, err := svc.CreateRule(context.Background(), validRuleRequest(), true)
	var perr *PartialMaterializationError
	if !errors.As(err, &perr) {
		t.Fatalf("setup err = %v", err)
	}

	events.batchLimit = -1
	created, err := svc.Rematerialize(context.Background(), perr.RuleID)
	if err != nil {
		t.Fatalf("Rematerialize: %v", err)
	}
	if created != 5 {
		t.Errorf("rematerialized %d sessions, want 5", created)
	}
	if len(events.events) != 9 {
		t.Errorf("event store holds %d sessions, want 9", len(events.events))
	}

	// No duplicates on a second pass.
	created, err = svc.Rematerialize(context.Background(), perr.RuleID)
	if err != nil {
		t.Fatalf("second Rematerialize: %v", err)
	}
	if created != 0 {
		t.Errorf("fully materialized rule created %d more sessions", created)
	}
	if len(events.events) != 9 {
		t.Errorf("event store grew to %d sessions", len(events.events))
	}
}

func TestRematerializeUnknownRule(t *testing.T) {
	svc, _, _ := newScheduleFixture()
	if _, err := svc.Rematerialize(context.Background(), uuid.New()); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("err = %v, want ErrRuleNotFound", err)
	}
}

func TestDiscardRuleRemovesRuleAndSessions(t *testing.T) {
	svc, rules, events := newScheduleFixture()

	result, err := svc.CreateRule(context.Background(), validRuleRequest(), true)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	// An unrelated event must survive the discard.
	other := model.Event{ID: uuid.New(), Type: model.EventHoliday, Title: "Holiday",
		StartAt: time.Date(2024, time.January, 26, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, time.January, 26, 0, 0, 0, 0, time.UTC)}
	events.events = append(events.events, other)

	removed, err := svc.DiscardRule(context.Background(), result.Rule.ID)
	if err != nil {
		t.Fatalf("DiscardRule: %v", err)
	}
	if removed != 9 {
		t.Errorf("removed %d sessions, want 9", removed)
	}
	if len(rules.rules) != 0 {
		t.Error("rule survived discard")
	}
	if len(events.events) != 1 || events.events[0].ID != other.ID {
		t.Errorf("unrelated events disturbed: %+v", events.events)
	}
}

func TestDiscardUnknownRule(t *testing.T) {
	svc, _, _ := newScheduleFixture()
	if _, err := svc.DiscardRule(context.Background(), uuid.New()); !errors.Is(err, ErrRuleNotFound) {
		t.Errorf("err = %v, want ErrRuleNotFound", err)
	}
}
