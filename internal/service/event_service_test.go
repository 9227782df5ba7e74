package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/model"
)

func newEventFixture() (*EventService, *fakeEventStore) {
	events := newFakeEventStore()
	courses, classes := testCatalog()
	return NewEventService(events, courses, classes, nil, testLogger()), events
}

func TestCreateExtraClass(t *testing.T) {
	svc, events := newEventFixture()

	ev, err := svc.CreateExtraClass(context.Background(), &model.CreateExtraClassRequest{
		Title:           "Doubt Clearing Session",
		CourseID:        1,
		ClassID:         4,
		Date:            "2024-01-20",
		StartTime:       "10:00:00",
		DurationMinutes: 90,
	})
	if err != nil {
		t.Fatalf("CreateExtraClass: %v", err)
	}
	if ev.Type != model.EventExtraClass {
		t.Errorf("type = %s", ev.Type)
	}
	wantStart := time.Date(2024, time.January, 20, 10, 0, 0, 0, time.UTC)
	if !ev.StartAt.Equal(wantStart) || !ev.EndAt.Equal(wantStart.Add(90*time.Minute)) {
		t.Errorf("interval = %v..%v", ev.StartAt, ev.EndAt)
	}
	if ev.ClassID == nil || *ev.ClassID != 4 || ev.CourseID == nil || *ev.CourseID != 1 {
		t.Errorf("scope = course %v class %v", ev.CourseID, ev.ClassID)
	}
	if len(events.events) != 1 {
		t.Errorf("store holds %d events", len(events.events))
	}
}

func TestCreateExtraClassRejectsMismatchedClass(t *testing.T) {
	svc, events := newEventFixture()

	_, err := svc.CreateExtraClass(context.Background(), &model.CreateExtraClassRequest{
		Title:           "Wrong batch",
		CourseID:        1,
		ClassID:         5, // belongs to course 2
		Date:            "2024-01-20",
		StartTime:       "10:00:00",
		DurationMinutes: 60,
	})
	if !errors.Is(err, ErrClassMismatch) {
		t.Fatalf("err = %v, want ErrClassMismatch", err)
	}
	if len(events.events) != 0 {
		t.Error("rejected request left rows behind")
	}
}

func TestCreateHolidayStoresZeroWidthMidnight(t *testing.T) {
	svc, _ := newEventFixture()

	ev, err := svc.CreateHoliday(context.Background(), &model.CreateHolidayRequest{
		Title: "Republic Day",
		Date:  "2024-01-26",
	})
	if err != nil {
		t.Fatalf("CreateHoliday: %v", err)
	}
	midnight := time.Date(2024, time.January, 26, 0, 0, 0, 0, time.UTC)
	if !ev.StartAt.Equal(midnight) || !ev.EndAt.Equal(midnight) {
		t.Errorf("holiday interval = %v..%v, want zero width at midnight", ev.StartAt, ev.EndAt)
	}
	if ev.ClassID != nil || ev.CourseID != nil {
		t.Error("holiday must be globally scoped")
	}
}

func TestCreateGenericValidatesOptionalScope(t *testing.T) {
	svc, _ := newEventFixture()
	start := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	// Unscoped event needs no catalog lookups.
	if _, err := svc.CreateGeneric(context.Background(), &model.CreateEventRequest{
		Title: "Orientation", StartAt: &start, EndAt: &end,
	}); err != nil {
		t.Fatalf("unscoped: %v", err)
	}

	courseID, classID := 1, 5
	_, err := svc.CreateGeneric(context.Background(), &model.CreateEventRequest{
		Title: "Mismatch", StartAt: &start, EndAt: &end,
		CourseID: &courseID, ClassID: &classID,
	})
	if !errors.Is(err, ErrClassMismatch) {
		t.Errorf("err = %v, want ErrClassMismatch", err)
	}

	missing := 99
	_, err = svc.CreateGeneric(context.Background(), &model.CreateEventRequest{
		Title: "Ghost course", StartAt: &start, EndAt: &end, CourseID: &missing,
	})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	svc, events := newEventFixture()

	ev, err := svc.CreateHoliday(context.Background(), &model.CreateHolidayRequest{
		Title: "Republic Day", Date: "2024-01-26",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := svc.Delete(context.Background(), ev.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(events.events) != 0 {
		t.Error("event survived delete")
	}

	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("err = %v, want ErrEventNotFound", err)
	}
}
