package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/response"
	"github.com/aks1489/icstconnect-sub000/internal/service"
	"github.com/aks1489/icstconnect-sub000/internal/validator"
)

// EventHandler handles admin-facing one-off event management.
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents godoc
// GET /api/v1/admin/events?from=YYYY-MM-DD&to=YYYY-MM-DD
// Lists events overlapping the range. Defaults to the next 30 days.
func (h *EventHandler) ListEvents(c *gin.Context) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 30)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(calendar.DateLayout, v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidWeekDate)
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(calendar.DateLayout, v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidWeekDate)
			return
		}
		to = parsed
	}

	events, err := h.eventService.ListRange(c.Request.Context(), from, to)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// CreateExtraClass godoc
// POST /api/v1/admin/events/extra-class
// Creates a one-off extra class session for a course/class pair.
func (h *EventHandler) CreateExtraClass(c *gin.Context) {
	var req model.CreateExtraClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ev, err := h.eventService.CreateExtraClass(c.Request.Context(), &req)
	if err != nil {
		h.failCreate(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": ev})
}

// CreateHoliday godoc
// POST /api/v1/admin/events/holiday
// Creates a global all-day holiday.
func (h *EventHandler) CreateHoliday(c *gin.Context) {
	var req model.CreateHolidayRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ev, err := h.eventService.CreateHoliday(c.Request.Context(), &req)
	if err != nil {
		h.failCreate(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": ev})
}

// CreateEvent godoc
// POST /api/v1/admin/events
// Creates a generic event, optionally scoped to a course or class.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	ev, err := h.eventService.CreateGeneric(c.Request.Context(), &req)
	if err != nil {
		h.failCreate(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": ev})
}

// DeleteEvent godoc
// DELETE /api/v1/admin/events/:id
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "event deleted successfully"})
}

func (h *EventHandler) failCreate(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCourseNotFound), errors.Is(err, service.ErrClassNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrClassMismatch):
		response.Fail(c, http.StatusBadRequest, response.ErrClassMismatch)
	case errors.Is(err, service.ErrBadStartDate), errors.Is(err, service.ErrBadStartTime):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"detail": err.Error(),
		})
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
