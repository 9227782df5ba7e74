package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aks1489/icstconnect-sub000/internal/calendar"
	"github.com/aks1489/icstconnect-sub000/internal/middleware"
	"github.com/aks1489/icstconnect-sub000/internal/response"
	"github.com/aks1489/icstconnect-sub000/internal/service"
)

// CalendarHandler serves the merged weekly calendar for every role.
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// GetWeek godoc
// GET /api/v1/.../calendar?nav=next|previous|current
// GET /api/v1/.../calendar?week=YYYY-MM-DD
// Returns the viewer's merged week. A request superseded by a newer
// navigation for the same viewer returns 204 and no body; the client keeps
// whatever week the winning request rendered.
func (h *CalendarHandler) GetWeek(c *gin.Context) {
	viewer, ok := middleware.Viewer(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var (
		view *calendar.WeekView
		err  error
	)

	if week := c.Query("week"); week != "" {
		view, err = h.calendarService.ViewWeek(c.Request.Context(), viewer, week)
	} else {
		nav := c.DefaultQuery("nav", service.NavCurrent)
		switch nav {
		case service.NavNext, service.NavPrevious, service.NavCurrent:
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidNavigation)
			return
		}
		view, err = h.calendarService.Navigate(c.Request.Context(), viewer, nav)
	}

	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrStaleResponse):
			c.Status(http.StatusNoContent)
		case errors.Is(err, service.ErrUnknownRole):
			response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		default:
			var fe *calendar.FetchError
			if errors.As(err, &fe) {
				response.Fail(c, http.StatusServiceUnavailable, response.ErrCalendarUnavailable)
				return
			}
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidWeekDate)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"week": view})
}
