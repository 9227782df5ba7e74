package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aks1489/icstconnect-sub000/internal/config"
	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/response"
	"github.com/aks1489/icstconnect-sub000/internal/service"
	"github.com/aks1489/icstconnect-sub000/internal/validator"
)

// ScheduleHandler handles admin-facing schedule rule management.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
	cfg             *config.Config
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService *service.ScheduleService, cfg *config.Config) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, cfg: cfg}
}

// ListRules godoc
// GET /api/v1/admin/schedule-rules
// Lists all schedule rules.
func (h *ScheduleHandler) ListRules(c *gin.Context) {
	rules, err := h.scheduleService.ListRules(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rules": rules})
}

// GetRule godoc
// GET /api/v1/admin/schedule-rules/:id
func (h *ScheduleHandler) GetRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	rule, err := h.scheduleService.GetRule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rule": rule})
}

// CreateRule godoc
// POST /api/v1/admin/schedule-rules
// Creates a weekly recurrence rule. With EAGER_MATERIALIZE enabled the
// campaign's sessions are bulk-inserted as well; if that insert fails after
// the rule header committed, the response reports the partial state so the
// operator can retry or discard.
func (h *ScheduleHandler) CreateRule(c *gin.Context) {
	var req model.CreateScheduleRuleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.scheduleService.CreateRule(c.Request.Context(), &req, h.cfg.EagerMaterialize)
	if err != nil {
		var perr *service.PartialMaterializationError
		switch {
		case errors.As(err, &perr):
			response.FailWithFields(c, http.StatusInternalServerError, response.ErrPartialMaterialization, map[string]string{
				"rule_id":  perr.RuleID.String(),
				"expected": strconv.Itoa(perr.Expected),
				"created":  strconv.Itoa(perr.Created),
			})
		case errors.Is(err, service.ErrCourseNotFound), errors.Is(err, service.ErrClassNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrClassMismatch):
			response.Fail(c, http.StatusBadRequest, response.ErrClassMismatch)
		case errors.Is(err, service.ErrWeekdaysRequired),
			errors.Is(err, service.ErrInvalidWeekday),
			errors.Is(err, service.ErrBadDuration),
			errors.Is(err, service.ErrBadStartTime),
			errors.Is(err, service.ErrBadStartDate):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
				"detail": err.Error(),
			})
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"result": result})
}

// RematerializeRule godoc
// POST /api/v1/admin/schedule-rules/:id/rematerialize
// Inserts the rule's missing sessions. The retry half of partial
// materialization recovery.
func (h *ScheduleHandler) RematerializeRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	created, err := h.scheduleService.Rematerialize(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events_created": created})
}

// DeleteRule godoc
// DELETE /api/v1/admin/schedule-rules/:id
// Discards a rule and every event it materialized.
func (h *ScheduleHandler) DeleteRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	removed, err := h.scheduleService.DiscardRule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events_removed": removed})
}
