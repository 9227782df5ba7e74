package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aks1489/icstconnect-sub000/internal/middleware"
	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/response"
	"github.com/aks1489/icstconnect-sub000/internal/service"
	"github.com/aks1489/icstconnect-sub000/internal/validator"
)

// EnrollmentHandler handles enrollment management and the student's own
// enrollment listing.
type EnrollmentHandler struct {
	enrollmentService *service.EnrollmentService
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(enrollmentService *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// ListEnrollments godoc
// GET /api/v1/admin/enrollments?student_id= | ?class_id=
// Lists enrollments of one student or one class.
func (h *EnrollmentHandler) ListEnrollments(c *gin.Context) {
	if v := c.Query("student_id"); v != "" {
		studentID, err := strconv.Atoi(v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		enrollments, err := h.enrollmentService.ListByStudent(c.Request.Context(), studentID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
		return
	}

	if v := c.Query("class_id"); v != "" {
		classID, err := strconv.Atoi(v)
		if err != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		enrollments, err := h.enrollmentService.ListByClass(c.Request.Context(), classID)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
		return
	}

	response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
}

// ListMyEnrollments godoc
// GET /api/v1/student/enrollments
// Lists the authenticated student's own enrollments.
func (h *EnrollmentHandler) ListMyEnrollments(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	enrollments, err := h.enrollmentService.ListByStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollments": enrollments})
}

// CreateEnrollment godoc
// POST /api/v1/admin/enrollments
// Enrolls a student into a class.
func (h *EnrollmentHandler) CreateEnrollment(c *gin.Context) {
	var req model.CreateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request.Context(), &req)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // already enrolled
				response.Fail(c, http.StatusConflict, response.ErrConflict)
				return
			case "23503": // unknown student or class
				response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
				return
			}
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"enrollment": enrollment})
}

// UpdateEnrollment godoc
// PUT /api/v1/admin/enrollments/:id
// Changes an enrollment's status.
func (h *EnrollmentHandler) UpdateEnrollment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateEnrollmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.enrollmentService.UpdateStatus(c.Request.Context(), id, model.EnrollmentStatus(req.Status)); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment updated successfully"})
}

// DeleteEnrollment godoc
// DELETE /api/v1/admin/enrollments/:id
func (h *EnrollmentHandler) DeleteEnrollment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.enrollmentService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "enrollment deleted successfully"})
}
