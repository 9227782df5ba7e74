package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aks1489/icstconnect-sub000/internal/model"
	"github.com/aks1489/icstconnect-sub000/internal/response"
	"github.com/aks1489/icstconnect-sub000/internal/service"
	"github.com/aks1489/icstconnect-sub000/internal/validator"
)

// CourseHandler handles admin-facing course catalog management.
type CourseHandler struct {
	courseService *service.CourseService
	classService  *service.ClassService
}

// NewCourseHandler creates a new CourseHandler.
func NewCourseHandler(courseService *service.CourseService, classService *service.ClassService) *CourseHandler {
	return &CourseHandler{courseService: courseService, classService: classService}
}

// ListCourses godoc
// GET /api/v1/admin/courses
// Lists all courses without pagination.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

// GetCourse godoc
// GET /api/v1/admin/courses/:id
// Returns one course together with its classes.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	course, err := h.courseService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	classes, err := h.classService.ListByCourse(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"course": course, "classes": classes})
}

// CreateCourse godoc
// POST /api/v1/admin/courses
// Creates a new course.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		Name:           req.Name,
		Code:           req.Code,
		Color:          req.Color,
		DurationMonths: req.DurationMonths,
		Description:    req.Description,
	}

	if err := h.courseService.Create(c.Request.Context(), course); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

// UpdateCourse godoc
// PUT /api/v1/admin/courses/:id
// Updates an existing course.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.CreateCourseRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	course := &model.Course{
		ID:             id,
		Name:           req.Name,
		Code:           req.Code,
		Color:          req.Color,
		DurationMonths: req.DurationMonths,
		Description:    req.Description,
	}

	if err := h.courseService.Update(c.Request.Context(), course); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// Fetch updated to get current updated_at timestamp
	updatedCourse, _ := h.courseService.GetByID(c.Request.Context(), id)

	response.Success(c, http.StatusOK, gin.H{"course": updatedCourse})
}

// DeleteCourse godoc
// DELETE /api/v1/admin/courses/:id
// Deletes a course by ID. Will fail while classes reference it.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.courseService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "course deleted successfully"})
}
