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

// ClassHandler handles admin-facing class management (CRUD).
type ClassHandler struct {
	classService *service.ClassService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService *service.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// ListClasses godoc
// GET /api/v1/admin/classes?course_id=
// Lists all classes, optionally filtered by course.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	var (
		classes []model.Class
		err     error
	)

	if courseParam := c.Query("course_id"); courseParam != "" {
		courseID, convErr := strconv.Atoi(courseParam)
		if convErr != nil {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
			return
		}
		classes, err = h.classService.ListByCourse(c.Request.Context(), courseID)
	} else {
		classes, err = h.classService.List(c.Request.Context())
	}
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// CreateClassRequest is the payload for creating or updating a class.
type CreateClassRequest struct {
	CourseID int    `json:"course_id" binding:"required,min=1"`
	Name     string `json:"name" binding:"required,min=1,max=120"`
	Capacity int    `json:"capacity" binding:"required,min=1,max=500"`
}

// CreateClass godoc
// POST /api/v1/admin/classes
// Creates a new class under a course.
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		CourseID: req.CourseID,
		Name:     req.Name,
		Capacity: req.Capacity,
	}

	if err := h.classService.Create(c.Request.Context(), class); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				response.Fail(c, http.StatusConflict, response.ErrConflict)
				return
			case "23503": // course_id points nowhere
				response.Fail(c, http.StatusBadRequest, response.ErrNotFound)
				return
			}
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/admin/classes/:id
// Updates an existing class.
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req CreateClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class := &model.Class{
		ID:       id,
		CourseID: req.CourseID,
		Name:     req.Name,
		Capacity: req.Capacity,
	}

	if err := h.classService.Update(c.Request.Context(), class); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	// Fetch updated to get current updated_at timestamp
	updatedClass, _ := h.classService.GetByID(c.Request.Context(), id)

	response.Success(c, http.StatusOK, gin.H{"class": updatedClass})
}

// DeleteClass godoc
// DELETE /api/v1/admin/classes/:id
// Deletes a class by ID. Will fail while enrollments reference it.
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // Foreign key constraint violation
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "class deleted successfully"})
}
