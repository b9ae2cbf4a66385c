package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"rollbook/internal/errors"
	"rollbook/internal/model"
	"rollbook/internal/service"
)

// StudentHandler handles student record endpoints.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// CreateStudentRequest represents a create request. The nine required fields
// mirror the record's required attributes; cgpa and status are optional and
// take their defaults when absent.
type CreateStudentRequest struct {
	RollNumber  string           `json:"rollNumber" validate:"required"`
	FirstName   string           `json:"firstName" validate:"required"`
	LastName    string           `json:"lastName" validate:"required"`
	Email       string           `json:"email" validate:"required,email"`
	Phone       string           `json:"phone" validate:"required"`
	DateOfBirth string           `json:"dateOfBirth" validate:"required"`
	Gender      string           `json:"gender" validate:"required,oneof=Male Female Other"`
	Address     string           `json:"address" validate:"required"`
	Class       string           `json:"class" validate:"required"`
	CGPA        *decimal.Decimal `json:"cgpa"`
	Status      string           `json:"status" validate:"omitempty,oneof=Active Inactive Graduated"`
}

// UpdateStudentRequest represents a partial update. Every field is a
// pointer: nil means "not supplied, keep the current value" while a non-nil
// pointer overwrites, so a supplied cgpa of 0 still counts as supplied.
type UpdateStudentRequest struct {
	RollNumber  *string          `json:"rollNumber" validate:"omitempty,min=1"`
	FirstName   *string          `json:"firstName" validate:"omitempty,min=1"`
	LastName    *string          `json:"lastName" validate:"omitempty,min=1"`
	Email       *string          `json:"email" validate:"omitempty,email"`
	Phone       *string          `json:"phone" validate:"omitempty,min=1"`
	DateOfBirth *string          `json:"dateOfBirth" validate:"omitempty,min=1"`
	Gender      *string          `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address     *string          `json:"address" validate:"omitempty,min=1"`
	Class       *string          `json:"class" validate:"omitempty,min=1"`
	CGPA        *decimal.Decimal `json:"cgpa"`
	Status      *string          `json:"status" validate:"omitempty,oneof=Active Inactive Graduated"`
}

// StudentResponse wraps a mutated record with a confirmation message.
type StudentResponse struct {
	Message string         `json:"message"`
	Student *model.Student `json:"student"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListStudents godoc
// @Summary List the caller's student records
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Student
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students [get]
func (h *StudentHandler) ListStudents(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
	}

	students, err := h.studentService.ListStudents(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, students)
}

// GetStudent godoc
// @Summary Get a student record by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} model.Student
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid student ID"})
	}

	student, err := h.studentService.GetStudent(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, student)
}

// CreateStudent godoc
// @Summary Create a student record
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateStudentRequest true "Student data"
// @Success 201 {object} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
	}

	var req CreateStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "please provide all required fields"})
	}

	dateOfBirth, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}

	student := &model.Student{
		RollNumber:  req.RollNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Gender:      model.Gender(req.Gender),
		Address:     req.Address,
		Class:       req.Class,
		Status:      model.StudentStatus(req.Status),
	}
	if req.CGPA != nil {
		student.CGPA = *req.CGPA
	}

	created, err := h.studentService.CreateStudent(c.Request().Context(), userID, student)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, StudentResponse{
		Message: "Student created successfully",
		Student: created,
	})
}

// UpdateStudent godoc
// @Summary Update a student record
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body UpdateStudentRequest true "Fields to update"
// @Success 200 {object} StudentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid student ID"})
	}

	var req UpdateStudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}

	update := service.StudentUpdate{
		RollNumber: req.RollNumber,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Class:      req.Class,
		CGPA:       req.CGPA,
	}
	if req.DateOfBirth != nil {
		dateOfBirth, err := parseDateOfBirth(*req.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
		}
		update.DateOfBirth = &dateOfBirth
	}
	if req.Gender != nil {
		gender := model.Gender(*req.Gender)
		update.Gender = &gender
	}
	if req.Status != nil {
		status := model.StudentStatus(*req.Status)
		update.Status = &status
	}

	updated, err := h.studentService.UpdateStudent(c.Request().Context(), userID, id, update)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, StudentResponse{
		Message: "Student updated successfully",
		Student: updated,
	})
}

// DeleteStudent godoc
// @Summary Delete a student record
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid student ID"})
	}

	if err := h.studentService.DeleteStudent(c.Request().Context(), userID, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Student deleted successfully"})
}

// parseDateOfBirth accepts date-only values or full RFC 3339 timestamps.
func parseDateOfBirth(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, errors.ErrInvalidDateOfBirth
}
