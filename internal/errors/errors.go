package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrStudentNotFound is returned when no student exists with the given ID.
	ErrStudentNotFound = errors.New("student not found")
	// ErrNotStudentOwner is returned when the record exists but belongs to another user.
	ErrNotStudentOwner = errors.New("not authorized to access this student")
	// ErrRollNumberExists is returned when a roll number is already taken.
	ErrRollNumberExists = errors.New("roll number already exists")
	// ErrInvalidDateOfBirth is returned when a date of birth cannot be parsed.
	ErrInvalidDateOfBirth = errors.New("invalid date of birth")
	// ErrInvalidCGPA is returned when a CGPA lies outside [0, 4].
	ErrInvalidCGPA = errors.New("cgpa must be between 0 and 4")
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unrecognized errors
// surface as 500 carrying the underlying failure description.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrStudentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotStudentOwner):
		return NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrRollNumberExists),
		errors.Is(err, ErrInvalidDateOfBirth),
		errors.Is(err, ErrInvalidCGPA):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
