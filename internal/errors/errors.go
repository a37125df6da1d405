// Package errors defines the error kinds a CV request can end in and how
// each one is rendered to the caller.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the kind of failure.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeDatabase   ErrorType = "DATABASE"
	ErrorTypeInternal   ErrorType = "INTERNAL"
)

// Titles used in the "error" field of response bodies.
const (
	TitleCVNotFound    = "CV not found"
	TitleDatabaseError = "Database error"
	TitleInternalError = "Internal server error"

	databaseMessage = "An error occurred while accessing the database"
)

// AppError is a failure that already knows its HTTP status and body.
type AppError struct {
	Type       ErrorType
	Title      string
	Message    string
	Details    string
	Code       string
	Cause      error
	HTTPStatus int
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Body is the JSON payload sent to the caller for this error.
func (e *AppError) Body() map[string]any {
	body := map[string]any{
		"error":   e.Title,
		"message": e.Message,
	}
	if e.Type == ErrorTypeDatabase {
		body["details"] = e.Details
	}
	return body
}

// NewMissingParameterError reports a required query parameter that was not supplied.
func NewMissingParameterError(name string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Title:      fmt.Sprintf("Missing required parameter: %s", name),
		Message:    fmt.Sprintf("Please provide an %s query parameter", name),
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewCVNotFoundError reports that no record exists for id.
func NewCVNotFoundError(id string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Title:      TitleCVNotFound,
		Message:    fmt.Sprintf("No CV found with id: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewDatabaseError wraps a record store service failure.
func NewDatabaseError(se *ServiceError) *AppError {
	return &AppError{
		Type:       ErrorTypeDatabase,
		Title:      TitleDatabaseError,
		Message:    databaseMessage,
		Details:    se.Message,
		Code:       se.Code,
		Cause:      se,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalError wraps any failure that is not a store service error.
func NewInternalError(cause error) *AppError {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Type:       ErrorTypeInternal,
		Title:      TitleInternalError,
		Message:    msg,
		Cause:      cause,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Classify turns any error into an AppError. Errors that already are
// AppErrors pass through; store service errors become database errors;
// everything else is internal.
func Classify(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr
	}
	if se := GetServiceError(err); se != nil {
		return NewDatabaseError(se)
	}
	return NewInternalError(err)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return IsType(err, ErrorTypeDatabase)
}
