package errors

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ServiceError is a failure reported by the record store service itself,
// carrying its machine readable code and human readable message.
type ServiceError struct {
	Operation string
	Code      string
	Message   string
	Cause     error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %s - %s", e.Operation, e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// GetServiceError extracts a ServiceError from an error chain
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// FromAPIError converts an AWS API error into a ServiceError. Errors that did
// not come back from the service (marshalling, context cancellation, client
// side validation) are returned unchanged.
func FromAPIError(operation string, err error) error {
	if err == nil {
		return nil
	}
	var ae smithy.APIError
	if !errors.As(err, &ae) {
		return err
	}
	return &ServiceError{
		Operation: operation,
		Code:      ae.ErrorCode(),
		Message:   ae.ErrorMessage(),
		Cause:     err,
	}
}

// HasCode reports whether err is a ServiceError with the given code.
func HasCode(err error, code string) bool {
	se := GetServiceError(err)
	return se != nil && se.Code == code
}
