package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is the application-level error surface. Message is safe to
// show to clients; Err carries the internal cause for logging only.
type ServiceError struct {
	Code       string
	Message    string
	Details    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotConfigured    = "NOT_CONFIGURED"
	ErrCodeNoActiveLocation = "NO_ACTIVE_LOCATION"
	ErrCodeDeclined         = "PAYMENT_DECLINED"
	ErrCodeUpstream         = "UPSTREAM_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

func NewValidationError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewNotConfiguredError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotConfigured,
		Message:    "Payment system is not configured",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewNoActiveLocationError() *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNoActiveLocation,
		Message:    "No active locations found",
		HTTPStatus: http.StatusNotFound,
	}
}

// NewDeclinedError carries the first upstream error detail, if any. The
// full upstream body never reaches the client.
func NewDeclinedError(detail string, err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeDeclined,
		Message:    "Payment failed",
		Details:    detail,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewUpstreamError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeUpstream,
		Message:    "Internal payment processing error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "An internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}
