package square

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no access credential is configured.
var ErrNotConfigured = errors.New("payment provider access token not configured")

// ErrorDetail is one entry of the upstream error envelope.
type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field,omitempty"`
}

type errorEnvelope struct {
	Errors []ErrorDetail `json:"errors"`
}

// APIError is a non-success response from the upstream payment API. The
// full body is kept for server-side logging; only the first detail string
// is ever surfaced to clients.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
	Body       []byte
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("upstream error [%s]: %s (status: %d)", e.Errors[0].Code, e.Errors[0].Detail, e.StatusCode)
	}
	return fmt.Sprintf("upstream error (status: %d)", e.StatusCode)
}

// FirstDetail returns the first upstream error detail, or "" when the
// error list is empty.
func (e *APIError) FirstDetail() string {
	if len(e.Errors) > 0 {
		return e.Errors[0].Detail
	}
	return ""
}

func (e *APIError) IsRetryable() bool {
	return e.StatusCode >= 500
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}
