package courseapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrUnauthorized is returned when the server rejects the attached
	// credential (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAccessDenied is returned when the credential is valid but lacks
	// the required role (HTTP 403).
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound is returned when the requested entity does not exist
	// (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrServerUnreachable is returned when the API server cannot be
	// contacted at all.
	ErrServerUnreachable = errors.New("server unreachable")

	// ErrInvalidResponse is returned when a response decodes but fails
	// schema validation.
	ErrInvalidResponse = errors.New("invalid response")
)

// APIError is returned for any non-2xx response from the API server.
// It carries the server's own error message when one was provided.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the server-provided error message, if any.
	Message string
	// RequestID is the client-generated identifier sent with the request.
	RequestID string
}

// Error returns a human-readable description of the failure.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// Is reports whether this error matches the target sentinel.
// 401, 403, and 404 responses match ErrUnauthorized, ErrAccessDenied,
// and ErrNotFound respectively.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == 401
	case ErrAccessDenied:
		return e.Status == 403
	case ErrNotFound:
		return e.Status == 404
	}
	return false
}

// ServerUnreachableError is returned when the API server cannot be
// contacted (DNS failure, connection refused, timeout).
type ServerUnreachableError struct {
	// Cause is the underlying transport error.
	Cause error
}

// Error returns a human-readable description of the connection failure.
func (e *ServerUnreachableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("server unreachable: %v", e.Cause)
	}
	return "server unreachable"
}

// Unwrap returns the underlying transport error.
func (e *ServerUnreachableError) Unwrap() error {
	return e.Cause
}

// Is reports whether this error matches ErrServerUnreachable.
func (e *ServerUnreachableError) Is(target error) bool {
	return target == ErrServerUnreachable
}

// ResponseValidationError is returned when a response body decodes but
// does not satisfy the documented schema. The raw decode result is
// discarded rather than handed to the caller partially filled.
type ResponseValidationError struct {
	// Op is the gateway operation that received the bad response.
	Op string
	// Err is the underlying validation error.
	Err error
}

// Error returns a human-readable description of the schema violation.
func (e *ResponseValidationError) Error() string {
	return fmt.Sprintf("%s: response failed schema validation: %v", e.Op, e.Err)
}

// Unwrap returns the underlying validation error.
func (e *ResponseValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches ErrInvalidResponse.
func (e *ResponseValidationError) Is(target error) bool {
	return target == ErrInvalidResponse
}
