package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError             ErrorType = "VALIDATION_ERROR"
	NotFoundError               ErrorType = "NOT_FOUND"
	ServerError                 ErrorType = "SERVER_ERROR"
	ExternalServiceError        ErrorType = "EXTERNAL_SERVICE_ERROR"
	RecorderError               ErrorType = "RECORDER_ERROR"
	InvalidStateTransitionError ErrorType = "INVALID_STATE_TRANSITION"
	RateLimitError              ErrorType = "RATE_LIMIT_EXCEEDED"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status code for the error, defaulting to 500.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return http.StatusInternalServerError
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// Helper functions for common errors
func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    fmt.Sprintf("%s not found", entity),
		Detail:     fmt.Sprintf("ID: %v", id),
		HTTPStatus: http.StatusNotFound,
	}
}

func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// ExternalServiceFailed wraps an error from a downstream collaborator
// (marketplace API, transcription service).
func ExternalServiceFailed(service string, err error) *AppError {
	return &AppError{
		Type:       ExternalServiceError,
		Message:    fmt.Sprintf("%s request failed", service),
		Detail:     err.Error(),
		HTTPStatus: http.StatusBadGateway,
		Raw:        err,
	}
}

// RecorderUnavailable signals that the audio capture resource could not be
// acquired (permission denied, device busy).
func RecorderUnavailable(err error) *AppError {
	return &AppError{
		Type:       RecorderError,
		Message:    "Microphone unavailable",
		Detail:     err.Error(),
		HTTPStatus: http.StatusServiceUnavailable,
		Raw:        err,
	}
}

// InvalidStateTransition signals a voice session call that is not valid in the
// current state (e.g., starting a recording while processing is in flight).
func InvalidStateTransition(current, attempted string) *AppError {
	return &AppError{
		Type:       InvalidStateTransitionError,
		Message:    "Invalid session state transition",
		Detail:     fmt.Sprintf("Cannot %s while session is %s", attempted, current),
		HTTPStatus: http.StatusConflict,
	}
}

// RateLimitExceeded creates an error for rate-limited requests. retryAfter is
// reported in seconds.
func RateLimitExceeded(message string, retryAfter int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Message:    message,
		Detail:     fmt.Sprintf("Retry after %d seconds", retryAfter),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case ExternalServiceError:
		return http.StatusBadGateway
	case RecorderError:
		return http.StatusServiceUnavailable
	case InvalidStateTransitionError:
		return http.StatusConflict
	case RateLimitError:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
