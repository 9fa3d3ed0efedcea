// Package errors provides standardized error handling for the skill request pipeline.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrCodeNoMatchingHandler  ErrorCode = "NO_MATCHING_HANDLER"
	ErrCodeHandlerPanic       ErrorCode = "HANDLER_PANIC"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Err       error                  `json:"-"`
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Err
}

// Is reports a match on error code, so the sentinels below work with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is matching. Never return these directly.
var (
	ErrCatalogUnavailable = &StandardError{Code: ErrCodeCatalogUnavailable}
	ErrInvalidRequest     = &StandardError{Code: ErrCodeInvalidRequest}
	ErrNoMatchingHandler  = &StandardError{Code: ErrCodeNoMatchingHandler}
	ErrHandlerPanic       = &StandardError{Code: ErrCodeHandlerPanic}
)

// NewCatalogUnavailableError creates a retryable catalog transport error.
func NewCatalogUnavailableError(operation string, err error) *StandardError {
	details := fmt.Sprintf("operation: %s", operation)
	if err != nil {
		details = fmt.Sprintf("operation: %s, error: %s", operation, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeCatalogUnavailable,
		Message:   "Catalog service unavailable",
		Details:   details,
		Retryable: true,
		Metadata:  map[string]interface{}{"operation": operation},
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// NewCatalogTimeoutError is a CATALOG_UNAVAILABLE error flagged as a timeout.
func NewCatalogTimeoutError(operation string, err error) *StandardError {
	stdErr := NewCatalogUnavailableError(operation, err)
	stdErr.Message = "Catalog service timeout"
	stdErr.Metadata["timeout"] = true
	return stdErr
}

// NewInvalidRequestError creates a non-retryable inbound envelope error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid skill request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoMatchingHandlerError signals a dispatcher configuration gap.
func NewNoMatchingHandlerError(requestType, intentName string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoMatchingHandler,
		Message:   "No request handler matched",
		Details:   fmt.Sprintf("requestType: %s, intent: %s", requestType, intentName),
		Retryable: false,
		Metadata: map[string]interface{}{
			"requestType": requestType,
			"intent":      intentName,
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewHandlerPanicError wraps a value recovered from a panicking handler.
func NewHandlerPanicError(handler string, recovered interface{}) *StandardError {
	return &StandardError{
		Code:      ErrCodeHandlerPanic,
		Message:   "Request handler panicked",
		Details:   fmt.Sprintf("handler: %s, panic: %v", handler, recovered),
		Retryable: false,
		Metadata:  map[string]interface{}{"handler": handler},
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return code == ErrCodeCatalogUnavailable
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	case strings.Contains(codeStr, "HANDLER"):
		return "DISPATCH"
	default:
		return "INTERNAL"
	}
}

// HTTPStatus maps an error code to the status returned by the webhook.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeCatalogUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
