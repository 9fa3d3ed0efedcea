package errors

import (
	stderrors "errors"
)

// ErrorHandler normalizes and logs errors that reach a handler boundary.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleRequestError logs err with full detail for operators and returns its
// normalized form. Nothing from the result should be spoken to the user.
func (h *ErrorHandler) HandleRequestError(err error, fields map[string]interface{}) *StandardError {
	stdErr := Normalize(err)
	h.logError(stdErr, fields)
	return stdErr
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

func (h *ErrorHandler) logError(stdErr *StandardError, fields map[string]interface{}) {
	if h.logger == nil {
		return
	}
	out := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	h.logger.Error("request failed", out)
}
