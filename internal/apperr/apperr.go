// Package apperr maps domain failures to HTTP-facing error codes.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrBadRequest     = New("BAD_REQUEST", "invalid request", http.StatusBadRequest)
	ErrValidation     = New("VALIDATION_ERROR", "validation failed", http.StatusBadRequest)
	ErrNotFound       = New("NOT_FOUND", "resource not found", http.StatusNotFound)
	ErrStorage        = New("STORAGE_ERROR", "failed to access score history", http.StatusInternalServerError)
	ErrAnalytics      = New("ANALYTICS_UNAVAILABLE", "analytics service unavailable", http.StatusServiceUnavailable)
	ErrInternalServer = New("INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func (e *AppError) WithMessage(message string) *AppError {
	clone := e.clone()
	clone.Message = message
	return clone
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	clone := e.clone()
	clone.Details = make(map[string]any, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) clone() *AppError {
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	}
	return &clone
}

// FromError converts any error into an AppError, defaulting to a 500.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return New("REQUEST_CANCELED", "request canceled by client", http.StatusRequestTimeout).WithError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return New("TIMEOUT", "request timed out", http.StatusGatewayTimeout).WithError(err)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return FromValidation(verrs)
	}

	return ErrInternalServer.WithError(err)
}

// FromValidation lists each failed field under details.fields.
func FromValidation(verrs validator.ValidationErrors) *AppError {
	fields := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]string{
			"field": fe.Field(),
			"rule":  fe.Tag(),
		})
	}
	return ErrValidation.WithError(verrs).WithDetails(map[string]any{"fields": fields})
}
