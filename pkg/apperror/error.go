package apperror

import (
	"errors"
	"net/http"

	"agentic-landing-site/internal/domain"
)

type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// FromFormError maps form session errors onto HTTP errors
func FromFormError(err error) *AppError {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		appErr := New(http.StatusUnprocessableEntity, "Please check the highlighted fields.", err)
		appErr.Details = vErr.Messages
		return appErr
	case errors.Is(err, domain.ErrFormNotFound):
		return New(http.StatusNotFound, "Form not found or expired", err)
	case errors.Is(err, domain.ErrUnknownField):
		return New(http.StatusBadRequest, "Unknown form field", err)
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return New(http.StatusConflict, "Your message is still being sent", err)
	case errors.Is(err, domain.ErrTooManyForms):
		return New(http.StatusServiceUnavailable, "Contact form temporarily unavailable", err)
	default:
		return Internal(err)
	}
}
