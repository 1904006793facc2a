package apperrors

import (
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeAuthentication Code = "AUTHENTICATION_ERROR"
	CodeAuthorization  Code = "AUTHORIZATION_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodeRateLimit      Code = "RATE_LIMIT_EXCEEDED"
	CodeTimeout        Code = "TIMEOUT"
	CodeUnavailable    Code = "SERVICE_UNAVAILABLE"
	CodeUpstream       Code = "UPSTREAM_ERROR"
	CodeInternal       Code = "INTERNAL_ERROR"
)

// AppError is the standard error struct for the gateway. Every failure that
// reaches the terminal error middleware is either an AppError or gets wrapped
// into one.
type AppError struct {
	Code       Code   `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Cause      error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code Code, msg string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    msg,
		Cause:      cause,
		HTTPStatus: mapCodeToStatus(code),
	}
}

func NewValidation(msg string, details any) *AppError {
	err := New(CodeValidation, msg, nil)
	err.Details = details
	return err
}

func NewAuthentication(msg string) *AppError {
	return New(CodeAuthentication, msg, nil)
}

func NewNotFound(msg string) *AppError {
	return New(CodeNotFound, msg, nil)
}

func NewUnavailable(msg string) *AppError {
	return New(CodeUnavailable, msg, nil)
}

func NewTimeout(msg string) *AppError {
	return New(CodeTimeout, msg, nil)
}

// NewUpstream keeps the upstream status visible to the caller instead of
// flattening everything to 502.
func NewUpstream(status int, msg string) *AppError {
	err := New(CodeUpstream, msg, nil)
	if status >= 400 {
		err.HTTPStatus = status
	}
	return err
}

// Wrap converts an arbitrary error into an AppError, passing existing ones
// through unchanged.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return New(CodeInternal, err.Error(), err)
}

func mapCodeToStatus(c Code) int {
	switch c {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuthentication:
		return http.StatusUnauthorized
	case CodeAuthorization:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
