package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ServiceError is the single classified error shape the boundary layer sees.
// Every failure path in the three operations produces exactly one of these.
type ServiceError struct {
	Code       string
	Message    string
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
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeUpstreamFailure     = "UPSTREAM_FAILURE"
	ErrCodeNotificationFailure = "NOTIFICATION_FAILURE"
	ErrCodeInternal            = "INTERNAL_ERROR"
)

func NewInvalidRequestError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInvalidRequest,
		Message:    "Invalid request",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func NewNotFoundError(detail string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotFound,
		Message:    detail,
		HTTPStatus: http.StatusNotFound,
	}
}

func NewUpstreamFailureError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeUpstreamFailure,
		Message:    "Partner token exchange failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewNotificationFailureError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeNotificationFailure,
		Message:    "Status notification failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
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

// ToHTTPStatus maps an error to the HTTP status the boundary should answer
// with. Anything unclassified is a 500.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// ToErrorCode returns the stable machine-readable code for an error.
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}
	return ErrCodeInternal
}
