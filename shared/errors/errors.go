package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	cause      error
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.cause
}

// ErrIntegrityFault marks broken invariants of stored data. These are bugs,
// never expected runtime conditions.
var ErrIntegrityFault = errors.New("integrity fault")

func NotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound}
}

func Unauthorized(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusUnauthorized}
}

func Forbidden(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

func BadRequest(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func IntegrityFault(format string, args ...any) error {
	return &ErrorWithStatusCode{
		Message:    fmt.Sprintf("integrity fault: "+format, args...),
		StatusCode: http.StatusInternalServerError,
		cause:      ErrIntegrityFault,
	}
}

// StatusCode returns the carried status or 500.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsBadRequest(err error) bool {
	return StatusCode(err) == http.StatusBadRequest
}

func IsIntegrityFault(err error) bool {
	return errors.Is(err, ErrIntegrityFault)
}
