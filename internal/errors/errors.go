package errors

import (
	"fmt"
	"net/http"
	"time"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Outcome taxonomy constructors. Handlers translate StatusCode directly, so
// the service layer never imports net/http except through these.

func NotFound(what string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: fmt.Sprintf("%s not found", what), StatusCode: http.StatusNotFound}
}

func Forbidden(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden}
}

// Banned carries the ban expiry so the caller can render "banned until X".
// The timestamp is normalized to UTC before formatting; comparing naive and
// zone-aware values on different sides of the ban check is the bug class this
// guards against.
func Banned(until time.Time) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Message:    fmt.Sprintf("banned until %s", until.UTC().Format(time.RFC3339)),
		StatusCode: http.StatusForbidden,
	}
}

func Validation(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest}
}

func Conflict(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func Duplicate(message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusConflict}
}

func statusOf(err error) int {
	if e, ok := err.(*ErrorWithStatusCode); ok {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

func IsConflict(err error) bool {
	return statusOf(err) == http.StatusConflict
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	if _, ok := err.(T); ok {
		return true
	}
	return false
}
