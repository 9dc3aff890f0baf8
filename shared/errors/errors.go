package errors

import (
	"errors"
	"net/http"
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

func New(statusCode int, message string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: message, StatusCode: statusCode}
}

func NotFound(message string) *ErrorWithStatusCode {
	return New(http.StatusNotFound, message)
}

func BadRequest(message string) *ErrorWithStatusCode {
	return New(http.StatusBadRequest, message)
}

func Forbidden(message string) *ErrorWithStatusCode {
	return New(http.StatusForbidden, message)
}

// StatusCode returns the status carried anywhere in err's chain, 500 otherwise.
func StatusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}
