package models

import (
	"errors"
	"net/http"
)

// StatusError is an error carrying the HTTP-style status code of a failed store call
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.StatusCode)
	}
	return e.Message
}

// NewNotFoundError returns a StatusError with status 404
func NewNotFoundError(message string) error {
	return &StatusError{StatusCode: http.StatusNotFound, Message: message}
}

// NewConflictError returns a StatusError with status 409
func NewConflictError(message string) error {
	return &StatusError{StatusCode: http.StatusConflict, Message: message}
}

// StatusCode extracts the status code from err, or 0 if err carries none
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// IsNotFound reports whether err means "record does not exist yet"
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflict reports whether err means "record already exists"
func IsConflict(err error) bool {
	return StatusCode(err) == http.StatusConflict
}
