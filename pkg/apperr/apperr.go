package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error standardizes application errors and their HTTP mapping.
type Error struct {
	Code       string
	Message    string
	HTTPStatus int
	Fields     []string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing request input. Fields lists the
// violated constraints in the order they were checked.
func Validation(message string, fields []string) *Error {
	return &Error{
		Code:       "VALIDATION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Fields:     fields,
	}
}

// Persistence reports a failed store write. Fatal to the request.
func Persistence(err error) *Error {
	return &Error{
		Code:       "PERSISTENCE_FAILED",
		Message:    "failed to save submission",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Internal wraps any other fault.
func Internal(err error) *Error {
	return &Error{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// From converts generic errors to *Error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}
