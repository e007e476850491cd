package serrors

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Error is a transport-agnostic domain error. Status carries the HTTP
// status the API layer should answer with; Field names the offending wire
// field when one exists.
type Error struct {
	Status  int
	Code    string
	Message string
	Field   string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Meta renders the auxiliary error attributes for the response envelope.
func (e *Error) Meta() map[string]string {
	if e.Field == "" {
		return nil
	}
	return map[string]string{"field": e.Field}
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

// Validation builds an unprocessable-entity error tied to a wire field.
func Validation(code, message, field string) *Error {
	e := New(http.StatusUnprocessableEntity, code, message)
	e.Field = field
	return e
}

type ValidationErrors map[string]string

// ProcessValidatorErrors flattens struct-tag validation failures into a
// field-to-message map.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Error()
	}
	return out
}
