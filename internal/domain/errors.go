package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound covers both genuinely absent records and records owned by a
// different tenant. The two cases must be indistinguishable to callers.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized covers missing, malformed, and unresolvable credentials.
var ErrUnauthorized = errors.New("unauthorized")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level messages for a 400 response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a field-level message and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// Invalid builds a single-field ValidationError.
func Invalid(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}
