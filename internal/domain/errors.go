package domain

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError is a single validation failure on one attribute.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationError aggregates field-level validation failures for a purchase.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		messages = append(messages, f.String())
	}
	return strings.Join(messages, ", ")
}

// IsValidationError checks whether err carries field-level validation detail.
func IsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}
