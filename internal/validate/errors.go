package validate

import (
	"fmt"
	"strings"
)

// MalformedError indicates the request body is not the expected shape
// (not a list, not an object, or not valid JSON).
type MalformedError struct {
	Message string
}

func (e *MalformedError) Error() string {
	return e.Message
}

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level failures for one request.
// Invalid date formats are reported through it as well.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
