package validation

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownField is returned when a rule or lookup references a field that
	// is not part of the schema's fixed field set.
	ErrUnknownField = errors.New("validation: unknown field")
	// ErrDuplicateField signals a schema declaring the same field twice.
	ErrDuplicateField = errors.New("validation: duplicate field")
)

// FieldError is the single error kind produced by validation: one failed rule
// on one field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errors lists every failing field of a validation pass in schema order.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e))
	for _, fieldErr := range e {
		parts = append(parts, fieldErr.Error())
	}
	return strings.Join(parts, "; ")
}

// Map returns the errors keyed by field name. A nil map is returned when there
// are no errors.
func (e Errors) Map() map[string]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string]string, len(e))
	for _, fieldErr := range e {
		if _, exists := out[fieldErr.Field]; exists {
			continue
		}
		out[fieldErr.Field] = fieldErr.Message
	}
	return out
}

// Fields returns the failing field names in order.
func (e Errors) Fields() []string {
	if len(e) == 0 {
		return nil
	}
	out := make([]string, 0, len(e))
	for _, fieldErr := range e {
		out = append(out, fieldErr.Field)
	}
	return out
}

// Unwrap exposes the individual field errors to errors.Is / errors.As.
func (e Errors) Unwrap() []error {
	if len(e) == 0 {
		return nil
	}
	out := make([]error, 0, len(e))
	for _, fieldErr := range e {
		out = append(out, fieldErr)
	}
	return out
}
