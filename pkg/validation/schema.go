package validation

import (
	"fmt"
	"strings"
)

// Schema is an ordered rule table over a fixed field set. It is immutable
// after construction and safe for concurrent use.
type Schema struct {
	fields []string
	known  map[string]struct{}
	rules  []Rule
}

// NewSchema declares the field set and the rules applied to it. Fields
// without rules are optional and accept any value, including "".
func NewSchema(fields []string, rules ...Rule) (*Schema, error) {
	s := &Schema{
		fields: make([]string, 0, len(fields)),
		known:  make(map[string]struct{}, len(fields)),
		rules:  make([]Rule, 0, len(rules)),
	}
	for _, field := range fields {
		name := strings.TrimSpace(field)
		if name == "" {
			return nil, fmt.Errorf("validation: empty field name")
		}
		if _, exists := s.known[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		s.known[name] = struct{}{}
		s.fields = append(s.fields, name)
	}
	for idx, rule := range rules {
		if _, ok := s.known[rule.Field]; !ok {
			return nil, fmt.Errorf("%w: rule %d targets %q", ErrUnknownField, idx, rule.Field)
		}
		if rule.Check == nil {
			return nil, fmt.Errorf("validation: rule %d for %q has no check", idx, rule.Field)
		}
		s.rules = append(s.rules, rule)
	}
	return s, nil
}

// MustSchema panics when NewSchema fails. Intended for package-level tables.
func MustSchema(fields []string, rules ...Rule) *Schema {
	s, err := NewSchema(fields, rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns the declared field names in order.
func (s *Schema) Fields() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.fields...)
}

// Has reports whether field belongs to the schema.
func (s *Schema) Has(field string) bool {
	if s == nil {
		return false
	}
	_, ok := s.known[field]
	return ok
}

// Rules returns the rules attached to field in table order.
func (s *Schema) Rules(field string) []Rule {
	if s == nil {
		return nil
	}
	var out []Rule
	for _, rule := range s.rules {
		if rule.Field == field {
			out = append(out, rule)
		}
	}
	return out
}

// Check validates one field value. The first failing rule of the field wins.
// ok is true when the value satisfies every rule of the field.
func (s *Schema) Check(field, value string) (FieldError, bool) {
	if !s.Has(field) {
		return FieldError{Field: field, Message: ErrUnknownField.Error()}, false
	}
	for _, rule := range s.rules {
		if rule.Field != field {
			continue
		}
		if !rule.Passes(value) {
			return FieldError{Field: field, Message: rule.Message}, false
		}
	}
	return FieldError{}, true
}

// Validate applies every rule to values. All fields are evaluated; a failure
// on one field never hides a failure on another. Missing keys are treated as
// "" and keys outside the schema are ignored.
func (s *Schema) Validate(values map[string]string) Result {
	result := Result{
		Values: make(map[string]string, len(s.fields)),
		order:  s.fields,
	}
	for _, field := range s.fields {
		result.Values[field] = values[field]
	}

	for _, field := range s.fields {
		if fieldErr, ok := s.Check(field, result.Values[field]); !ok {
			if result.Errors == nil {
				result.Errors = make(map[string]string)
			}
			result.Errors[field] = fieldErr.Message
		}
	}
	return result
}

// Result is the outcome of one validation pass: the values that were checked
// and, when rejected, one message per failing field.
type Result struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors,omitempty"`

	order []string
}

// Accepted reports whether every field passed.
func (r Result) Accepted() bool {
	return len(r.Errors) == 0
}

// Error returns the message for field, or "" when the field is valid.
func (r Result) Error(field string) string {
	return r.Errors[field]
}

// Err returns the failures as Errors in schema order, or nil when accepted.
func (r Result) Err() error {
	if r.Accepted() {
		return nil
	}
	out := make(Errors, 0, len(r.Errors))
	seen := make(map[string]struct{}, len(r.Errors))
	for _, field := range r.order {
		if msg, ok := r.Errors[field]; ok {
			out = append(out, FieldError{Field: field, Message: msg})
			seen[field] = struct{}{}
		}
	}
	for field, msg := range r.Errors {
		if _, ok := seen[field]; !ok {
			out = append(out, FieldError{Field: field, Message: msg})
		}
	}
	return out
}
