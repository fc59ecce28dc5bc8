package render

import (
	"errors"
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrorMapping splits validation feedback into one message per field plus
// form-level messages for anything that does not address a known field.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MapErrors converts an error returned by validation into an ErrorMapping.
// validation.Errors and validation.FieldError are split per field; any other
// error becomes a form-level message.
func MapErrors(form model.FormModel, err error) ErrorMapping {
	if err == nil {
		return ErrorMapping{}
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		payload := make(map[string][]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			payload[fe.Field] = append(payload[fe.Field], fe.Message)
		}
		return MapErrorPayload(form, payload)
	}

	var single validation.FieldError
	if errors.As(err, &single) {
		return MapErrorPayload(form, map[string][]string{single.Field: {single.Message}})
	}

	return ErrorMapping{Form: normalizeMessages([]string{err.Error()})}
}

// MapErrorPayload normalises server error payloads (including JSON pointer
// paths such as "/body/email") into field names. The first message per field
// is kept; unknown paths are treated as form-level errors so messages are not
// lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			known[name] = struct{}{}
		}
	}

	for _, rawPath := range sortedPayloadKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}

		name, ok := mapErrorPath(rawPath, known)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string]string)
		}
		if _, exists := mapping.Fields[name]; !exists {
			mapping.Fields[name] = messages[0]
		}
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, known map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", false
	}
	if _, ok := known[segments[0]]; !ok {
		return "", false
	}
	return segments[0], true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if segment := strings.TrimSpace(part); segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "values":
			segments = segments[1:]
			continue
		}
		break
	}
	return segments
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func sortedPayloadKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
