package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Values pre-populates rendered inputs keyed by field name.
	Values map[string]string
	// Errors carries at most one message per field. A field without an entry
	// renders in its neutral state.
	Errors map[string]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Notice is a status line shown above the fields, e.g. after an accepted
	// submission.
	Notice string
	// Hidden adds hidden inputs (for example a CSRF token) to the form.
	Hidden map[string]string
	// Theme carries resolved theme tokens and CSS variables.
	Theme *theme.RendererConfig
}

// Value returns the pre-populated value for field.
func (o RenderOptions) Value(field string) string {
	return o.Values[field]
}

// Error returns the message for field, or "".
func (o RenderOptions) Error(field string) string {
	return o.Errors[field]
}
