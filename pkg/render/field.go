package render

import (
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// Classes applied to labeled inputs. The border class depends only on whether
// an error is present.
const (
	AutoCompleteOff    = "off"
	BorderClassDefault = "border-gray-300"
	BorderClassError   = "border-red-600"
	ErrorClass         = "mt-1 text-sm text-red-600"
	LabelClass         = "block text-sm font-medium text-gray-700 mb-1"
	WrapperClass       = "mb-4"
	InputClass         = "w-full px-3 py-2 border rounded-md focus:outline-none focus:ring-2 focus:ring-blue-500 focus:border-transparent"
)

// FieldProps is everything a labeled input needs to render: the label, the
// optional error and the standard input attributes. It holds no validation
// logic.
type FieldProps struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder,omitempty"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Autofocus   bool   `json:"autofocus,omitempty"`
	Required    bool   `json:"required,omitempty"`
	Error       string `json:"error,omitempty"`
	HelpHTML    string `json:"helpHtml,omitempty"`
}

// HasError reports whether an error line should be rendered.
func (p FieldProps) HasError() bool {
	return p.Error != ""
}

// BorderClass returns the input border class for the current error state.
func (p FieldProps) BorderClass() string {
	if p.HasError() {
		return BorderClassError
	}
	return BorderClassDefault
}

// InputType defaults to text when no type is set.
func (p FieldProps) InputType() string {
	if t := strings.TrimSpace(p.Type); t != "" {
		return t
	}
	return model.InputTypeText
}

// PropsFor combines a model field with the per-request value and error.
func PropsFor(field model.Field, options RenderOptions) FieldProps {
	return FieldProps{
		ID:          ControlID(field.Name),
		Name:        field.Name,
		Label:       field.Label,
		Type:        field.InputType,
		Value:       options.Value(field.Name),
		Placeholder: field.Placeholder,
		MaxLength:   field.MaxLength,
		Autofocus:   field.Autofocus,
		Required:    field.Required,
		Error:       options.Error(field.Name),
		HelpHTML:    field.HelpHTML,
	}
}

// ControlID derives the DOM id of the input rendered for name.
func ControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "rf-" + trimmed
}
