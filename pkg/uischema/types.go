package uischema

// Store keeps the parsed form overrides from UI schema documents. It is safe
// for concurrent readers when treated as immutable after construction.
type Store struct {
	forms map[string]Form
}

// Form describes the overrides for one form model, keyed by its ID.
type Form struct {
	ID     string
	Source string
	Form   FormConfig
	Fields map[string]FieldConfig
}

// FormConfig captures form-level copy.
type FormConfig struct {
	Title       string            `json:"title" yaml:"title"`
	SubmitLabel string            `json:"submitLabel" yaml:"submitLabel"`
	Action      string            `json:"action" yaml:"action"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
}

// FieldConfig customises how a single field is presented. Zero values leave
// the built model untouched.
type FieldConfig struct {
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	InputType   string            `json:"inputType,omitempty" yaml:"inputType,omitempty"`
	MaxLength   *int              `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Row         *int              `json:"row,omitempty" yaml:"row,omitempty"`
	Autofocus   *bool             `json:"autofocus,omitempty" yaml:"autofocus,omitempty"`
	Help        string            `json:"help,omitempty" yaml:"help,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}
