package model

// Input types understood by the renderers.
const (
	InputTypeText  = "text"
	InputTypeEmail = "email"
	InputTypeTel   = "tel"
)

// Field models one labeled input of a form.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	InputType   string `json:"inputType,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	MaxLength   int    `json:"maxLength,omitempty"`
	Autofocus   bool   `json:"autofocus,omitempty"`
	Required    bool   `json:"required"`
	// Row groups fields rendered side by side. Zero means the field takes a
	// row of its own.
	Row int `json:"row,omitempty"`
	// HelpHTML is sanitized markup rendered beneath the input.
	HelpHTML string            `json:"helpHtml,omitempty"`
	UIHints  map[string]string `json:"uiHints,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FormModel is the top-level representation renderers consume.
type FormModel struct {
	ID          string            `json:"id"`
	Title       string            `json:"title,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	Action      string            `json:"action,omitempty"`
	Method      string            `json:"method,omitempty"`
	Fields      []Field           `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Field returns the field named name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldIndex returns the position of name in Fields, or -1.
func (f FormModel) FieldIndex(name string) int {
	for idx, field := range f.Fields {
		if field.Name == name {
			return idx
		}
	}
	return -1
}

// Rows groups fields for layout. Fields sharing a non-zero Row are placed in
// the same group, positioned where the first of them appears.
func (f FormModel) Rows() [][]Field {
	var rows [][]Field
	positions := make(map[int]int)
	for _, field := range f.Fields {
		if field.Row == 0 {
			rows = append(rows, []Field{field})
			continue
		}
		if idx, ok := positions[field.Row]; ok {
			rows[idx] = append(rows[idx], field)
			continue
		}
		positions[field.Row] = len(rows)
		rows = append(rows, []Field{field})
	}
	return rows
}

// Clone returns a deep copy of the model so decorators can mutate freely.
func (f FormModel) Clone() FormModel {
	out := f
	out.Metadata = cloneStringMap(f.Metadata)
	out.Fields = make([]Field, len(f.Fields))
	for idx, field := range f.Fields {
		copied := field
		copied.UIHints = cloneStringMap(field.UIHints)
		copied.Metadata = cloneStringMap(field.Metadata)
		out.Fields[idx] = copied
	}
	return out
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
