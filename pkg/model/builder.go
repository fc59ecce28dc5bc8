package model

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Builder converts a validation schema into a form model.
type Builder interface {
	Build(id string, schema *validation.Schema) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// NewBuilder returns a Builder that emits one text field per schema field.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.labeler == nil {
		cfg.labeler = DefaultLabeler
	}
	return &schemaBuilder{opts: cfg}
}

type schemaBuilder struct {
	opts builderOptions
}

// Build keeps the schema's field order. A field is marked required when the
// schema attaches at least one rule to it.
func (b *schemaBuilder) Build(id string, schema *validation.Schema) (FormModel, error) {
	if schema == nil {
		return FormModel{}, fmt.Errorf("model: build %q: nil schema", id)
	}
	fields := schema.Fields()
	if len(fields) == 0 {
		return FormModel{}, fmt.Errorf("model: build %q: schema declares no fields", id)
	}

	form := FormModel{
		ID:     id,
		Method: "POST",
		Fields: make([]Field, 0, len(fields)),
	}
	for _, name := range fields {
		form.Fields = append(form.Fields, Field{
			Name:      name,
			Label:     b.opts.labeler(name),
			InputType: InputTypeText,
			Required:  len(schema.Rules(name)) > 0,
		})
	}
	return form, nil
}
