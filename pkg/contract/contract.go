// Package contract publishes the registration submission endpoint as an
// OpenAPI 3 document derived from the validation rule table.
package contract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Component and operation names used in the document.
const (
	SchemaRegistrationForm     = "RegistrationForm"
	SchemaRegistrationAccepted = "RegistrationAccepted"
	SchemaRegistrationRejected = "RegistrationRejected"
	OperationRegister          = "registerCustomer"
	DefaultPath                = "/api/register"
	DefaultVersion             = "1.0.0"
)

// Option customises the generated document.
type Option func(*config)

type config struct {
	title   string
	version string
	path    string
	schema  *validation.Schema
}

// WithTitle sets info.title.
func WithTitle(title string) Option {
	return func(c *config) {
		if title != "" {
			c.title = title
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(c *config) {
		if version != "" {
			c.version = version
		}
	}
}

// WithPath sets the path the submission operation is mounted on.
func WithPath(path string) Option {
	return func(c *config) {
		if path != "" {
			c.path = path
		}
	}
}

// WithSchema derives the payload schema from a different rule table.
func WithSchema(schema *validation.Schema) Option {
	return func(c *config) {
		if schema != nil {
			c.schema = schema
		}
	}
}

// RegistrationSchema describes the submission payload. Every field is a
// string; fields carrying at least one rule are required.
func RegistrationSchema(schema *validation.Schema) *openapi3.Schema {
	if schema == nil {
		schema = validation.RegistrationSchema()
	}

	out := openapi3.NewObjectSchema()
	var required []string
	for _, field := range schema.Fields() {
		prop := fieldSchema(field)
		if len(schema.Rules(field)) > 0 {
			required = append(required, field)
			if prop.MinLength == 0 {
				prop.MinLength = 1
			}
		}
		out.WithProperty(field, prop)
	}
	out.Required = required
	return out
}

func fieldSchema(field string) *openapi3.Schema {
	prop := openapi3.NewStringSchema()
	switch field {
	case validation.FieldEmail:
		prop.Format = "email"
	case validation.FieldCPF:
		prop.Pattern = validation.CPFPattern
		prop.Description = validation.MessageInvalidCPF
	case validation.FieldCEP:
		prop.Pattern = validation.CEPPattern
		prop.MinLength = 8
		prop.Description = validation.MessageInvalidCEP
	case validation.FieldPhone:
		prop.Description = "Normalised to E.164 when the number is parseable."
	}
	return prop
}

func acceptedSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("accepted", openapi3.NewBoolSchema()).
		WithProperty("id", openapi3.NewStringSchema())
}

func rejectedSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("accepted", openapi3.NewBoolSchema()).
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))
}

// Document builds and validates the OpenAPI document.
func Document(ctx context.Context, options ...Option) (*openapi3.T, error) {
	cfg := config{
		title:   "Registration form",
		version: DefaultVersion,
		path:    DefaultPath,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	raw, err := json.Marshal(skeleton(cfg))
	if err != nil {
		return nil, fmt.Errorf("contract: encode document: %w", err)
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}
	return doc, nil
}

// JSON returns the validated document encoded as JSON.
func JSON(ctx context.Context, options ...Option) ([]byte, error) {
	doc, err := Document(ctx, options...)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("contract: marshal: %w", err)
	}
	return out, nil
}

func ref(name string) map[string]any {
	return map[string]any{"$ref": "#/components/schemas/" + name}
}

func jsonContent(schema any) map[string]any {
	return map[string]any{
		"application/json": map[string]any{"schema": schema},
	}
}

func skeleton(cfg config) map[string]any {
	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   cfg.title,
			"version": cfg.version,
		},
		"paths": map[string]any{
			cfg.path: map[string]any{
				"post": map[string]any{
					"operationId": OperationRegister,
					"summary":     "Submit a customer registration",
					"requestBody": map[string]any{
						"required": true,
						"content": map[string]any{
							"application/json":                  map[string]any{"schema": ref(SchemaRegistrationForm)},
							"application/x-www-form-urlencoded": map[string]any{"schema": ref(SchemaRegistrationForm)},
						},
					},
					"responses": map[string]any{
						"200": map[string]any{
							"description": "Registration accepted",
							"content":     jsonContent(ref(SchemaRegistrationAccepted)),
						},
						"422": map[string]any{
							"description": "One message per failing field",
							"content":     jsonContent(ref(SchemaRegistrationRejected)),
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				SchemaRegistrationForm:     RegistrationSchema(cfg.schema),
				SchemaRegistrationAccepted: acceptedSchema(),
				SchemaRegistrationRejected: rejectedSchema(),
			},
		},
	}
}
