// Package uischema loads layout overrides for form models from JSON or YAML
// documents and applies them through a model.Decorator. Overrides change how
// a field is presented (label, placeholder, input type, row, help markup);
// they never touch validation rules.
package uischema
