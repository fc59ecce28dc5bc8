// Package model defines the typed form model consumed by renderers. A
// FormModel is built from a validation.Schema (one Field per schema field, in
// schema order) and then enriched by decorators: the registration layout
// (labels, input types, max lengths, row grouping) and optional UI schema
// overrides loaded from disk. Renderers only read the model; they never
// validate.
package model
