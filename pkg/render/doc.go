// Package render defines the renderer contract shared by the HTML and
// terminal front ends, the per-request RenderOptions, and FieldProps, the
// input of a single labeled field.
package render
