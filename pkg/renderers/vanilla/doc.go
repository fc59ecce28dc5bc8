// Package vanilla renders form models to server-side HTML with pongo2
// templates. Each input is rendered as a labeled field: a label, the input
// and, only when an error is set, an error line beneath it.
package vanilla
