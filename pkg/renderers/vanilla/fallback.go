package vanilla

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/render"
)

// renderFieldFallback mirrors templates/labeled_field.tmpl.
func renderFieldFallback(props render.FieldProps) string {
	id := html.EscapeString(props.ID)

	var b strings.Builder
	b.Grow(512)

	b.WriteString(`<div class="` + render.WrapperClass + `">` + "\n")
	b.WriteString(`  <label for="` + id + `" class="` + render.LabelClass + `">`)
	b.WriteString(html.EscapeString(props.Label))
	b.WriteString("</label>\n")

	b.WriteString(`  <input id="` + id + `" name="` + html.EscapeString(props.Name) + `"`)
	b.WriteString(` type="` + html.EscapeString(props.InputType()) + `"`)
	b.WriteString(` value="` + html.EscapeString(props.Value) + `"`)
	b.WriteString(` class="` + render.InputClass + " " + props.BorderClass() + `"`)
	b.WriteString(` autocomplete="` + render.AutoCompleteOff + `"`)
	if props.Placeholder != "" {
		b.WriteString(` placeholder="` + html.EscapeString(props.Placeholder) + `"`)
	}
	if props.MaxLength > 0 {
		b.WriteString(` maxlength="` + strconv.Itoa(props.MaxLength) + `"`)
	}
	if props.Autofocus {
		b.WriteString(` autofocus`)
	}
	if props.HasError() {
		b.WriteString(` aria-invalid="true" aria-describedby="` + id + `-error"`)
	}
	b.WriteString(">\n")

	if props.HasError() {
		b.WriteString(`  <p id="` + id + `-error" class="` + render.ErrorClass + `">`)
		b.WriteString(html.EscapeString(props.Error))
		b.WriteString("</p>\n")
	}
	if props.HelpHTML != "" {
		b.WriteString(`  <small class="mt-1 text-xs text-gray-500">` + props.HelpHTML + "</small>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}
