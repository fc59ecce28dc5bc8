package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

const (
	fieldTemplate = "templates/labeled_field.tmpl"
	formTemplate  = "templates/form.tmpl"
)

// Theme partial keys. A theme's Partials entry under one of these keys
// replaces the matching built-in template path.
const (
	PartialForm  = "forms.form"
	PartialInput = "forms.input"
)

// ThemeFallbacks maps the partial keys to the built-in templates.
func ThemeFallbacks() map[string]string {
	return map[string]string{
		PartialForm:  formTemplate,
		PartialInput: fieldTemplate,
	}
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithLogger reports template failures that were served by the fallback
// markup.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer produces server-side HTML for a form model.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	logger    *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, logger: cfg.logger}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderField renders one labeled input. When the template cannot be
// executed the built-in markup is returned instead.
func (r *Renderer) RenderField(props render.FieldProps) string {
	return r.renderField(fieldTemplate, props)
}

func (r *Renderer) renderField(path string, props render.FieldProps) string {
	if r != nil && r.templates != nil {
		out, err := r.templates.RenderTemplate(path, fieldView(props))
		if err == nil {
			return out
		}
		if path != fieldTemplate {
			r.logger.Warn("themed field template failed, using built-in template",
				zap.String("template", path),
				zap.Error(err),
			)
			return r.renderField(fieldTemplate, props)
		}
		r.logger.Warn("labeled field template failed, using fallback markup",
			zap.String("field", props.Name),
			zap.Error(err),
		)
	}
	return renderFieldFallback(props)
}

// Render renders the whole form: title, form-level errors, hidden inputs,
// rows of labeled fields and the submit button.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r == nil || r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	partials := themePartials(options.Theme)

	rows := make([]rowView, 0, len(form.Fields))
	for _, row := range form.Rows() {
		view := rowView{Class: rowClass(len(row))}
		for _, field := range row {
			view.Fields = append(view.Fields, r.renderField(partials[PartialInput], render.PropsFor(field, options)))
		}
		rows = append(rows, view)
	}

	hidden := make([]hiddenView, 0, len(options.Hidden))
	for _, field := range render.SortedHiddenFields(options.Hidden) {
		hidden = append(hidden, hiddenView{Name: field.Name, Value: field.Value})
	}

	action := form.Action
	if action == "" {
		action = model.RegistrationAction
	}

	data := map[string]any{
		"form": map[string]string{
			"id":          form.ID,
			"title":       form.Title,
			"action":      action,
			"submitLabel": form.SubmitLabel,
		},
		"classes":     formClasses,
		"rows":        rows,
		"hidden":      hidden,
		"form_errors": options.FormErrors,
		"notice":      options.Notice,
		"theme":       themeView(options.Theme),
	}

	result, err := r.templates.RenderTemplate(partials[PartialForm], data)
	if err != nil && partials[PartialForm] != formTemplate {
		r.logger.Warn("themed form template failed, using built-in template",
			zap.String("template", partials[PartialForm]),
			zap.Error(err),
		)
		result, err = r.templates.RenderTemplate(formTemplate, data)
	}
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// themePartials returns the template path per partial key, preferring the
// theme's entries.
func themePartials(cfg *theme.RendererConfig) map[string]string {
	partials := ThemeFallbacks()
	if cfg == nil {
		return partials
	}
	for key := range partials {
		if path := strings.TrimSpace(cfg.Partials[key]); path != "" {
			partials[key] = path
		}
	}
	return partials
}

type rowView struct {
	Class  string   `json:"class"`
	Fields []string `json:"fields"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var formClasses = map[string]string{
	"form":       "regform",
	"title":      "text-2xl font-bold mb-6 text-center",
	"formErrors": "mb-4 text-sm text-red-600",
	"notice":     "mb-4 text-sm text-green-700",
	"submit":     "regform-submit",
}

var fieldClasses = map[string]string{
	"wrapper": render.WrapperClass,
	"label":   render.LabelClass,
	"input":   render.InputClass,
	"error":   render.ErrorClass,
	"help":    "mt-1 text-xs text-gray-500",
}

func rowClass(columns int) string {
	if columns > 1 {
		return fmt.Sprintf("grid grid-cols-%d gap-4", columns)
	}
	return "row"
}

func fieldView(props render.FieldProps) map[string]any {
	props.Type = props.InputType()
	return map[string]any{
		"field":   props,
		"border":  props.BorderClass(),
		"classes": fieldClasses,
	}
}

func themeView(cfg *theme.RendererConfig) map[string]string {
	if cfg == nil {
		return map[string]string{"name": "", "variant": "", "style": ""}
	}
	return map[string]string{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
		"style":   cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key])
	}
	return strings.Join(parts, "; ")
}
