package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/uischema"
	"github.com/goliatone/go-regform/pkg/validation"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithSchema replaces the registration schema the form model is built from.
func WithSchema(schema *validation.Schema) Option {
	return func(o *Orchestrator) {
		o.schema = schema
	}
}

// WithFormID sets the model ID, which also selects the UI schema overrides.
func WithFormID(id string) Option {
	return func(o *Orchestrator) {
		if id != "" {
			o.formID = id
		}
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a hook that can mutate the form model after the
// layout is applied but before UI schema decorators run.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithUIDecorators registers decorators that run after the UI schema
// overrides.
func WithUIDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithUISchemaFS supplies an fs.FS holding UI schema documents. Pass nil to
// disable the embedded defaults.
func WithUISchemaFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.uiSchemaFS = fsys
		o.uiSchemaSpecified = true
	}
}

// WithThemeSelector resolves theme/variant choices ahead of rendering.
// Requests that name no theme render unthemed.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeDefault = ""
	}
}

// WithThemeProvider builds a go-theme selector over provider. defaultTheme
// and defaultVariant apply when a request names none, and defaultTheme is
// also used when the requested theme is unknown.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) Option {
	return func(o *Orchestrator) {
		if provider == nil {
			return
		}
		o.themeSelector = theme.Selector{
			Registry:       provider,
			DefaultTheme:   defaultTheme,
			DefaultVariant: defaultVariant,
		}
		o.themeDefault = defaultTheme
	}
}

// WithThemeFallbacks sets the partials used when a theme does not override
// them.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Transformer mutates a FormModel before UI schema decorators run.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Orchestrator coordinates the pipeline from schema to rendered output.
type Orchestrator struct {
	schema            *validation.Schema
	formID            string
	builder           model.Builder
	registry          *render.Registry
	defaultRenderer   string
	transformer       Transformer
	decorators        []model.Decorator
	uiDecorator       model.Decorator
	uiSchemaFS        fs.FS
	uiSchemaSpecified bool
	themeSelector     theme.ThemeSelector
	themeDefault      string
	themeFallbacks    map[string]string
	initialiseErr     error
}

// New constructs an Orchestrator. Missing dependencies are initialised with
// the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		formID:          model.RegistrationFormID,
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render.
type Request struct {
	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// RenderOptions carries prefilled values, errors and hidden fields.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	// RenderOptions.Theme, when set, wins.
	ThemeName    string
	ThemeVariant string
}

// Form builds the decorated form model.
func (o *Orchestrator) Form(ctx context.Context) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	form, err := o.builder.Build(o.formID, o.schema)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if form.ID == model.RegistrationFormID {
		if err := model.Decorate(&form, model.RegistrationLayout()); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: apply layout: %w", err)
		}
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}

	decorators := o.decorators
	if o.uiDecorator != nil {
		decorators = append([]model.Decorator{o.uiDecorator}, decorators...)
	}
	if err := model.Decorate(&form, decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	return form, nil
}

// Render builds the form model and renders it with the requested renderer.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer resolves a renderer by name, falling back to the default and then
// to the first registered renderer when name is empty.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.schema == nil {
		o.schema = validation.RegistrationSchema()
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themeFallbacks == nil {
		o.themeFallbacks = defaultThemeFallbacks()
	}

	if !o.uiSchemaSpecified && o.uiSchemaFS == nil {
		o.uiSchemaFS = uischema.EmbeddedFS()
	}
	if o.uiSchemaFS == nil {
		return
	}

	store, err := uischema.LoadFS(o.uiSchemaFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load ui schema: %w", err)
		return
	}
	if !store.Empty() {
		o.uiDecorator = uischema.NewDecorator(store)
	}
}
