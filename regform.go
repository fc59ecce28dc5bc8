// Package regform is the top-level entry point: it renders the registration
// form, validates submissions and exposes the embedded templates and assets.
package regform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// Result is the outcome of validating one set of values.
type Result = validation.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderHTML renders the registration form with the vanilla renderer.
func RenderHTML(ctx context.Context, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Render(ctx, orchestrator.Request{
		Renderer:      "vanilla",
		RenderOptions: opts,
	})
}

// NewForm builds a registration form instance.
func NewForm(options ...form.Option) (*form.Form, error) {
	return form.New(options...)
}

// Validate checks values against the registration rules.
func Validate(values map[string]string) Result {
	return validation.RegistrationSchema().Validate(values)
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider resolves themes from a go-theme provider, such as
// theme.NewRegistry(), with the given defaults.
func WithThemeProvider(provider theme.ThemeProvider, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}
