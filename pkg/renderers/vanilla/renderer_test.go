package vanilla_test

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

func newRenderer(t *testing.T, options ...vanilla.Option) *vanilla.Renderer {
	t.Helper()
	renderer, err := vanilla.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

// failingTemplates forces the fallback markup.
type failingTemplates struct{}

var errTemplate = errors.New("template unavailable")

func (failingTemplates) Render(string, any, ...io.Writer) (string, error) { return "", errTemplate }
func (failingTemplates) RenderTemplate(string, any, ...io.Writer) (string, error) {
	return "", errTemplate
}
func (failingTemplates) RenderString(string, any, ...io.Writer) (string, error) {
	return "", errTemplate
}
func (failingTemplates) RegisterFilter(string, func(any, any) (any, error)) error { return nil }
func (failingTemplates) GlobalContext(any) error                                 { return nil }

func renderPaths(t *testing.T) map[string]*vanilla.Renderer {
	t.Helper()
	return map[string]*vanilla.Renderer{
		"template": newRenderer(t),
		"fallback": newRenderer(t, vanilla.WithTemplateRenderer(failingTemplates{})),
	}
}

type fatalHelper interface {
	Helper()
	Fatalf(format string, args ...any)
}

func assertLabeledField(t fatalHelper, out string, props render.FieldProps) {
	t.Helper()
	if !strings.Contains(out, `autocomplete="off"`) {
		t.Fatalf("missing autocomplete=off:\n%s", out)
	}
	errorLines := strings.Count(out, `class="`+render.ErrorClass+`"`)
	if props.Error != "" {
		if errorLines != 1 {
			t.Fatalf("expected one error line, got %d:\n%s", errorLines, out)
		}
		if !strings.Contains(out, render.BorderClassError) || strings.Contains(out, render.BorderClassDefault) {
			t.Fatalf("expected error border only:\n%s", out)
		}
		return
	}
	if errorLines != 0 {
		t.Fatalf("expected no error line, got %d:\n%s", errorLines, out)
	}
	if !strings.Contains(out, render.BorderClassDefault) || strings.Contains(out, render.BorderClassError) {
		t.Fatalf("expected neutral border only:\n%s", out)
	}
}

func TestRenderField_ErrorState(t *testing.T) {
	for name, renderer := range renderPaths(t) {
		t.Run(name, func(t *testing.T) {
			props := render.FieldProps{
				ID:        "rf-cpf",
				Name:      validation.FieldCPF,
				Label:     "CPF",
				Value:     "123",
				MaxLength: 14,
				Error:     validation.MessageInvalidCPF,
			}
			out := renderer.RenderField(props)
			assertLabeledField(t, out, props)

			for _, want := range []string{
				`<label for="rf-cpf"`,
				`>CPF</label>`,
				`name="cpf"`,
				`type="text"`,
				`value="123"`,
				`maxlength="14"`,
				`aria-invalid="true"`,
				`Invalid CPF format. Use 000.000.000-00 or 00000000000</p>`,
			} {
				if !strings.Contains(out, want) {
					t.Fatalf("expected %q in output:\n%s", want, out)
				}
			}
		})
	}
}

func TestRenderField_NeutralState(t *testing.T) {
	for name, renderer := range renderPaths(t) {
		t.Run(name, func(t *testing.T) {
			props := render.FieldProps{ID: "rf-email", Name: "email", Label: "Email", Type: "email", Placeholder: "nome@exemplo.com", Autofocus: true}
			out := renderer.RenderField(props)
			assertLabeledField(t, out, props)

			for _, want := range []string{`type="email"`, `placeholder="nome@exemplo.com"`, ` autofocus`, `focus:ring-blue-500 focus:border-transparent`} {
				if !strings.Contains(out, want) {
					t.Fatalf("expected %q in output:\n%s", want, out)
				}
			}
			for _, unwanted := range []string{`maxlength`, `aria-invalid`, `<p`} {
				if strings.Contains(out, unwanted) {
					t.Fatalf("unexpected %q in output:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestRenderField_EscapesUserInput(t *testing.T) {
	for name, renderer := range renderPaths(t) {
		t.Run(name, func(t *testing.T) {
			out := renderer.RenderField(render.FieldProps{
				ID:    "rf-street",
				Name:  "street",
				Label: "Street",
				Value: `"><script>alert(1)</script>`,
				Error: "<b>bad</b>",
			})
			if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
				t.Fatalf("user input was not escaped:\n%s", out)
			}
		})
	}
}

func TestRenderField_FallbackIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	renderer := newRenderer(t,
		vanilla.WithTemplateRenderer(failingTemplates{}),
		vanilla.WithLogger(zap.New(core)),
	)

	renderer.RenderField(render.FieldProps{Name: "city", Label: "City"})

	entries := logs.FilterField(zap.String("field", "city")).All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning for the fallback, got %d", len(entries))
	}
}

func TestRenderField_Properties(t *testing.T) {
	renderers := renderPaths(t)
	rapid.Check(t, func(rt *rapid.T) {
		props := render.FieldProps{
			ID:    "rf-x",
			Name:  "x",
			Label: rapid.StringMatching(`[A-Za-z ]{1,12}`).Draw(rt, "label"),
			Value: rapid.StringMatching(`[A-Za-z0-9 .\-@]{0,20}`).Draw(rt, "value"),
			Error: rapid.StringMatching(`([A-Za-z .]{1,30})?`).Draw(rt, "error"),
		}
		for _, renderer := range renderers {
			assertLabeledField(rt, renderer.RenderField(props), props)
		}
	})
}

func TestRender_RegistrationForm(t *testing.T) {
	renderer := newRenderer(t)
	form := model.MustRegistrationForm()

	values := testsupport.ValidRegistration()
	values[validation.FieldEmail] = "not-an-email"
	result := validation.RegistrationSchema().Validate(values)

	out, err := renderer.Render(testsupport.Context(), form, render.RenderOptions{
		Values: result.Values,
		Errors: result.Errors,
		Hidden: map[string]string{"_csrf": "token-1"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`<h2 class="text-2xl font-bold mb-6 text-center">Formulário de Cadastro</h2>`,
		`>Cadastrar</button>`,
		`<input type="hidden" name="_csrf" value="token-1">`,
		`value="not-an-email"`,
		validation.MessageInvalidEmail + `</p>`,
		`value="Rio de Janeiro"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}

	if got := strings.Count(html, `class="grid grid-cols-2 gap-4"`); got != 3 {
		t.Fatalf("expected 3 paired rows, got %d", got)
	}
	if got := strings.Count(html, `autocomplete="off"`); got != len(form.Fields) {
		t.Fatalf("expected %d inputs with autocomplete=off, got %d", len(form.Fields), got)
	}
	if got := strings.Count(html, `class="`+render.ErrorClass+`"`); got != 1 {
		t.Fatalf("expected a single error line, got %d", got)
	}

	firstIdx := strings.Index(html, `name="firstName"`)
	lastIdx := strings.Index(html, `name="lastName"`)
	phoneIdx := strings.Index(html, `name="phone"`)
	if firstIdx < 0 || lastIdx < firstIdx || phoneIdx < lastIdx {
		t.Fatalf("fields rendered out of order")
	}
}

func TestRender_EmptyFormHasNoErrors(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.Render(testsupport.Context(), model.MustRegistrationForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, render.BorderClassError) || strings.Contains(html, `role="alert"`) {
		t.Fatalf("unexpected error chrome in empty form:\n%s", html)
	}
	if strings.Contains(html, `data-theme=`) || strings.Contains(html, `style=`) {
		t.Fatalf("unexpected theme attributes without a theme:\n%s", html)
	}
}

func TestRender_FormErrorsAndTheme(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.Render(testsupport.Context(), model.MustRegistrationForm(), render.RenderOptions{
		FormErrors: []string{"Submission failed, try again"},
		Theme: &theme.RendererConfig{
			Theme:   "acme",
			Variant: "dark",
			CSSVars: map[string]string{"--regform-accent": "#123456", "--regform-font": "serif"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	for _, want := range []string{
		`role="alert"`,
		`<p>Submission failed, try again</p>`,
		`data-theme="acme"`,
		`data-theme-variant="dark"`,
		`style="--regform-accent: #123456; --regform-font: serif"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestRender_Notice(t *testing.T) {
	renderer := newRenderer(t)
	out, err := renderer.Render(testsupport.Context(), model.MustRegistrationForm(), render.RenderOptions{
		Notice: "Registration received",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `role="status">Registration received</div>`) {
		t.Fatalf("expected notice in output:\n%s", html)
	}
	if strings.Contains(html, `role="alert"`) {
		t.Fatalf("unexpected alert block:\n%s", html)
	}
}

func TestRender_CanceledContext(t *testing.T) {
	renderer := newRenderer(t)
	ctx, cancel := contextWithCancel()
	cancel()
	if _, err := renderer.Render(ctx, model.MustRegistrationForm(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}

func themedTemplates(t *testing.T) fstest.MapFS {
	t.Helper()
	files := fstest.MapFS{
		"themes/acme/input.tmpl":  &fstest.MapFile{Data: []byte(`<span class="acme-field" data-name="{{ field.name }}"></span>`)},
		"themes/acme/broken.tmpl": &fstest.MapFile{Data: []byte(`{% if %}`)},
	}
	for _, path := range []string{"templates/form.tmpl", "templates/labeled_field.tmpl"} {
		data, err := fs.ReadFile(vanilla.TemplatesFS(), path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		files[path] = &fstest.MapFile{Data: data}
	}
	return files
}

func TestRender_ThemePartialsSelectTemplates(t *testing.T) {
	renderer := newRenderer(t, vanilla.WithTemplatesFS(themedTemplates(t)))
	out, err := renderer.Render(testsupport.Context(), model.MustRegistrationForm(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Theme:    "acme",
			Partials: map[string]string{vanilla.PartialInput: "themes/acme/input.tmpl"},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if got := strings.Count(html, `class="acme-field"`); got != len(validation.RegistrationFields) {
		t.Fatalf("expected %d themed fields, got %d:\n%s", len(validation.RegistrationFields), got, html)
	}
	if !strings.Contains(html, `data-name="cpf"`) {
		t.Fatalf("expected themed cpf field:\n%s", html)
	}
	if strings.Contains(html, `autocomplete="off"`) {
		t.Fatalf("built-in field template should not be used:\n%s", html)
	}
}

func TestRender_BrokenThemePartialFallsBackToBuiltIn(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	renderer := newRenderer(t,
		vanilla.WithTemplatesFS(themedTemplates(t)),
		vanilla.WithLogger(zap.New(core)),
	)
	out, err := renderer.Render(testsupport.Context(), model.MustRegistrationForm(), render.RenderOptions{
		Theme: &theme.RendererConfig{
			Partials: map[string]string{
				vanilla.PartialForm:  "themes/acme/broken.tmpl",
				vanilla.PartialInput: "themes/acme/missing.tmpl",
			},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, model.RegistrationTitle) || !strings.Contains(html, `autocomplete="off"`) {
		t.Fatalf("expected built-in templates:\n%s", html)
	}
	if logs.FilterMessage("themed form template failed, using built-in template").Len() != 1 {
		t.Fatalf("expected one form fallback warning, got %d", logs.Len())
	}
	if logs.FilterMessage("themed field template failed, using built-in template").Len() != len(validation.RegistrationFields) {
		t.Fatalf("expected a field fallback warning per field")
	}
}

func TestThemeFallbacks_PointAtBundledTemplates(t *testing.T) {
	for key, path := range vanilla.ThemeFallbacks() {
		if _, err := fs.Stat(vanilla.TemplatesFS(), path); err != nil {
			t.Fatalf("fallback %s -> %s: %v", key, path, err)
		}
	}
}

func TestAssetsFS_ContainsStylesheet(t *testing.T) {
	f, err := vanilla.AssetsFS().Open(vanilla.StylesheetName)
	if err != nil {
		t.Fatalf("open stylesheet: %v", err)
	}
	defer f.Close()
}
