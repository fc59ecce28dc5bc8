package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// Renderer drives a registration form through terminal prompts. Every field
// is asked once, the answers are submitted, and only the rejected fields are
// asked again until the submission is accepted.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	theme        Theme
	formOptions  []form.Option
	maxRounds    int
	confirm      bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with optional configuration.
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme: Theme{
			ErrorPrefix: "✗ ",
		},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs the prompt session and serializes the accepted values.
func (r *Renderer) Render(ctx context.Context, fm model.FormModel, opts render.RenderOptions) ([]byte, error) {
	outcome, err := r.Run(ctx, fm, opts)
	if err != nil {
		return nil, err
	}
	return r.serialize(fm, outcome)
}

// Run prompts until the form accepts a submission. opts.Values prefill the
// first round of prompts.
func (r *Renderer) Run(ctx context.Context, fm model.FormModel, opts render.RenderOptions) (form.Outcome, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(fm.Fields) == 0 {
		return form.Outcome{}, fmt.Errorf("tui: form %q has no fields", fm.ID)
	}

	f, err := form.New(r.formOptions...)
	if err != nil {
		return form.Outcome{}, fmt.Errorf("tui: new form: %w", err)
	}

	bindings := make(map[string]*form.Binding, len(fm.Fields))
	for _, field := range fm.Fields {
		binding, err := f.Register(field.Name)
		if err != nil {
			return form.Outcome{}, fmt.Errorf("tui: %w", err)
		}
		binding.Set(opts.Value(field.Name))
		bindings[field.Name] = binding
	}

	if fm.Title != "" {
		if err := r.info(ctx, fm.Title); err != nil {
			return form.Outcome{}, err
		}
	}

	pending := fm.Fields
	for round := 1; ; round++ {
		for _, field := range pending {
			answer, err := r.driver.Input(ctx, InputConfig{
				Message: displayLabel(field),
				Default: bindings[field.Name].Value(),
				Help:    displayHelp(field),
			})
			if err != nil {
				return form.Outcome{}, r.wrapPromptErr(field, err)
			}
			bindings[field.Name].Set(answer)
		}

		if r.confirm {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: submitLabel(fm), Default: true})
			if err != nil {
				return form.Outcome{}, r.wrapPromptErr(model.Field{Name: "confirm"}, err)
			}
			if !ok {
				return form.Outcome{}, ErrDeclined
			}
		}

		outcome, err := f.Submit(ctx, nil)
		if err != nil {
			return outcome, err
		}
		if outcome.Accepted() {
			return outcome, nil
		}

		pending = pending[:0:0]
		for _, field := range fm.Fields {
			message := bindings[field.Name].Error()
			if message == "" {
				continue
			}
			pending = append(pending, field)
			if err := r.info(ctx, r.theme.ErrorPrefix+displayLabel(field)+": "+message); err != nil {
				return form.Outcome{}, err
			}
		}

		if r.maxRounds > 0 && round >= r.maxRounds {
			return outcome, fmt.Errorf("%w: %d rounds", ErrTooManyAttempts, round)
		}
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) wrapPromptErr(field model.Field, err error) error {
	if errors.Is(err, ErrAborted) {
		return ErrAborted
	}
	return fmt.Errorf("tui: prompt %s: %w", field.Name, err)
}

func (r *Renderer) serialize(fm model.FormModel, outcome form.Outcome) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(outcome.Values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(fm, outcome)), nil
	default:
		return json.Marshal(outcome.Values)
	}
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if field.Placeholder != "" {
		return "e.g. " + field.Placeholder
	}
	return ""
}

func submitLabel(fm model.FormModel) string {
	if fm.SubmitLabel != "" {
		return fm.SubmitLabel + "?"
	}
	return "Submit?"
}

func flattenForm(values map[string]string) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, value)
	}
	return flattened.Encode()
}

func prettyPrint(fm model.FormModel, outcome form.Outcome) string {
	var b strings.Builder
	if outcome.ID != "" {
		fmt.Fprintf(&b, "id=%s\n", outcome.ID)
	}
	for _, field := range fm.Fields {
		fmt.Fprintf(&b, "%s=%s\n", displayLabel(field), outcome.Values[field.Name])
	}
	return b.String()
}
