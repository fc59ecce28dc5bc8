package tui

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

type stubDriver struct {
	answers      map[string][]string
	errs         map[string]error
	confirms     []bool
	prompted     []string
	defaults     map[string][]string
	infoMessages []string
}

func newStubDriver() *stubDriver {
	return &stubDriver{
		answers:  make(map[string][]string),
		errs:     make(map[string]error),
		defaults: make(map[string][]string),
	}
}

func (s *stubDriver) answer(label string, values ...string) *stubDriver {
	s.answers[label] = append(s.answers[label], values...)
	return s
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompted = append(s.prompted, cfg.Message)
	s.defaults[cfg.Message] = append(s.defaults[cfg.Message], cfg.Default)
	if err := s.errs[cfg.Message]; err != nil {
		return "", err
	}
	queue := s.answers[cfg.Message]
	if len(queue) == 0 {
		return cfg.Default, nil
	}
	s.answers[cfg.Message] = queue[1:]
	return queue[0], nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if len(s.confirms) == 0 {
		return cfg.Default, nil
	}
	next := s.confirms[0]
	s.confirms = s.confirms[1:]
	return next, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func labelsByName(t *testing.T, fm model.FormModel) map[string]string {
	t.Helper()
	out := make(map[string]string, len(fm.Fields))
	for _, field := range fm.Fields {
		out[field.Name] = displayLabel(field)
	}
	return out
}

func scriptValid(t *testing.T, driver *stubDriver, fm model.FormModel, values map[string]string) {
	t.Helper()
	labels := labelsByName(t, fm)
	for name, value := range values {
		driver.answer(labels[name], value)
	}
}

func TestRenderer_AcceptsOnFirstRound(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()
	scriptValid(t, driver, fm, testsupport.ValidRegistration())

	renderer := New(WithPromptDriver(driver))
	out, err := renderer.Render(context.Background(), fm, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if diff := cmp.Diff(testsupport.ValidRegistration(), got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(driver.prompted) != len(fm.Fields) {
		t.Fatalf("expected %d prompts, got %v", len(fm.Fields), driver.prompted)
	}
	if driver.prompted[0] != "FirstName" {
		t.Fatalf("expected first prompt for FirstName, got %q", driver.prompted[0])
	}
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != model.RegistrationTitle {
		t.Fatalf("expected only the title to be printed, got %v", driver.infoMessages)
	}
}

func TestRenderer_RepromptsOnlyInvalidFields(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()
	valid := testsupport.ValidRegistration()
	scriptValid(t, driver, fm, testsupport.With(valid, validation.FieldCPF, "123456789"))
	driver.answer("CPF", valid[validation.FieldCPF])

	outcome, err := New(WithPromptDriver(driver)).Run(context.Background(), fm, render.RenderOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !outcome.Accepted() || outcome.ID == "" {
		t.Fatalf("expected accepted outcome with id, got %+v", outcome)
	}

	if len(driver.prompted) != len(fm.Fields)+1 {
		t.Fatalf("expected one extra prompt, got %v", driver.prompted)
	}
	if last := driver.prompted[len(driver.prompted)-1]; last != "CPF" {
		t.Fatalf("expected re-prompt for CPF, got %q", last)
	}
	if diff := cmp.Diff([]string{"", "123456789"}, driver.defaults["CPF"]); diff != "" {
		t.Fatalf("cpf defaults mismatch (-want +got):\n%s", diff)
	}

	wantError := "✗ CPF: " + validation.MessageInvalidCPF
	if !containsString(driver.infoMessages, wantError) {
		t.Fatalf("expected %q in %v", wantError, driver.infoMessages)
	}
}

func TestRenderer_PrefillsFromRenderOptions(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()

	outcome, err := New(WithPromptDriver(driver)).Run(context.Background(), fm, render.RenderOptions{
		Values: testsupport.ValidRegistration(),
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !outcome.Accepted() {
		t.Fatalf("expected prefilled values to be accepted, got %v", outcome.Errors)
	}
	if got := driver.defaults["Email"]; len(got) != 1 || got[0] != "ana@example.com" {
		t.Fatalf("expected email default from options, got %v", got)
	}
}

func TestRenderer_AbortPropagates(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()
	driver.errs["Email"] = ErrAborted

	_, err := New(WithPromptDriver(driver)).Render(context.Background(), fm, render.RenderOptions{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRenderer_PromptErrorIsWrapped(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()
	boom := errors.New("tty closed")
	driver.errs["Phone"] = boom

	_, err := New(WithPromptDriver(driver)).Render(context.Background(), fm, render.RenderOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped prompt error, got %v", err)
	}
	if !strings.Contains(err.Error(), "phone") {
		t.Fatalf("expected field name in error, got %v", err)
	}
}

func TestRenderer_MaxRounds(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()

	_, err := New(WithPromptDriver(driver), WithMaxRounds(2)).Run(context.Background(), fm, render.RenderOptions{})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestRenderer_ConfirmDeclined(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()
	driver.confirms = []bool{false}

	_, err := New(WithPromptDriver(driver), WithConfirm(true)).Run(context.Background(), fm, render.RenderOptions{
		Values: testsupport.ValidRegistration(),
	})
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}

func TestRenderer_SubmitterReceivesValues(t *testing.T) {
	fm := model.MustRegistrationForm()
	driver := newStubDriver()

	var received form.Submission
	submitter := form.SubmitterFunc(func(_ context.Context, s form.Submission) error {
		received = s
		return nil
	})
	renderer := New(
		WithPromptDriver(driver),
		WithFormOptions(form.WithSubmitter(submitter), form.WithIDGenerator(func() string { return "sub-1" })),
	)

	outcome, err := renderer.Run(context.Background(), fm, render.RenderOptions{Values: testsupport.ValidRegistration()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.ID != "sub-1" || received.ID != "sub-1" {
		t.Fatalf("expected submission id sub-1, got outcome=%q received=%q", outcome.ID, received.ID)
	}
	if diff := cmp.Diff(testsupport.ValidRegistration(), received.Values); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_OutputFormats(t *testing.T) {
	fm := model.MustRegistrationForm()
	values := testsupport.ValidRegistration()

	t.Run("form", func(t *testing.T) {
		renderer := New(WithPromptDriver(newStubDriver()), WithOutputFormat(OutputFormatFormURLEncoded))
		out, err := renderer.Render(context.Background(), fm, render.RenderOptions{Values: values})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		parsed, err := url.ParseQuery(string(out))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if parsed.Get(validation.FieldCity) != "Rio de Janeiro" {
			t.Fatalf("unexpected form output %q", out)
		}
		if renderer.ContentType() != "application/x-www-form-urlencoded" {
			t.Fatalf("unexpected content type %q", renderer.ContentType())
		}
	})

	t.Run("pretty", func(t *testing.T) {
		renderer := New(
			WithPromptDriver(newStubDriver()),
			WithOutputFormat(OutputFormatPrettyText),
			WithFormOptions(form.WithIDGenerator(func() string { return "sub-2" })),
		)
		out, err := renderer.Render(context.Background(), fm, render.RenderOptions{Values: values})
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		if len(lines) != len(fm.Fields)+1 {
			t.Fatalf("expected %d lines, got %q", len(fm.Fields)+1, out)
		}
		if lines[0] != "id=sub-2" || lines[1] != "FirstName=Ana" {
			t.Fatalf("unexpected pretty output %q", out)
		}
	})
}

func TestRenderer_RejectsUnknownField(t *testing.T) {
	fm := model.FormModel{ID: "custom", Fields: []model.Field{{Name: "nickname"}}}
	_, err := New(WithPromptDriver(newStubDriver())).Run(context.Background(), fm, render.RenderOptions{})
	if !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, raw := range []string{"json", "form", "pretty"} {
		if _, ok := ParseOutputFormat(raw); !ok {
			t.Fatalf("expected %q to parse", raw)
		}
	}
	if _, ok := ParseOutputFormat("xml"); ok {
		t.Fatalf("expected xml to be rejected")
	}
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}

