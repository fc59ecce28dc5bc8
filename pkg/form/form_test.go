package form_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

type recorder struct {
	submissions []form.Submission
	err         error
}

func (r *recorder) Submit(_ context.Context, submission form.Submission) error {
	if r.err != nil {
		return r.err
	}
	r.submissions = append(r.submissions, submission)
	return nil
}

func newForm(t *testing.T, options ...form.Option) *form.Form {
	t.Helper()
	f, err := form.New(options...)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func emptyRegistration() map[string]string {
	out := make(map[string]string, len(validation.RegistrationFields))
	for _, field := range validation.RegistrationFields {
		out[field] = ""
	}
	return out
}

func TestSubmit_AcceptedClearsEveryField(t *testing.T) {
	sink := &recorder{}
	var events []form.Event
	f := newForm(t,
		form.WithSubmitter(sink),
		form.WithIDGenerator(func() string { return "sub-1" }),
		form.WithObserver(func(e form.Event) { events = append(events, e) }),
	)

	outcome, err := f.Submit(context.Background(), testsupport.ValidRegistration())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Accepted() || outcome.ID != "sub-1" {
		t.Fatalf("expected accepted outcome with id, got %+v", outcome)
	}

	if len(sink.submissions) != 1 {
		t.Fatalf("expected one hand-off, got %d", len(sink.submissions))
	}
	if diff := cmp.Diff(testsupport.ValidRegistration(), sink.submissions[0].Values); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(emptyRegistration(), f.Values()); diff != "" {
		t.Fatalf("values not cleared (-want +got):\n%s", diff)
	}
	if len(f.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", f.Errors())
	}
	if f.State() != form.StateEditing {
		t.Fatalf("expected editing state, got %s", f.State())
	}

	wantEvents := []form.Event{
		{From: form.StateEditing, To: form.StateValidating},
		{From: form.StateValidating, To: form.StateSubmitted},
		{From: form.StateSubmitted, To: form.StateEditing},
	}
	if diff := cmp.Diff(wantEvents, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_RejectedKeepsValuesAndStoresErrors(t *testing.T) {
	sink := &recorder{}
	var events []form.Event
	f := newForm(t,
		form.WithSubmitter(sink),
		form.WithObserver(func(e form.Event) { events = append(events, e) }),
	)

	input := testsupport.With(testsupport.ValidRegistration(), validation.FieldCPF, "123456789")
	input[validation.FieldEmail] = "not-an-email"

	outcome, err := f.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Accepted() || outcome.ID != "" {
		t.Fatalf("expected rejected outcome, got %+v", outcome)
	}
	if len(sink.submissions) != 0 {
		t.Fatalf("submitter must not run on rejection")
	}

	if diff := cmp.Diff(input, f.Values()); diff != "" {
		t.Fatalf("values changed (-want +got):\n%s", diff)
	}
	wantErrors := map[string]string{
		validation.FieldCPF:   validation.MessageInvalidCPF,
		validation.FieldEmail: validation.MessageInvalidEmail,
	}
	if diff := cmp.Diff(wantErrors, f.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if f.State() != form.StateEditingWithErrors {
		t.Fatalf("expected editing_with_errors, got %s", f.State())
	}
	if last := events[len(events)-1]; last.To != form.StateEditingWithErrors || len(last.Errors) != 2 {
		t.Fatalf("unexpected final event %+v", last)
	}

	cpf, err := f.Register(validation.FieldCPF)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if cpf.Error() != validation.MessageInvalidCPF {
		t.Fatalf("binding error mismatch: %q", cpf.Error())
	}
	city, _ := f.Register(validation.FieldCity)
	if city.Error() != "" {
		t.Fatalf("valid field should carry no error, got %q", city.Error())
	}
}

func TestSubmit_CorrectingErrorsThenAccepting(t *testing.T) {
	f := newForm(t)
	input := testsupport.With(testsupport.ValidRegistration(), validation.FieldCEP, "1234-567")
	if outcome, _ := f.Submit(context.Background(), input); outcome.Accepted() {
		t.Fatalf("expected rejection")
	}

	cep, _ := f.Register(validation.FieldCEP)
	cep.Set("12345678")
	outcome, err := f.Submit(context.Background(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Accepted() {
		t.Fatalf("expected acceptance after correction, got %v", outcome.Errors)
	}
	if outcome.Values[validation.FieldCEP] != "12345678" {
		t.Fatalf("outcome should keep the accepted values, got %q", outcome.Values[validation.FieldCEP])
	}
	if cep.Value() != "" || cep.Error() != "" {
		t.Fatalf("binding not reset: value=%q error=%q", cep.Value(), cep.Error())
	}
}

func TestSubmit_SubmitterErrorKeepsValues(t *testing.T) {
	boom := errors.New("transport down")
	f := newForm(t, form.WithSubmitter(&recorder{err: boom}))

	_, err := f.Submit(context.Background(), testsupport.ValidRegistration())
	if !errors.Is(err, boom) {
		t.Fatalf("expected submitter error, got %v", err)
	}
	if diff := cmp.Diff(testsupport.ValidRegistration(), f.Values()); diff != "" {
		t.Fatalf("values should be kept (-want +got):\n%s", diff)
	}
	if f.State() != form.StateEditing {
		t.Fatalf("expected editing state, got %s", f.State())
	}
}

func TestSubmit_CanceledContext(t *testing.T) {
	f := newForm(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Submit(ctx, testsupport.ValidRegistration()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if f.State() != form.StateEditing {
		t.Fatalf("state should not change, got %s", f.State())
	}
}

func TestSubmit_IgnoresUnknownKeys(t *testing.T) {
	f := newForm(t)
	input := testsupport.ValidRegistration()
	input["nickname"] = "ana"
	outcome, err := f.Submit(context.Background(), input)
	if err != nil || !outcome.Accepted() {
		t.Fatalf("expected acceptance, got %+v err=%v", outcome, err)
	}
	if _, ok := outcome.Values["nickname"]; ok {
		t.Fatalf("unknown key leaked into values")
	}
}

func TestRegister_UnknownField(t *testing.T) {
	f := newForm(t)
	if _, err := f.Register("nickname"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, _, err := f.Props("nickname"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField from Props, got %v", err)
	}
}

func TestBinding_SetAndWatch(t *testing.T) {
	f := newForm(t)
	email, err := f.Register(validation.FieldEmail)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var seen []string
	email.Watch(func(v string) { seen = append(seen, v) })

	email.Set("a")
	email.Set("ana@example.com")
	if email.Value() != "ana@example.com" {
		t.Fatalf("value not updated: %q", email.Value())
	}
	value, message, err := f.Props(validation.FieldEmail)
	if err != nil || value != "ana@example.com" || message != "" {
		t.Fatalf("props mismatch: %q %q %v", value, message, err)
	}

	f.Reset()
	if diff := cmp.Diff([]string{"a", "ana@example.com", ""}, seen); diff != "" {
		t.Fatalf("watch calls mismatch (-want +got):\n%s", diff)
	}
}

func TestReset_ReturnsToEditing(t *testing.T) {
	f := newForm(t)
	if _, err := f.Submit(context.Background(), map[string]string{validation.FieldFirstName: "Ana"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.Reset()
	if f.State() != form.StateEditing || len(f.Errors()) != 0 {
		t.Fatalf("reset did not clear state: %s %v", f.State(), f.Errors())
	}
	if diff := cmp.Diff(emptyRegistration(), f.Values()); diff != "" {
		t.Fatalf("values not cleared (-want +got):\n%s", diff)
	}
}

func TestRenderOptions_Snapshot(t *testing.T) {
	f := newForm(t)
	_, _ = f.Submit(context.Background(), map[string]string{validation.FieldEmail: "bad"})
	opts := f.RenderOptions()
	opts.Values[validation.FieldEmail] = "mutated"
	if f.Values()[validation.FieldEmail] != "bad" {
		t.Fatalf("render options must not alias form state")
	}
	if opts.Errors[validation.FieldEmail] != validation.MessageInvalidEmail {
		t.Fatalf("missing email error in render options: %v", opts.Errors)
	}
}

func TestNew_NilSchema(t *testing.T) {
	if _, err := form.New(form.WithSchema(nil)); !errors.Is(err, form.ErrNilSchema) {
		t.Fatalf("expected ErrNilSchema, got %v", err)
	}
}

func TestLogSubmitter_LogsRecord(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f := newForm(t,
		form.WithSubmitter(form.LogSubmitter(zap.New(core))),
		form.WithIDGenerator(func() string { return "sub-42" }),
		form.WithClock(func() time.Time { return stamp }),
	)

	if _, err := f.Submit(context.Background(), testsupport.ValidRegistration()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	entries := logs.FilterMessage("registration submitted").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["submission_id"] != "sub-42" || fields["phone_e164"] != "+5521987654321" || fields["cpf"] != "529.982.247-25" {
		t.Fatalf("unexpected log fields: %v", fields)
	}
}

func TestState_String(t *testing.T) {
	if form.StateEditingWithErrors.String() != "editing_with_errors" || form.State(99).String() != "unknown" {
		t.Fatalf("unexpected state names")
	}
}

func TestProperty_SubmitOutcomeMatchesValidate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		input := make(map[string]string, len(validation.RegistrationFields))
		for _, field := range validation.RegistrationFields {
			if rapid.Bool().Draw(rt, "valid-"+field) {
				input[field] = testsupport.ValidRegistration()[field]
			} else {
				input[field] = rapid.StringMatching(`[a-z0-9 .\-@]{0,12}`).Draw(rt, field)
			}
		}

		f, err := form.New()
		if err != nil {
			rt.Fatalf("new form: %v", err)
		}
		expected := f.Validate(input)

		outcome, err := f.Submit(context.Background(), input)
		if err != nil {
			rt.Fatalf("submit: %v", err)
		}
		if outcome.Accepted() != expected.Accepted() {
			rt.Fatalf("submit and validate disagree")
		}
		if outcome.Accepted() {
			if diff := cmp.Diff(emptyRegistration(), f.Values()); diff != "" {
				rt.Fatalf("accepted submit must clear values (-want +got):\n%s", diff)
			}
			if len(f.Errors()) != 0 {
				rt.Fatalf("accepted submit must clear errors")
			}
			return
		}
		if diff := cmp.Diff(input, f.Values()); diff != "" {
			rt.Fatalf("rejected submit must keep values (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(expected.Errors, f.Errors()); diff != "" {
			rt.Fatalf("stored errors mismatch (-want +got):\n%s", diff)
		}
	})
}
