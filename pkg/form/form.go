package form

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Option configures a Form.
type Option func(*Form)

// WithSchema replaces the registration rule table.
func WithSchema(schema *validation.Schema) Option {
	return func(f *Form) {
		f.schema = schema
	}
}

// WithSubmitter sets the collaborator that receives accepted submissions.
func WithSubmitter(submitter Submitter) Option {
	return func(f *Form) {
		if submitter != nil {
			f.submitter = submitter
		}
	}
}

// WithObserver registers a transition observer. Observers run synchronously
// in registration order.
func WithObserver(observer Observer) Option {
	return func(f *Form) {
		if observer != nil {
			f.observers = append(f.observers, observer)
		}
	}
}

// WithIDGenerator overrides how submission ids are produced.
func WithIDGenerator(next func() string) Option {
	return func(f *Form) {
		if next != nil {
			f.newID = next
		}
	}
}

// WithClock overrides the time source used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// Form is a single registration form instance.
type Form struct {
	schema    *validation.Schema
	submitter Submitter
	observers []Observer
	newID     func() string
	now       func() time.Time

	state    State
	values   map[string]string
	errors   map[string]string
	watchers map[string][]func(string)
}

// New builds an empty form in StateEditing. Without WithSubmitter accepted
// submissions are discarded.
func New(options ...Option) (*Form, error) {
	f := &Form{
		schema:    validation.RegistrationSchema(),
		submitter: LogSubmitter(zap.NewNop()),
		newID:     uuid.NewString,
		now:       time.Now,
		state:     StateEditing,
		watchers:  make(map[string][]func(string)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.schema == nil {
		return nil, ErrNilSchema
	}
	f.values = emptyValues(f.schema)
	return f, nil
}

// Outcome is the result of one Submit call. ID is set only when the
// submission was accepted and handed off.
type Outcome struct {
	validation.Result
	ID string
}

// Register binds one field. Unknown fields are rejected with ErrUnknownField.
func (f *Form) Register(field string) (*Binding, error) {
	if !f.schema.Has(field) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return &Binding{Name: field, form: f}, nil
}

// Validate checks values against the schema without touching form state.
func (f *Form) Validate(values map[string]string) validation.Result {
	return f.schema.Validate(values)
}

// Submit merges raw into the current values and validates the result. On
// rejection the values are kept and the errors stored. On acceptance the
// submission is handed to the Submitter and every field is cleared. A
// Submitter error is returned and the values are kept.
func (f *Form) Submit(ctx context.Context, raw map[string]string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	for _, field := range f.schema.Fields() {
		if value, ok := raw[field]; ok {
			f.set(field, value)
		}
	}

	f.transition(StateValidating, nil)
	result := f.schema.Validate(f.values)

	if !result.Accepted() {
		f.errors = cloneMap(result.Errors)
		f.transition(StateEditingWithErrors, result.Errors)
		return Outcome{Result: result}, nil
	}

	submission := Submission{
		ID:         f.newID(),
		Values:     cloneMap(result.Values),
		ReceivedAt: f.now(),
	}
	if err := f.submitter.Submit(ctx, submission); err != nil {
		f.errors = nil
		f.transition(StateEditing, nil)
		return Outcome{Result: result}, fmt.Errorf("form: submit %s: %w", submission.ID, err)
	}

	f.transition(StateSubmitted, nil)
	f.clear()
	f.transition(StateEditing, nil)
	return Outcome{Result: result, ID: submission.ID}, nil
}

// Reset clears every value and error and returns to StateEditing.
func (f *Form) Reset() {
	f.clear()
	if f.state != StateEditing {
		f.transition(StateEditing, nil)
	}
}

// State returns the current lifecycle state.
func (f *Form) State() State {
	return f.state
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]string {
	return cloneMap(f.values)
}

// Errors returns a copy of the errors of the last rejected submission.
func (f *Form) Errors() map[string]string {
	return cloneMap(f.errors)
}

// Fields returns the bound schema's field names in order.
func (f *Form) Fields() []string {
	return f.schema.Fields()
}

// Props returns the value and error pair a labeled field displays.
func (f *Form) Props(field string) (value, message string, err error) {
	if !f.schema.Has(field) {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return f.values[field], f.errors[field], nil
}

// RenderOptions snapshots the values and errors for a renderer.
func (f *Form) RenderOptions() render.RenderOptions {
	return render.RenderOptions{
		Values: f.Values(),
		Errors: f.Errors(),
	}
}

func (f *Form) set(field, value string) {
	f.values[field] = value
	for _, watch := range f.watchers[field] {
		watch(value)
	}
}

func (f *Form) clear() {
	f.errors = nil
	for _, field := range f.schema.Fields() {
		f.set(field, "")
	}
}

func (f *Form) transition(to State, errs map[string]string) {
	event := Event{From: f.state, To: to}
	if len(errs) > 0 {
		event.Errors = cloneMap(errs)
	}
	f.state = to
	for _, observer := range f.observers {
		observer(event)
	}
}

func emptyValues(schema *validation.Schema) map[string]string {
	fields := schema.Fields()
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[field] = ""
	}
	return values
}

func cloneMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
