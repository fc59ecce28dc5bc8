package uischema

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/model"
)

// Decorator applies UI schema overrides to a form model.
type Decorator struct {
	store *Store
}

// NewDecorator builds a Decorator backed by the provided store. When store is
// nil or empty, the decorator becomes a no-op.
func NewDecorator(store *Store) *Decorator {
	return &Decorator{store: store}
}

var _ model.Decorator = (*Decorator)(nil)

// Decorate augments the supplied form with the overrides registered under its
// ID. Overrides naming a field the form does not declare are rejected.
func (d *Decorator) Decorate(form *model.FormModel) error {
	if d == nil || d.store.Empty() || form == nil {
		return nil
	}

	overrides, ok := d.store.Form(form.ID)
	if !ok {
		return nil
	}

	applyFormConfig(form, overrides.Form)

	names := make([]string, 0, len(overrides.Fields))
	for name := range overrides.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		cfg := overrides.Fields[name]
		idx := form.FieldIndex(name)
		if idx < 0 {
			return fmt.Errorf("uischema: form %q (file %s) overrides unknown field %q", form.ID, overrides.Source, name)
		}
		if err := applyFieldConfig(&form.Fields[idx], cfg); err != nil {
			return fmt.Errorf("uischema: form %q (file %s) field %q: %w", form.ID, overrides.Source, name, err)
		}
	}
	return nil
}

func applyFormConfig(form *model.FormModel, cfg FormConfig) {
	if cfg.Title != "" {
		form.Title = cfg.Title
	}
	if cfg.SubmitLabel != "" {
		form.SubmitLabel = cfg.SubmitLabel
	}
	if cfg.Action != "" {
		form.Action = cfg.Action
	}
	form.Metadata = mergeStringMap(form.Metadata, cfg.Metadata)
}

func applyFieldConfig(field *model.Field, cfg FieldConfig) error {
	if cfg.Label != "" {
		field.Label = cfg.Label
	}
	if cfg.Placeholder != "" {
		field.Placeholder = cfg.Placeholder
	}
	if cfg.InputType != "" {
		inputType := strings.ToLower(strings.TrimSpace(cfg.InputType))
		switch inputType {
		case model.InputTypeText, model.InputTypeEmail, model.InputTypeTel:
			field.InputType = inputType
		default:
			return fmt.Errorf("unsupported input type %q", cfg.InputType)
		}
	}
	if cfg.MaxLength != nil {
		field.MaxLength = *cfg.MaxLength
	}
	if cfg.Row != nil {
		field.Row = *cfg.Row
	}
	if cfg.Autofocus != nil {
		field.Autofocus = *cfg.Autofocus
	}
	if cfg.Help != "" {
		field.HelpHTML = SanitizeHelp(cfg.Help)
	}
	field.UIHints = mergeStringMap(field.UIHints, cfg.UIHints)
	return nil
}

func mergeStringMap(target, updates map[string]string) map[string]string {
	if len(updates) == 0 {
		return target
	}
	if target == nil {
		target = make(map[string]string, len(updates))
	}
	for key, value := range updates {
		target[key] = value
	}
	return target
}

// LoadRegistration builds the default registration form and applies the
// overrides found in fsys.
func LoadRegistration(fsys fs.FS) (model.FormModel, error) {
	store, err := LoadFS(fsys)
	if err != nil {
		return model.FormModel{}, err
	}
	form, err := model.DefaultRegistrationForm()
	if err != nil {
		return model.FormModel{}, err
	}
	if err := model.Decorate(&form, NewDecorator(store)); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}
