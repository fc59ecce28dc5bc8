package model

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Registration form identity and copy.
const (
	RegistrationFormID  = "registration"
	RegistrationTitle   = "Formulário de Cadastro"
	RegistrationSubmit  = "Cadastrar"
	RegistrationAction  = "/"
	RegistrationSummary = "Customer registration"
)

type layoutHint struct {
	label     string
	inputType string
	maxLength int
	row       int
	autofocus bool
}

// Rows 1, 2 and 3 pair firstName/lastName, cep/number and state/city.
var registrationLayout = map[string]layoutHint{
	validation.FieldFirstName:    {label: "FirstName", row: 1, autofocus: true},
	validation.FieldLastName:     {label: "LastName", row: 1},
	validation.FieldEmail:        {label: "Email", inputType: InputTypeEmail},
	validation.FieldCPF:          {label: "CPF", maxLength: 14},
	validation.FieldCEP:          {label: "CEP", maxLength: 9, row: 2},
	validation.FieldNumber:       {label: "Number", row: 2},
	validation.FieldStreet:       {label: "Street"},
	validation.FieldNeighborhood: {label: "Neighborhood"},
	validation.FieldState:        {label: "State", row: 3},
	validation.FieldCity:         {label: "City", row: 3},
	validation.FieldPhone:        {label: "Phone", inputType: InputTypeTel, maxLength: 15},
}

// RegistrationLayout decorates a model built from the registration schema with
// its labels, input types, max lengths and row grouping.
func RegistrationLayout() Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		if form == nil {
			return fmt.Errorf("model: registration layout: nil form")
		}
		form.Title = RegistrationTitle
		form.SubmitLabel = RegistrationSubmit
		if form.Action == "" {
			form.Action = RegistrationAction
		}
		for idx := range form.Fields {
			field := &form.Fields[idx]
			hint, ok := registrationLayout[field.Name]
			if !ok {
				return fmt.Errorf("model: registration layout: unexpected field %q", field.Name)
			}
			field.Label = hint.label
			if hint.inputType != "" {
				field.InputType = hint.inputType
			}
			field.MaxLength = hint.maxLength
			field.Row = hint.row
			field.Autofocus = hint.autofocus
		}
		return nil
	})
}

// DefaultRegistrationForm builds the registration model with its default
// layout applied.
func DefaultRegistrationForm() (FormModel, error) {
	form, err := NewBuilder().Build(RegistrationFormID, validation.RegistrationSchema())
	if err != nil {
		return FormModel{}, err
	}
	if err := Decorate(&form, RegistrationLayout()); err != nil {
		return FormModel{}, err
	}
	return form, nil
}

// MustRegistrationForm panics when the default registration model cannot be
// built.
func MustRegistrationForm() FormModel {
	form, err := DefaultRegistrationForm()
	if err != nil {
		panic(err)
	}
	return form
}
