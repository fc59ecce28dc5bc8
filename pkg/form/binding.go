package form

// Binding connects one form field to the component displaying it. Set
// updates the form's value record; Value always reflects the latest input.
type Binding struct {
	Name string
	form *Form
}

// Value returns the field's current value.
func (b *Binding) Value() string {
	return b.form.values[b.Name]
}

// Set records new input for the field and notifies watchers.
func (b *Binding) Set(value string) {
	b.form.set(b.Name, value)
}

// Error returns the field's message from the last rejected submission, or "".
func (b *Binding) Error() string {
	return b.form.errors[b.Name]
}

// Watch registers fn to be called with every new value of the field,
// including the reset to "" after an accepted submission.
func (b *Binding) Watch(fn func(value string)) {
	if fn == nil {
		return
	}
	b.form.watchers[b.Name] = append(b.form.watchers[b.Name], fn)
}
