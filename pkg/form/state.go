package form

// State is the lifecycle position of a Form.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateEditingWithErrors
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateEditingWithErrors:
		return "editing_with_errors"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Event describes one state transition. Errors is set when the transition
// enters StateEditingWithErrors.
type Event struct {
	From   State
	To     State
	Errors map[string]string
}

// Observer receives every transition in order.
type Observer func(Event)
