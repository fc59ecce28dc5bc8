package form

import (
	"errors"

	"github.com/goliatone/go-regform/pkg/validation"
)

// ErrUnknownField is returned when binding a field the schema does not
// declare.
var ErrUnknownField = validation.ErrUnknownField

// ErrNilSchema is returned by New when no schema is available.
var ErrNilSchema = errors.New("form: schema is required")
