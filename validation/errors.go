package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyArgs is returned by Bind when more positional arguments are
	// supplied than the signature declares.
	ErrTooManyArgs = errors.New("validation: too many positional arguments")

	// ErrMissingConstructor is returned when a schema is declared for a type
	// that has no constructor to forward the validated arguments to.
	ErrMissingConstructor = errors.New("validation: constructor not found in class definition")
)

// Error is the failure produced by a Schema. Factories return it to the
// caller as-is.
type Error struct {
	Schema string
	Field  string // empty when the failure is not tied to one field
	Err    error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s.%s: %v", e.Schema, e.Field, e.Err)
	}
	return fmt.Sprintf("validation: %s: %v", e.Schema, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
