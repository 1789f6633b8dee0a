package validation

// Constructor builds the real object from a bound, validated keyword set.
type Constructor[T any] func(kw Kwargs) (T, error)

// Factory performs bind → default → validate → construct for one type.
type Factory[T any] struct {
	sig    Signature
	schema Schema
	ctor   Constructor[T]
}

// NewFactory fails with ErrMissingConstructor when ctor is nil, so a
// schema-enabled type without a constructor is rejected where it is
// declared rather than on first use. A nil schema skips validation.
func NewFactory[T any](sig Signature, schema Schema, ctor Constructor[T]) (*Factory[T], error) {
	if ctor == nil {
		return nil, ErrMissingConstructor
	}
	return &Factory[T]{sig: sig, schema: schema, ctor: ctor}, nil
}

// Signature returns the declared parameter list.
func (f *Factory[T]) Signature() Signature { return f.sig }

// New constructs a T. Binding and schema errors are returned unwrapped and
// the constructor is not called.
func (f *Factory[T]) New(args []any, kwargs map[string]any) (T, error) {
	var zero T
	bound, err := Bind(f.sig, args, kwargs)
	if err != nil {
		return zero, err
	}
	if f.schema == nil {
		return f.ctor(bound)
	}
	validated, err := f.schema.Validate(bound)
	if err != nil {
		return zero, err
	}
	return f.ctor(validated)
}
