package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ab struct {
	a int
	b float64
}

func newABFactory(t *testing.T, calls *int) *Factory[*ab] {
	t.Helper()
	schema, err := Struct[abParams](Rule{Field: "b", Expr: "b >= 0", Message: "b must be non-negative"})
	require.NoError(t, err)
	f, err := NewFactory(abSig, schema, func(kw Kwargs) (*ab, error) {
		*calls++
		return &ab{a: kw.Int("a"), b: kw.Float("b")}, nil
	})
	require.NoError(t, err)
	return f
}

func TestFactory_BindsValidatesAndConstructs(t *testing.T) {
	var calls int
	f := newABFactory(t, &calls)

	v, err := f.New([]any{5}, nil)
	require.NoError(t, err)
	assert.Equal(t, &ab{a: 5, b: 10}, v)

	v, err = f.New([]any{5}, map[string]any{"b": 20})
	require.NoError(t, err)
	assert.Equal(t, &ab{a: 5, b: 20}, v)

	v, err = f.New(nil, map[string]any{"a": 5})
	require.NoError(t, err)
	assert.Equal(t, &ab{a: 5, b: 10}, v)
	assert.Equal(t, 3, calls)
}

func TestFactory_SchemaErrorSurfacesUnwrapped(t *testing.T) {
	var calls int
	f := newABFactory(t, &calls)

	v, err := f.New([]any{5}, map[string]any{"b": -1})
	require.Error(t, err)
	_, isSchemaErr := err.(*Error)
	assert.True(t, isSchemaErr, "want *Error, got %T", err)
	assert.Nil(t, v)
	assert.Zero(t, calls)
}

func TestFactory_BindingError(t *testing.T) {
	var calls int
	f := newABFactory(t, &calls)

	_, err := f.New([]any{1, 2, 3}, nil)
	require.ErrorIs(t, err, ErrTooManyArgs)
	assert.Zero(t, calls)
}

func TestNewFactory_MissingConstructor(t *testing.T) {
	_, err := NewFactory[*ab](abSig, MustStruct[abParams](), nil)
	require.ErrorIs(t, err, ErrMissingConstructor)
}

func TestFactory_NoSchemaPassesBoundArgs(t *testing.T) {
	f, err := NewFactory(abSig, nil, func(kw Kwargs) (map[string]any, error) { return kw, nil })
	require.NoError(t, err)
	got, err := f.New([]any{"x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "x", "b": 10}, got)
}

func TestKwargs_Floats(t *testing.T) {
	kw := Kwargs{"a": []any{1, "2.5"}, "b": []float64{3}, "c": 4}
	assert.Equal(t, []float64{1, 2.5}, kw.Floats("a"))
	assert.Equal(t, []float64{3}, kw.Floats("b"))
	assert.Equal(t, []float64{4}, kw.Floats("c"))
	assert.Nil(t, kw.Floats("missing"))
}
