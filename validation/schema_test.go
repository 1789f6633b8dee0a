package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type abParams struct {
	A int     `mapstructure:"a"`
	B float64 `mapstructure:"b"`
}

type clampParams struct {
	P     float64   `mapstructure:"p"`
	Range []float64 `mapstructure:"range"`
}

func (c *clampParams) Normalize() error {
	c.P = min(max(c.P, 0), 1)
	if len(c.Range) == 1 {
		c.Range = []float64{-c.Range[0], c.Range[0]}
	}
	if len(c.Range) != 2 {
		return errors.New("range must have one or two elements")
	}
	return nil
}

func TestStruct_CoercesValues(t *testing.T) {
	s, err := Struct[abParams]()
	require.NoError(t, err)

	got, err := s.Validate(map[string]any{"a": 5.0, "b": "2.5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 5, "b": 2.5}, got)
}

func TestStruct_RejectsLossyIntegerNarrowing(t *testing.T) {
	s := MustStruct[abParams]()
	_, err := s.Validate(map[string]any{"a": 5.5, "b": 1})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "abParams", verr.Schema)
}

type countParams struct {
	N uint `mapstructure:"n"`
}

func TestStruct_NarrowsWholeFloatsIntoUnsigned(t *testing.T) {
	s := MustStruct[countParams]()
	got, err := s.Validate(map[string]any{"n": 3.0})
	require.NoError(t, err)
	assert.Equal(t, uint(3), got["n"])

	_, err = s.Validate(map[string]any{"n": -1.0})
	require.Error(t, err)
	_, err = s.Validate(map[string]any{"n": 2.5})
	require.Error(t, err)
}

func TestStruct_RejectsUnknownAndUnset(t *testing.T) {
	s := MustStruct[abParams]()

	_, err := s.Validate(map[string]any{"a": 1, "b": 1, "c": 3})
	require.Error(t, err)

	_, err = s.Validate(map[string]any{"b": 1})
	require.Error(t, err)
}

func TestStruct_NormalizeClampsAndExpands(t *testing.T) {
	s := MustStruct[clampParams]()
	got, err := s.Validate(map[string]any{"p": 3, "range": []any{2}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, got["p"])
	assert.Equal(t, []float64{-2, 2}, got["range"])

	_, err = s.Validate(map[string]any{"p": 0.5, "range": []float64{1, 2, 3}})
	require.Error(t, err)
}

func TestStruct_Rules(t *testing.T) {
	s, err := Struct[abParams](Rule{Field: "b", Expr: "b >= 0", Message: "b must be non-negative"})
	require.NoError(t, err)

	_, err = s.Validate(map[string]any{"a": 1, "b": 0})
	require.NoError(t, err)

	_, err = s.Validate(map[string]any{"a": 1, "b": -1})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "b", verr.Field)
	assert.Contains(t, err.Error(), "b must be non-negative")
}

func TestStruct_BadRuleFailsAtDeclaration(t *testing.T) {
	_, err := Struct[abParams](Rule{Expr: "c > 1"})
	require.Error(t, err)

	assert.Panics(t, func() { MustStruct[abParams](Rule{Expr: "a >"}) })
}

func TestStruct_NonStructType(t *testing.T) {
	_, err := Struct[int]()
	require.Error(t, err)
}
