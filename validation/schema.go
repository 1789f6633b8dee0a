package validation

import (
	"fmt"
	"math"
	"reflect"

	"fortio.org/safecast"
	"github.com/go-viper/mapstructure/v2"
)

// Schema validates a bound keyword set and returns the coerced values the
// constructor receives.
type Schema interface {
	Validate(kwargs map[string]any) (map[string]any, error)
}

// Normalizer is implemented by schema structs that clamp, normalize or
// cross-check their fields once decoding succeeded.
type Normalizer interface {
	Normalize() error
}

type structSchema[S any] struct {
	name   string
	fields []field
	rules  []compiledRule
}

type field struct {
	key   string
	index int
}

// Struct returns a Schema backed by the struct type S. Keys are matched to
// fields through their mapstructure tags. Decoding is weakly typed so
// compatible values are narrowed (a float is accepted for an int field only
// when it is integral and in range); unknown keys and unset fields are
// rejected. When *S implements Normalizer it runs after decoding, then the
// rules are evaluated against the resulting values.
func Struct[S any](rules ...Rule) (Schema, error) {
	t := reflect.TypeFor[S]()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("validation: schema type %v is not a struct", t)
	}
	s := &structSchema[S]{name: t.Name()}
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		key := f.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			key = f.Name
		}
		s.fields = append(s.fields, field{key: key, index: i})
		names = append(names, key)
	}
	var err error
	if s.rules, err = compileRules(names, rules); err != nil {
		return nil, err
	}
	return s, nil
}

// MustStruct is Struct for package-level declarations; it panics on error.
func MustStruct[S any](rules ...Rule) Schema {
	s, err := Struct[S](rules...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *structSchema[S]) Validate(kwargs map[string]any) (map[string]any, error) {
	var v S
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &v,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ErrorUnset:       true,
		DecodeHook:       mapstructure.DecodeHookFuncType(integralHook),
	})
	if err != nil {
		return nil, fmt.Errorf("validation: %s decoder: %w", s.name, err)
	}
	if err := dec.Decode(kwargs); err != nil {
		return nil, &Error{Schema: s.name, Err: err}
	}
	if n, ok := any(&v).(Normalizer); ok {
		if err := n.Normalize(); err != nil {
			return nil, &Error{Schema: s.name, Err: err}
		}
	}

	rv := reflect.ValueOf(v)
	out := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		out[f.key] = rv.Field(f.index).Interface()
	}
	for _, r := range s.rules {
		if err := r.check(out); err != nil {
			return nil, &Error{Schema: s.name, Field: r.Field, Err: err}
		}
	}
	return out, nil
}

// integralHook narrows floats into integer fields only when no information
// is lost.
func integralHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float32 && from.Kind() != reflect.Float64 {
		return data, nil
	}
	f := reflect.ValueOf(data).Float()
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if math.Trunc(f) != f {
			return nil, fmt.Errorf("%v is not an integer", data)
		}
		return safecast.Convert[int64](f)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if math.Trunc(f) != f {
			return nil, fmt.Errorf("%v is not an integer", data)
		}
		return safecast.Convert[uint64](f)
	}
	return data, nil
}
