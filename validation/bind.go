package validation

import (
	"fmt"
	"maps"
)

// Param is one declared constructor parameter.
type Param struct {
	Name       string
	Default    any
	HasDefault bool
}

// Required declares a parameter without a default value.
func Required(name string) Param { return Param{Name: name} }

// Optional declares a parameter with a default value. Defaults are shared
// between constructions and must not be mutated by constructors.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Signature is the ordered parameter list of a constructor.
type Signature []Param

// Names returns the parameter names in declaration order.
func (s Signature) Names() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Name
	}
	return out
}

// Bind maps args onto the signature in order, overlays kwargs and fills
// declared defaults for parameters that are still unset. Parameters with
// neither a value nor a default are left out of the result so the schema
// can report them.
func Bind(sig Signature, args []any, kwargs map[string]any) (map[string]any, error) {
	if len(args) > len(sig) {
		return nil, fmt.Errorf("%w: takes %d but %d were given", ErrTooManyArgs, len(sig), len(args))
	}
	out := make(map[string]any, len(sig)+len(kwargs))
	for i, a := range args {
		out[sig[i].Name] = a
	}
	maps.Copy(out, kwargs)
	for _, p := range sig {
		if _, ok := out[p.Name]; ok || !p.HasDefault {
			continue
		}
		out[p.Name] = p.Default
	}
	return out, nil
}
