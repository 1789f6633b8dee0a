package transform

import (
	"fmt"
	"slices"
	"strings"

	"augkit/internal/logging"
)

// Registry holds the classes that can be discovered and built by name.
type Registry struct {
	classes map[string]*Class
	short   map[string]*Class
}

func NewRegistry() *Registry {
	return &Registry{classes: map[string]*Class{}, short: map[string]*Class{}}
}

// Register adds c under its fully qualified and short names. A short name
// stays bound to the first class registered under it; later classes sharing
// it are reachable by their full name only.
func (r *Registry) Register(c *Class) {
	r.classes[c.name] = c
	short := c.ShortName()
	if prev, ok := r.short[short]; ok && prev.name != c.name {
		logging.L().Warn("transform: short name already taken", "short", short, "kept", prev.name, "class", c.name)
		return
	}
	r.short[short] = c
}

// Lookup resolves a fully qualified or short class name.
func (r *Registry) Lookup(name string) (*Class, error) {
	if c, ok := r.classes[name]; ok {
		return c, nil
	}
	if !strings.Contains(name, ".") {
		if c, ok := r.short[name]; ok {
			return c, nil
		}
	}
	return nil, fmt.Errorf("transform: unknown class %q", name)
}

// Classes returns every registered class sorted by name.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *Class) int { return strings.Compare(a.name, b.name) })
	return out
}

// Default is the registry built-in transforms register into.
var Default = NewRegistry()

// Register is called from each transform package's init().
func Register(c *Class) { Default.Register(c) }

// Lookup resolves name in the Default registry.
func Lookup(name string) (*Class, error) { return Default.Lookup(name) }
