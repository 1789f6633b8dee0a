package pipeline

import (
	"fmt"
	"maps"

	"augkit/internal/spec"
	"augkit/transform"
)

// Compile builds the transform tree rooted at n. Classes are resolved in
// reg by full or short name and constructed through their schema; children
// of a composite node are passed as the transforms argument.
func Compile(reg *transform.Registry, n spec.Node) (transform.Transform, error) {
	return compile(reg, n, n.Name)
}

func compile(reg *transform.Registry, n spec.Node, path string) (transform.Transform, error) {
	c, err := reg.Lookup(n.Name)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", path, err)
	}
	kwargs := maps.Clone(n.Params)
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	switch {
	case c.IsComposite():
		children := make([]transform.Transform, 0, len(n.Transforms))
		for i, ch := range n.Transforms {
			t, err := compile(reg, ch, fmt.Sprintf("%s.transforms[%d](%s)", path, i, ch.Name))
			if err != nil {
				return nil, err
			}
			children = append(children, t)
		}
		kwargs["transforms"] = children
	case n.IsComposite():
		return nil, fmt.Errorf("pipeline: %s: %s is not a composite and takes no transforms", path, c.Name())
	}
	t, err := c.New(n.Args, kwargs)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %s: %w", path, err)
	}
	return t, nil
}

// Walk visits t and its descendants depth first.
func Walk(t transform.Transform, fn func(t transform.Transform, depth int)) {
	walk(t, 0, fn)
}

func walk(t transform.Transform, depth int, fn func(transform.Transform, int)) {
	fn(t, depth)
	if c, ok := t.(transform.Container); ok {
		for _, ch := range c.Children() {
			walk(ch, depth+1, fn)
		}
	}
}
