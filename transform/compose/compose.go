// Package compose registers the composite containers that sequence child
// transforms. Containers only expose the call entry point.
package compose

import (
	"errors"
	"fmt"

	"augkit/transform"
	"augkit/validation"
)

var (
	Compose    *transform.Class
	Sequential *transform.Class
	OneOf      *transform.Class
)

type containerParams struct {
	Transforms []transform.Transform `mapstructure:"transforms"`
	P          float64               `mapstructure:"p"`
}

func (c *containerParams) Normalize() error {
	if len(c.Transforms) == 0 {
		return errors.New("transforms must not be empty")
	}
	for i, t := range c.Transforms {
		if t == nil {
			return fmt.Errorf("transforms[%d] is nil", i)
		}
	}
	return nil
}

var containerSchema = validation.MustStruct[containerParams](
	validation.Rule{Field: "p", Expr: "p >= 0.0 && p <= 1.0", Message: "p must be within [0, 1]"},
)

type container struct {
	cls      *transform.Class
	children []transform.Transform
	p        float64
}

func (c *container) Class() *transform.Class          { return c.cls }
func (c *container) Children() []transform.Transform { return c.children }
func (c *container) Probability() float64             { return c.p }

func init() {
	Compose = define("augkit.compose.Compose", 1.0, callAll, &Compose)
	Sequential = define("augkit.compose.Sequential", 0.5, callAll, &Sequential)
	OneOf = define("augkit.compose.OneOf", 0.5, callOne, &OneOf)
	transform.Register(Compose)
	transform.Register(Sequential)
	transform.Register(OneOf)
}

func define(name string, defaultP float64, call transform.Func, self **transform.Class) *transform.Class {
	return transform.MustDefine(transform.ClassSpec{
		Name: name,
		Kind: transform.Composite,
		Params: validation.Signature{
			validation.Required("transforms"),
			validation.Optional("p", defaultP),
		},
		Schema: containerSchema,
		New: func(kw validation.Kwargs) (transform.Transform, error) {
			children, _ := kw["transforms"].([]transform.Transform)
			return &container{cls: *self, children: children, p: kw.Float("p")}, nil
		},
		Methods: map[transform.Method]transform.Func{transform.MethodCall: call},
	})
}

// New builds a container of class c around children.
func New(c *transform.Class, p float64, children ...transform.Transform) (transform.Transform, error) {
	return c.New([]any{children}, map[string]any{"p": p})
}

func sampleOf(t transform.Transform, in any) (*container, *transform.Sample, error) {
	c, ok := t.(*container)
	if !ok {
		return nil, nil, fmt.Errorf("compose: unexpected instance %T", t)
	}
	s, ok := in.(*transform.Sample)
	if !ok || s == nil {
		return nil, nil, fmt.Errorf("compose: %s: want *Sample, got %T", c.cls.Name(), in)
	}
	return c, s, nil
}

func callAll(t transform.Transform, in any) (any, error) {
	c, s, err := sampleOf(t, in)
	if err != nil {
		return nil, err
	}
	if transform.Skip(c, s) {
		return s, nil
	}
	return transform.CallChildren(c.children, s)
}

func callOne(t transform.Transform, in any) (any, error) {
	c, s, err := sampleOf(t, in)
	if err != nil {
		return nil, err
	}
	if transform.Skip(c, s) {
		return s, nil
	}
	pick := c.children[s.Rng().IntN(len(c.children))]
	return transform.Call(pick, s)
}
