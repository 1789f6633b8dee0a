package transform

import (
	"errors"
	"fmt"
	"strings"

	"augkit/validation"
)

var (
	ErrNoMethod         = errors.New("transform: method not defined")
	ErrAlreadyHooked    = errors.New("transform: method already hooked")
	ErrNotConstructible = errors.New("transform: class has no constructor")
)

// Kind tags a class as a leaf or a composite container.
type Kind int

const (
	Leaf Kind = iota
	Composite
)

func (k Kind) String() string {
	if k == Composite {
		return "composite"
	}
	return "leaf"
}

// Transform is an instance of a Class.
type Transform interface {
	Class() *Class
}

// Func is one method table entry. The type of in and of the result depends
// on the method: *Sample for MethodCall, *Image for apply/apply_to_mask,
// []*Image for apply_to_masks, BBox/[]BBox and Keypoint/[]Keypoint for the
// box and keypoint methods.
type Func func(t Transform, in any) (any, error)

// ClassSpec declares a class. Name is fully qualified ("augkit.geometric.HorizontalFlip").
// When Schema is set, New is required.
type ClassSpec struct {
	Name    string
	Kind    Kind
	Params  validation.Signature
	Schema  validation.Schema
	New     validation.Constructor[Transform]
	Methods map[Method]Func
}

// Class is a transform type. Its method table is shared by every instance,
// so replacing an entry affects all of them.
type Class struct {
	name    string
	kind    Kind
	methods map[Method]Func
	hooked  map[Method]bool
	factory *validation.Factory[Transform]
}

// Define builds a class from spec. A schema without a constructor is
// reported here, not at first construction.
func Define(spec ClassSpec) (*Class, error) {
	if spec.Name == "" {
		return nil, errors.New("transform: class name is required")
	}
	c := &Class{
		name:    spec.Name,
		kind:    spec.Kind,
		methods: make(map[Method]Func, len(spec.Methods)),
		hooked:  make(map[Method]bool),
	}
	for m, fn := range spec.Methods {
		if fn != nil {
			c.methods[m] = fn
		}
	}
	if spec.New == nil && spec.Schema == nil {
		return c, nil
	}
	f, err := validation.NewFactory(spec.Params, spec.Schema, spec.New)
	if err != nil {
		return nil, fmt.Errorf("transform: define %s: %w", spec.Name, err)
	}
	c.factory = f
	return c, nil
}

// MustDefine is Define for package-level declarations.
func MustDefine(spec ClassSpec) *Class {
	c, err := Define(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the fully qualified class name.
func (c *Class) Name() string { return c.name }

// ShortName returns the last dot-separated element of the name.
func (c *Class) ShortName() string {
	if i := strings.LastIndexByte(c.name, '.'); i >= 0 {
		return c.name[i+1:]
	}
	return c.name
}

func (c *Class) Kind() Kind        { return c.kind }
func (c *Class) IsComposite() bool { return c.kind == Composite }
func (c *Class) String() string    { return c.name }

// Has reports whether the class defines m.
func (c *Class) Has(m Method) bool {
	_, ok := c.methods[m]
	return ok
}

// Signature returns the declared constructor parameters.
func (c *Class) Signature() validation.Signature {
	if c.factory == nil {
		return nil
	}
	return c.factory.Signature()
}

// New constructs an instance from raw arguments.
func (c *Class) New(args []any, kwargs map[string]any) (Transform, error) {
	if c.factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotConstructible, c.name)
	}
	return c.factory.New(args, kwargs)
}

// Hook replaces method m with wrap(original) and returns a function that
// puts the original back. A method can carry one hook at a time.
func (c *Class) Hook(m Method, wrap func(Func) Func) (restore func(), err error) {
	orig, ok := c.methods[m]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoMethod, c.name, m)
	}
	if c.hooked[m] {
		return nil, fmt.Errorf("%w: %s.%s", ErrAlreadyHooked, c.name, m)
	}
	c.methods[m] = wrap(orig)
	c.hooked[m] = true
	return func() {
		if !c.hooked[m] {
			return
		}
		c.methods[m] = orig
		delete(c.hooked, m)
	}, nil
}

// Hooked reports whether m currently carries a hook.
func (c *Class) Hooked(m Method) bool { return c.hooked[m] }

// Invoke calls method m of t's class.
func Invoke(t Transform, m Method, in any) (any, error) {
	c := t.Class()
	fn, ok := c.methods[m]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoMethod, c.name, m)
	}
	return fn(t, in)
}

// Call runs t over s through the class's call entry point.
func Call(t Transform, s *Sample) (*Sample, error) {
	out, err := Invoke(t, MethodCall, s)
	if err != nil {
		return nil, err
	}
	res, ok := out.(*Sample)
	if !ok {
		return nil, fmt.Errorf("transform: %s.%s returned %T, want *Sample", t.Class().name, MethodCall, out)
	}
	return res, nil
}
