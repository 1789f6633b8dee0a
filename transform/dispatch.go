package transform

import "fmt"

// Prober is implemented by transforms applied with a probability.
type Prober interface {
	Probability() float64
}

// Skip reports whether a probabilistic transform should leave s untouched.
func Skip(t Transform, s *Sample) bool {
	p, ok := t.(Prober)
	if !ok {
		return false
	}
	return s.Rng().Float64() >= p.Probability()
}

func asSample(c *Class, in any) (*Sample, error) {
	s, ok := in.(*Sample)
	if !ok || s == nil {
		return nil, fmt.Errorf("transform: %s.%s: want *Sample, got %T", c.name, MethodCall, in)
	}
	return s, nil
}

// DispatchTargets is the call entry point of leaf transforms: after the
// probability gate it routes every populated target through the matching
// apply method of t's class. Targets the class does not handle pass
// through unchanged.
func DispatchTargets(t Transform, in any) (any, error) {
	c := t.Class()
	s, err := asSample(c, in)
	if err != nil {
		return nil, err
	}
	if Skip(t, s) {
		return s, nil
	}
	out := s.Clone()

	if out.Image != nil && c.Has(MethodApply) {
		if out.Image, err = invokeAs[*Image](t, MethodApply, out.Image); err != nil {
			return nil, err
		}
	}
	if out.Mask != nil && c.Has(MethodApplyToMask) {
		if out.Mask, err = invokeAs[*Image](t, MethodApplyToMask, out.Mask); err != nil {
			return nil, err
		}
	}
	if len(out.Masks) > 0 && c.Has(MethodApplyToMasks) {
		if out.Masks, err = invokeAs[[]*Image](t, MethodApplyToMasks, out.Masks); err != nil {
			return nil, err
		}
	}
	if len(out.BBoxes) > 0 && c.Has(MethodApplyToBBoxes) {
		if out.BBoxes, err = invokeAs[[]BBox](t, MethodApplyToBBoxes, out.BBoxes); err != nil {
			return nil, err
		}
	}
	if len(out.Keypoints) > 0 && c.Has(MethodApplyToKeypoints) {
		if out.Keypoints, err = invokeAs[[]Keypoint](t, MethodApplyToKeypoints, out.Keypoints); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func invokeAs[T any](t Transform, m Method, in any) (T, error) {
	var zero T
	out, err := Invoke(t, m, in)
	if err != nil {
		return zero, err
	}
	v, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("transform: %s.%s returned %T, want %T", t.Class().name, m, out, zero)
	}
	return v, nil
}

// EachBBox implements apply_to_bboxes by invoking apply_to_bbox per box.
func EachBBox(t Transform, in any) (any, error) {
	return each[BBox](t, MethodApplyToBBox, in)
}

// EachKeypoint implements apply_to_keypoints by invoking apply_to_keypoint
// per keypoint.
func EachKeypoint(t Transform, in any) (any, error) {
	return each[Keypoint](t, MethodApplyToKeypoint, in)
}

// EachMask implements apply_to_masks by invoking apply_to_mask per mask.
func EachMask(t Transform, in any) (any, error) {
	return each[*Image](t, MethodApplyToMask, in)
}

func each[E any](t Transform, m Method, in any) (any, error) {
	items, ok := in.([]E)
	if !ok {
		return nil, fmt.Errorf("transform: %s: want []%T, got %T", t.Class().name, *new(E), in)
	}
	out := make([]E, len(items))
	for i, item := range items {
		v, err := invokeAs[E](t, m, item)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Container is implemented by composite transforms.
type Container interface {
	Transform
	Children() []Transform
}

// CallChildren runs s through children in order via their call methods.
func CallChildren(children []Transform, s *Sample) (*Sample, error) {
	cur := s
	for _, ch := range children {
		next, err := Call(ch, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
