// Package geometric registers spatial transforms that move pixels together
// with masks, boxes and keypoints.
package geometric

import (
	"fmt"
	"math"

	"augkit/transform"
	"augkit/validation"
)

var (
	HorizontalFlip *transform.Class
	VerticalFlip   *transform.Class
)

type flipParams struct {
	P float64 `mapstructure:"p"`
}

var flipSchema = validation.MustStruct[flipParams](
	validation.Rule{Field: "p", Expr: "p >= 0.0 && p <= 1.0", Message: "p must be within [0, 1]"},
)

type flip struct {
	cls *transform.Class
	p   float64
}

func (f *flip) Class() *transform.Class { return f.cls }
func (f *flip) Probability() float64    { return f.p }

func init() {
	HorizontalFlip = transform.MustDefine(transform.ClassSpec{
		Name:   "augkit.geometric.HorizontalFlip",
		Kind:   transform.Leaf,
		Params: validation.Signature{validation.Optional("p", 0.5)},
		Schema: flipSchema,
		New: func(kw validation.Kwargs) (transform.Transform, error) {
			return &flip{cls: HorizontalFlip, p: kw.Float("p")}, nil
		},
		Methods: flipMethods(hflipImage, hflipBBox, hflipKeypoint),
	})
	VerticalFlip = transform.MustDefine(transform.ClassSpec{
		Name:   "augkit.geometric.VerticalFlip",
		Kind:   transform.Leaf,
		Params: validation.Signature{validation.Optional("p", 0.5)},
		Schema: flipSchema,
		New: func(kw validation.Kwargs) (transform.Transform, error) {
			return &flip{cls: VerticalFlip, p: kw.Float("p")}, nil
		},
		Methods: flipMethods(vflipImage, vflipBBox, vflipKeypoint),
	})
	transform.Register(HorizontalFlip)
	transform.Register(VerticalFlip)
}

func flipMethods(
	img func(*transform.Image) *transform.Image,
	box func(transform.BBox) transform.BBox,
	kp func(transform.Keypoint) transform.Keypoint,
) map[transform.Method]transform.Func {
	applyImage := func(t transform.Transform, in any) (any, error) {
		im, ok := in.(*transform.Image)
		if !ok {
			return nil, fmt.Errorf("geometric: %s: want *Image, got %T", t.Class().Name(), in)
		}
		return img(im), nil
	}
	return map[transform.Method]transform.Func{
		transform.MethodCall:             transform.DispatchTargets,
		transform.MethodApply:            applyImage,
		transform.MethodApplyToMask:      applyImage,
		transform.MethodApplyToMasks:     transform.EachMask,
		transform.MethodApplyToBBoxes:    transform.EachBBox,
		transform.MethodApplyToKeypoints: transform.EachKeypoint,
		transform.MethodApplyToBBox: func(t transform.Transform, in any) (any, error) {
			b, ok := in.(transform.BBox)
			if !ok {
				return nil, fmt.Errorf("geometric: %s: want BBox, got %T", t.Class().Name(), in)
			}
			return box(b), nil
		},
		transform.MethodApplyToKeypoint: func(t transform.Transform, in any) (any, error) {
			k, ok := in.(transform.Keypoint)
			if !ok {
				return nil, fmt.Errorf("geometric: %s: want Keypoint, got %T", t.Class().Name(), in)
			}
			return kp(k), nil
		},
	}
}

func hflipImage(im *transform.Image) *transform.Image {
	out := transform.NewImage(im.Width, im.Height, im.Channels)
	for y := range im.Height {
		for x := range im.Width {
			for c := range im.Channels {
				out.Set(im.Width-1-x, y, c, im.At(x, y, c))
			}
		}
	}
	return out
}

func vflipImage(im *transform.Image) *transform.Image {
	out := transform.NewImage(im.Width, im.Height, im.Channels)
	row := im.Width * im.Channels
	for y := range im.Height {
		dst := (im.Height - 1 - y) * row
		copy(out.Pix[dst:dst+row], im.Pix[y*row:(y+1)*row])
	}
	return out
}

func hflipBBox(b transform.BBox) transform.BBox {
	return transform.BBox{1 - b[2], b[1], 1 - b[0], b[3]}
}

func vflipBBox(b transform.BBox) transform.BBox {
	return transform.BBox{b[0], 1 - b[3], b[2], 1 - b[1]}
}

func hflipKeypoint(k transform.Keypoint) transform.Keypoint {
	return transform.Keypoint{1 - k[0], k[1], wrapAngle(math.Pi - k[2]), k[3]}
}

func vflipKeypoint(k transform.Keypoint) transform.Keypoint {
	return transform.Keypoint{k[0], 1 - k[1], wrapAngle(-k[2]), k[3]}
}

// wrapAngle maps a into [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
