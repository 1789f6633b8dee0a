// Package color registers pixel-value transforms. They only touch the
// image target; masks, boxes and keypoints pass through unchanged.
package color

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"augkit/transform"
	"augkit/validation"
)

var (
	Normalize  *transform.Class
	GaussNoise *transform.Class
	InvertImg  *transform.Class
)

var pRule = validation.Rule{Field: "p", Expr: "p >= 0.0 && p <= 1.0", Message: "p must be within [0, 1]"}

func init() {
	Normalize = transform.MustDefine(transform.ClassSpec{
		Name: "augkit.color.Normalize",
		Kind: transform.Leaf,
		Params: validation.Signature{
			validation.Optional("mean", []float64{0.485, 0.456, 0.406}),
			validation.Optional("std", []float64{0.229, 0.224, 0.225}),
			validation.Optional("max_pixel_value", 255.0),
			validation.Optional("p", 1.0),
		},
		Schema: normalizeSchema,
		New:    newNormalize,
		Methods: map[transform.Method]transform.Func{
			transform.MethodCall:  transform.DispatchTargets,
			transform.MethodApply: imageFunc(func(t transform.Transform, im *transform.Image) (*transform.Image, error) { return t.(*normalize).apply(im) }),
		},
	})
	GaussNoise = transform.MustDefine(transform.ClassSpec{
		Name: "augkit.color.GaussNoise",
		Kind: transform.Leaf,
		Params: validation.Signature{
			validation.Optional("var_limit", []float64{10, 50}),
			validation.Optional("mean", 0.0),
			validation.Optional("p", 0.5),
		},
		Schema: gaussSchema,
		New:    newGaussNoise,
		Methods: map[transform.Method]transform.Func{
			transform.MethodCall:  gaussCall,
			transform.MethodApply: imageFunc(func(t transform.Transform, im *transform.Image) (*transform.Image, error) { return t.(*gaussNoise).apply(im) }),
		},
	})
	InvertImg = transform.MustDefine(transform.ClassSpec{
		Name: "augkit.color.InvertImg",
		Kind: transform.Leaf,
		Params: validation.Signature{
			validation.Optional("max_value", 255.0),
			validation.Optional("p", 0.5),
		},
		Schema: invertSchema,
		New:    newInvert,
		Methods: map[transform.Method]transform.Func{
			transform.MethodCall:  transform.DispatchTargets,
			transform.MethodApply: imageFunc(func(t transform.Transform, im *transform.Image) (*transform.Image, error) { return t.(*invert).apply(im), nil }),
		},
	})
	transform.Register(Normalize)
	transform.Register(GaussNoise)
	transform.Register(InvertImg)
}

func imageFunc(fn func(transform.Transform, *transform.Image) (*transform.Image, error)) transform.Func {
	return func(t transform.Transform, in any) (any, error) {
		im, ok := in.(*transform.Image)
		if !ok {
			return nil, fmt.Errorf("color: %s: want *Image, got %T", t.Class().Name(), in)
		}
		return fn(t, im)
	}
}

// channelValue picks the per-channel entry, broadcasting single values.
func channelValue(vals []float64, ch int) float64 {
	if len(vals) == 1 {
		return vals[0]
	}
	return vals[ch]
}

/* ────────── Normalize ────────── */

type normalizeParams struct {
	Mean          []float64 `mapstructure:"mean"`
	Std           []float64 `mapstructure:"std"`
	MaxPixelValue float64   `mapstructure:"max_pixel_value"`
	P             float64   `mapstructure:"p"`
}

func (n *normalizeParams) Normalize() error {
	if len(n.Mean) == 0 || len(n.Std) == 0 {
		return errors.New("mean and std must not be empty")
	}
	if len(n.Mean) != len(n.Std) && len(n.Mean) != 1 && len(n.Std) != 1 {
		return fmt.Errorf("mean has %d values but std has %d", len(n.Mean), len(n.Std))
	}
	return nil
}

var normalizeSchema = validation.MustStruct[normalizeParams](
	validation.Rule{Field: "std", Expr: "std.all(s, s > 0.0)", Message: "std values must be positive"},
	validation.Rule{Field: "max_pixel_value", Expr: "max_pixel_value > 0.0", Message: "max_pixel_value must be positive"},
	pRule,
)

type normalize struct {
	mean, std []float64
	maxPixel  float64
	p         float64
}

func newNormalize(kw validation.Kwargs) (transform.Transform, error) {
	return &normalize{mean: kw.Floats("mean"), std: kw.Floats("std"), maxPixel: kw.Float("max_pixel_value"), p: kw.Float("p")}, nil
}

func (n *normalize) Class() *transform.Class { return Normalize }
func (n *normalize) Probability() float64    { return n.p }

func (n *normalize) apply(im *transform.Image) (*transform.Image, error) {
	for _, vals := range [][]float64{n.mean, n.std} {
		if len(vals) != 1 && len(vals) != im.Channels {
			return nil, fmt.Errorf("color: Normalize: %d values for %d channels", len(vals), im.Channels)
		}
	}
	out := transform.NewImage(im.Width, im.Height, im.Channels)
	for i, v := range im.Pix {
		ch := i % im.Channels
		out.Pix[i] = float32((float64(v)/n.maxPixel - channelValue(n.mean, ch)) / channelValue(n.std, ch))
	}
	return out, nil
}

/* ────────── GaussNoise ────────── */

type gaussParams struct {
	VarLimit []float64 `mapstructure:"var_limit"`
	Mean     float64   `mapstructure:"mean"`
	P        float64   `mapstructure:"p"`
}

// Normalize expands a single variance into the range [0, v].
func (g *gaussParams) Normalize() error {
	switch len(g.VarLimit) {
	case 1:
		g.VarLimit = []float64{0, g.VarLimit[0]}
	case 2:
	default:
		return fmt.Errorf("var_limit must have one or two values, got %d", len(g.VarLimit))
	}
	return nil
}

var gaussSchema = validation.MustStruct[gaussParams](
	validation.Rule{
		Field:   "var_limit",
		Expr:    "var_limit[0] >= 0.0 && var_limit[0] <= var_limit[1]",
		Message: "var_limit must satisfy 0 <= min <= max",
	},
	pRule,
)

type gaussNoise struct {
	varLo, varHi float64
	mean         float64
	p            float64

	// sampled per call
	sigma float64
	seed  uint64
}

func newGaussNoise(kw validation.Kwargs) (transform.Transform, error) {
	vl := kw.Floats("var_limit")
	return &gaussNoise{varLo: vl[0], varHi: vl[1], mean: kw.Float("mean"), p: kw.Float("p")}, nil
}

func (g *gaussNoise) Class() *transform.Class { return GaussNoise }
func (g *gaussNoise) Probability() float64    { return g.p }

// gaussCall samples the noise level once per sample, then dispatches on a
// copy carrying it so every target sees the same parameters.
func gaussCall(t transform.Transform, in any) (any, error) {
	g, ok := t.(*gaussNoise)
	if !ok {
		return nil, fmt.Errorf("color: GaussNoise: unexpected instance %T", t)
	}
	s, ok := in.(*transform.Sample)
	if !ok {
		return nil, fmt.Errorf("color: GaussNoise: want *Sample, got %T", in)
	}
	bound := *g
	bound.sigma = math.Sqrt(g.varLo + s.Rng().Float64()*(g.varHi-g.varLo))
	bound.seed = s.Rng().Uint64()
	return transform.DispatchTargets(&bound, s)
}

func (g *gaussNoise) apply(im *transform.Image) (*transform.Image, error) {
	rng := noiseRand(g.seed)
	out := im.Clone()
	for i := range out.Pix {
		out.Pix[i] += float32(g.mean + rng.NormFloat64()*g.sigma)
	}
	return out, nil
}

func noiseRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

/* ────────── InvertImg ────────── */

type invertParams struct {
	MaxValue float64 `mapstructure:"max_value"`
	P        float64 `mapstructure:"p"`
}

var invertSchema = validation.MustStruct[invertParams](
	validation.Rule{Field: "max_value", Expr: "max_value > 0.0", Message: "max_value must be positive"},
	pRule,
)

type invert struct {
	maxValue float64
	p        float64
}

func newInvert(kw validation.Kwargs) (transform.Transform, error) {
	return &invert{maxValue: kw.Float("max_value"), p: kw.Float("p")}, nil
}

func (v *invert) Class() *transform.Class { return InvertImg }
func (v *invert) Probability() float64    { return v.p }

func (v *invert) apply(im *transform.Image) *transform.Image {
	out := transform.NewImage(im.Width, im.Height, im.Channels)
	for i, px := range im.Pix {
		out.Pix[i] = float32(v.maxValue) - px
	}
	return out
}
