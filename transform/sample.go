package transform

import (
	"math/rand/v2"
	"slices"
)

// Image is a dense H×W×C float32 raster in row-major, channel-last order.
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

func NewImage(w, h, c int) *Image {
	return &Image{Width: w, Height: h, Channels: c, Pix: make([]float32, w*h*c)}
}

func (im *Image) offset(x, y, ch int) int { return (y*im.Width+x)*im.Channels + ch }

func (im *Image) At(x, y, ch int) float32     { return im.Pix[im.offset(x, y, ch)] }
func (im *Image) Set(x, y, ch int, v float32) { im.Pix[im.offset(x, y, ch)] = v }

func (im *Image) Clone() *Image {
	if im == nil {
		return nil
	}
	out := *im
	out.Pix = slices.Clone(im.Pix)
	return &out
}

// BBox is (x_min, y_min, x_max, y_max) in normalized [0, 1] coordinates.
type BBox [4]float64

// Keypoint is (x, y, angle, scale) with x and y normalized to [0, 1] and
// angle in radians.
type Keypoint [4]float64

// Sample carries one training example through a pipeline. Nil or empty
// targets are skipped.
type Sample struct {
	Image       *Image
	Mask        *Image
	Masks       []*Image
	BBoxes      []BBox
	Keypoints   []Keypoint
	GlobalLabel []float64

	// Rand drives probabilistic transforms; nil uses a package-level source.
	Rand *rand.Rand
}

// Clone returns a copy whose targets can be replaced without touching s.
// Pixel buffers are shared until a transform writes a new image.
func (s *Sample) Clone() *Sample {
	out := *s
	out.Masks = slices.Clone(s.Masks)
	out.BBoxes = slices.Clone(s.BBoxes)
	out.Keypoints = slices.Clone(s.Keypoints)
	out.GlobalLabel = slices.Clone(s.GlobalLabel)
	return &out
}

var fallbackRand = rand.New(rand.NewPCG(0x5eed, 0xa11))

// Rng returns the sample's random source.
func (s *Sample) Rng() *rand.Rand {
	if s.Rand != nil {
		return s.Rand
	}
	return fallbackRand
}
