package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"

	"augkit/internal/logging"
	"augkit/internal/spec"
	"augkit/transform"
)

// Runner feeds synthetic samples through a compiled pipeline.
type Runner struct {
	root  transform.Transform
	input spec.Input
	rng   *rand.Rand
}

func NewRunner(root transform.Transform, in spec.Input, seed uint64) *Runner {
	return &Runner{root: root, input: in, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Sample draws a random sample shaped after the runner's input.
func (r *Runner) Sample() *transform.Sample {
	in := r.input
	s := &transform.Sample{
		Image: r.image(in.Channels),
		Rand:  r.rng,
	}
	for range in.Masks {
		s.Masks = append(s.Masks, r.image(1))
	}
	if len(s.Masks) == 1 {
		s.Mask, s.Masks = s.Masks[0], nil
	}
	for range in.BBoxes {
		x0, x1 := r.span()
		y0, y1 := r.span()
		s.BBoxes = append(s.BBoxes, transform.BBox{x0, y0, x1, y1})
	}
	for range in.Keypoints {
		s.Keypoints = append(s.Keypoints, transform.Keypoint{r.rng.Float64(), r.rng.Float64(), 0, 1})
	}
	return s
}

func (r *Runner) image(channels int) *transform.Image {
	im := transform.NewImage(r.input.Width, r.input.Height, channels)
	for i := range im.Pix {
		im.Pix[i] = float32(r.rng.IntN(256))
	}
	return im
}

func (r *Runner) span() (lo, hi float64) {
	a, b := r.rng.Float64(), r.rng.Float64()
	if a > b {
		a, b = b, a
	}
	return a, b
}

// Run pushes n samples through the pipeline and returns how many completed.
// It stops early when ctx is done.
func (r *Runner) Run(ctx context.Context, n int) (int, error) {
	if r.root == nil {
		return 0, errors.New("runner: no pipeline compiled")
	}
	done := 0
	for done < n {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, err := transform.Call(r.root, r.Sample()); err != nil {
			return done, err
		}
		done++
	}
	logging.L().Debug("runner: samples processed", "count", done)
	return done, nil
}
