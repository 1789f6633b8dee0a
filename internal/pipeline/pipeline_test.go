package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augkit/internal/spec"
	"augkit/transform"
	_ "augkit/transform/color"
	_ "augkit/transform/compose"
	_ "augkit/transform/geometric"
	"augkit/validation"
)

func tree() spec.Node {
	return spec.Node{
		Name: "Compose",
		Transforms: []spec.Node{
			{Name: "HorizontalFlip", Args: []any{1.0}},
			{Name: "OneOf", Params: map[string]any{"p": 1}, Transforms: []spec.Node{
				{Name: "augkit.geometric.VerticalFlip"},
				{Name: "InvertImg", Params: map[string]any{"max_value": 255}},
			}},
		},
	}
}

func TestCompile_BuildsTree(t *testing.T) {
	root, err := Compile(transform.Default, tree())
	require.NoError(t, err)

	var names []string
	var depths []int
	Walk(root, func(tr transform.Transform, depth int) {
		names = append(names, tr.Class().ShortName())
		depths = append(depths, depth)
	})
	assert.Equal(t, []string{"Compose", "HorizontalFlip", "OneOf", "VerticalFlip", "InvertImg"}, names)
	assert.Equal(t, []int{0, 1, 1, 2, 2}, depths)
}

func TestCompile_Errors(t *testing.T) {
	_, err := Compile(transform.Default, spec.Node{Name: "Blur"})
	require.ErrorContains(t, err, `unknown class "Blur"`)

	_, err = Compile(transform.Default, spec.Node{Name: "HorizontalFlip", Transforms: []spec.Node{{Name: "VerticalFlip"}}})
	require.ErrorContains(t, err, "not a composite")

	bad := tree()
	bad.Transforms[1].Transforms[0].Params = map[string]any{"p": 2}
	_, err = Compile(transform.Default, bad)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "p", verr.Field)
	assert.Contains(t, err.Error(), "Compose.transforms[1](OneOf).transforms[0](augkit.geometric.VerticalFlip)")

	_, err = Compile(transform.Default, spec.Node{Name: "Compose"})
	require.Error(t, err)
}

func TestRunner_SampleShape(t *testing.T) {
	r := NewRunner(nil, spec.Input{Width: 4, Height: 2, Channels: 3, Masks: 1, BBoxes: 3, Keypoints: 2}, 7)
	s := r.Sample()
	require.NotNil(t, s.Image)
	assert.Equal(t, 4*2*3, len(s.Image.Pix))
	require.NotNil(t, s.Mask)
	assert.Empty(t, s.Masks)
	require.Len(t, s.BBoxes, 3)
	for _, b := range s.BBoxes {
		assert.LessOrEqual(t, b[0], b[2])
		assert.LessOrEqual(t, b[1], b[3])
	}
	assert.Len(t, s.Keypoints, 2)

	r = NewRunner(nil, spec.Input{Width: 1, Height: 1, Channels: 1, Masks: 2}, 7)
	assert.Len(t, r.Sample().Masks, 2)
}

func TestRunner_Run(t *testing.T) {
	root, err := Compile(transform.Default, tree())
	require.NoError(t, err)
	r := NewRunner(root, spec.Input{Width: 8, Height: 8, Channels: 3, BBoxes: 2, Keypoints: 1}, 1)

	n, err := r.Run(t.Context(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	n, err = r.Run(ctx, 5)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)

	_, err = NewRunner(nil, spec.Input{}, 1).Run(t.Context(), 1)
	require.Error(t, err)
}
