package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augkit/internal/discovery"
	"augkit/profiler"
	"augkit/transform"
	_ "augkit/transform/compose"
	_ "augkit/transform/geometric"
)

func TestDuration(t *testing.T) {
	assert.Equal(t, "1.235s", Duration(1234567890*time.Nanosecond))
	assert.Equal(t, "12.346ms", Duration(12345678*time.Nanosecond))
	assert.Equal(t, "850ns", Duration(850*time.Nanosecond))
}

func TestSummary(t *testing.T) {
	s := profiler.Summary{
		Total: 3 * time.Millisecond,
		Calls: 2,
		Groups: []profiler.GroupSummary{
			{Class: "augkit.compose.Compose", Method: "call", Count: 1, Total: 2 * time.Millisecond, Min: 2 * time.Millisecond, Max: 2 * time.Millisecond, Avg: 2 * time.Millisecond},
			{Class: "augkit.geometric.HorizontalFlip", Method: "apply", Count: 1, Total: time.Millisecond, Min: time.Millisecond, Max: time.Millisecond, Avg: time.Millisecond},
		},
		Frames: profiler.FrameSummary{
			Groups: []profiler.GroupSummary{{Class: "augkit.compose.Compose", Method: "call", Count: 1}},
			Children: []profiler.FrameSummary{{
				Owner:  "augkit.compose.Compose.call",
				Groups: []profiler.GroupSummary{{Class: "augkit.geometric.HorizontalFlip", Method: "apply", Count: 1}},
			}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, "flip", s, true))
	out := buf.String()
	assert.Contains(t, out, "flip: 2 calls in 3ms")
	assert.Contains(t, out, "augkit.geometric.HorizontalFlip")
	assert.Contains(t, out, "Frames")
	assert.Contains(t, out, "session")
	assert.Contains(t, out, "  augkit.compose.Compose.call")
	assert.Contains(t, out, "augkit.geometric.HorizontalFlip.apply ×1")

	buf.Reset()
	require.NoError(t, Summary(&buf, "flip", s, false))
	assert.NotContains(t, buf.String(), "Frames")
}

func TestClasses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Classes(&buf, discovery.Discover(transform.Default, transform.TrackedMethods())))
	out := buf.String()
	assert.Contains(t, out, "augkit.compose.OneOf")
	assert.Contains(t, out, "composite")
	assert.Contains(t, out, "augkit.geometric.VerticalFlip")
	assert.Contains(t, out, "apply_to_keypoints")
}
