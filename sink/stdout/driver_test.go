package stdout

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"augkit/profiler"
	"augkit/sink"
)

func report() sink.Report {
	return sink.Report{
		Session:  "0b8f",
		Pipeline: "detection",
		Samples:  4,
		Summary: profiler.Summary{
			Total:  time.Millisecond,
			Calls:  1,
			Groups: []profiler.GroupSummary{{Class: "augkit.geometric.HorizontalFlip", Method: "call", Count: 1}},
		},
	}
}

func TestDriver_RegisteredAndTable(t *testing.T) {
	a, err := sink.NewAdapter("stdout")
	require.NoError(t, err)
	require.NoError(t, a.Configure(nil))

	var buf bytes.Buffer
	d := a.(*driver)
	d.w = &buf
	require.NoError(t, d.Publish(t.Context(), report()))
	assert.Contains(t, buf.String(), "detection (4 samples): 1 calls")
	assert.Contains(t, buf.String(), "augkit.geometric.HorizontalFlip")
	require.NoError(t, d.Close())
}

func TestDriver_JSON(t *testing.T) {
	var buf bytes.Buffer
	d := &driver{w: &buf}
	require.NoError(t, d.Configure(map[string]any{"format": "json"}))
	require.NoError(t, d.Publish(t.Context(), report()))

	var got sink.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, report(), got)
}

func TestDriver_ConfigErrors(t *testing.T) {
	d := &driver{}
	require.Error(t, d.Configure(map[string]any{"format": "xml"}))
	require.Error(t, d.Configure(map[string]any{"colour": true}))
}
