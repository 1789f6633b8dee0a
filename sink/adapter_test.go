package sink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSink struct{}

func (nopSink) Configure(map[string]any) error        { return nil }
func (nopSink) Publish(context.Context, Report) error { return nil }
func (nopSink) Close() error                          { return nil }

func TestRegistry(t *testing.T) {
	Register("nop", func() Adapter { return nopSink{} })
	t.Cleanup(func() { delete(reg, "nop") })

	a, err := NewAdapter("nop")
	require.NoError(t, err)
	assert.IsType(t, nopSink{}, a)
	assert.Contains(t, Names(), "nop")

	_, err = NewAdapter("carrier-pigeon")
	require.ErrorContains(t, err, `unknown sink "carrier-pigeon"`)
}

func TestDecode(t *testing.T) {
	var cfg struct {
		Brokers []string      `mapstructure:"brokers"`
		Acks    int16         `mapstructure:"required_acks"`
		Timeout time.Duration `mapstructure:"timeout"`
	}
	err := Decode(map[string]any{
		"brokers":       "a:9092,b:9092",
		"required_acks": "-1",
		"timeout":       "2s",
	}, &cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers)
	assert.Equal(t, int16(-1), cfg.Acks)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	err = Decode(map[string]any{"topic": "x"}, &cfg)
	require.Error(t, err)
}
