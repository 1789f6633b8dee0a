// Package sink delivers profiling reports to their consumers. Drivers
// register themselves from init().
package sink

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-viper/mapstructure/v2"

	"augkit/profiler"
)

// Report is what a sink receives after a profiling session.
type Report struct {
	Session  string           `json:"session" msgpack:"session"`
	Pipeline string           `json:"pipeline" msgpack:"pipeline"`
	Samples  int              `json:"samples" msgpack:"samples"`
	Summary  profiler.Summary `json:"summary" msgpack:"summary"`
}

// Adapter is the common behaviour every sink exposes.
type Adapter interface {
	Configure(raw map[string]any) error // driver-specific block from sink_configs
	Publish(ctx context.Context, r Report) error
	Close() error // idempotent
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}

// Names lists the registered drivers.
func Names() []string {
	out := make([]string, 0, len(reg))
	for name := range reg {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Decode copies a raw config block into out, matching `mapstructure` tags.
// Unknown keys are rejected.
func Decode(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}
