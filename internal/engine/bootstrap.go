package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"augkit/internal/config"
	"augkit/internal/logging"
	"augkit/internal/pipeline"
	"augkit/internal/telemetry"
	"augkit/profiler"
	"augkit/sink"
	"augkit/transform"

	// built-in transforms and sinks
	_ "augkit/sink/kafka"
	_ "augkit/sink/stdout"
	_ "augkit/transform/color"
	_ "augkit/transform/compose"
	_ "augkit/transform/geometric"
)

// Bootstrap loads the pipeline document, compiles it against reg, installs
// the profiler and configures the sinks. reg defaults to transform.Default.
func Bootstrap(ctx context.Context, cfg config.Config, reg *transform.Registry) (*Engine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if reg == nil {
		reg = transform.Default
	}
	if cfg.Log.Level != "" || cfg.Log.JSON {
		logging.Configure(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	}
	if cfg.Pipeline == "" {
		return nil, errors.New("engine: no pipeline configured")
	}

	// 1. pipeline
	doc, err := config.LoadPipelineSpec(cfg.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	root, err := pipeline.Compile(reg, doc.Pipeline)
	if err != nil {
		return nil, err
	}
	name := doc.Name
	if name == "" {
		name = root.Class().ShortName()
	}

	// 2. profiler
	var opts []profiler.Option
	if len(cfg.Methods) > 0 {
		ms := make([]transform.Method, 0, len(cfg.Methods))
		for _, m := range cfg.Methods {
			ms = append(ms, transform.Method(m))
		}
		opts = append(opts, profiler.WithMethods(ms...))
	}
	prof, err := profiler.New(reg, opts...)
	if err != nil {
		return nil, fmt.Errorf("profiler: %w", err)
	}

	e := &Engine{
		name:      name,
		samples:   cfg.Samples,
		runner:    pipeline.NewRunner(root, doc.Input, cfg.Seed),
		prof:      prof,
		collector: telemetry.NewCollector(),
	}

	// 3. sinks
	for _, sname := range cfg.Sinks {
		a, err := sink.NewAdapter(sname)
		if err == nil {
			err = a.Configure(cfg.SinkConfigs[sname])
		}
		if err != nil {
			_ = e.Close()
			return nil, fmt.Errorf("sink %s: %w", sname, err)
		}
		e.sinks = append(e.sinks, a)
	}

	// 4. metrics
	if cfg.Metrics.Addr != "" {
		mreg := prometheus.NewRegistry()
		mreg.MustRegister(e.collector)
		e.metrics = telemetry.Expose(cfg.Metrics.Addr, mreg)
	}

	logging.L().Info("engine: bootstrapped",
		"pipeline", name, "samples", cfg.Samples, "instrumented", prof.Instrumented(), "sinks", cfg.Sinks)
	return e, nil
}
