package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"augkit/internal/logging"
	"augkit/internal/pipeline"
	"augkit/internal/telemetry"
	"augkit/profiler"
	"augkit/sink"
)

type Engine struct {
	name      string
	samples   int
	runner    *pipeline.Runner
	prof      *profiler.Profiler
	collector *telemetry.Collector
	sinks     []sink.Adapter
	metrics   *http.Server
}

// Profile runs one session over the configured number of samples and
// publishes its report to every sink.
func (e *Engine) Profile(ctx context.Context) (*profiler.Report, error) {
	var done int
	err := e.prof.Run(func() error {
		var err error
		done, err = e.runner.Run(ctx, e.samples)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("engine: profile %s: %w", e.name, err)
	}
	rep := e.prof.Results().Results()
	e.collector.Observe(rep)

	out := sink.Report{
		Session:  e.prof.SessionID(),
		Pipeline: e.name,
		Samples:  done,
		Summary:  rep.Summary(),
	}
	var errs []error
	for _, s := range e.sinks {
		if err := s.Publish(ctx, out); err != nil {
			errs = append(errs, err)
		}
	}
	logging.L().Info("engine: session published",
		"session", out.Session, "calls", rep.Calls, "elapsed", rep.Total)
	return rep, errors.Join(errs...)
}

// Run profiles once. When a metrics endpoint is configured it then keeps
// serving until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	if _, err := e.Profile(ctx); err != nil {
		return err
	}
	if e.metrics == nil {
		return nil
	}
	logging.L().Info("engine: serving metrics", "addr", e.metrics.Addr)
	<-ctx.Done()
	return nil
}

// Close restores the instrumented methods, stops the metrics endpoint
// and closes the sinks.
func (e *Engine) Close() error {
	var errs []error
	if e.metrics != nil {
		errs = append(errs, telemetry.Shutdown(e.metrics))
		e.metrics = nil
	}
	for _, s := range e.sinks {
		errs = append(errs, s.Close())
	}
	e.sinks = nil
	errs = append(errs, e.prof.Close())
	return errors.Join(errs...)
}
