// Package profiler measures per-call latency of every tracked transform
// method without changes to the transforms themselves.
//
// New discovers the tracked (class, method) pairs of a registry and hooks a
// timing wrapper into each class's method table; Close puts the originals
// back and must always be called:
//
//	p, err := profiler.New(transform.Default)
//	if err != nil {
//		return err
//	}
//	defer p.Close()
//
//	err = p.Run(func() error {
//		_, err := transform.Call(pipeline, sample)
//		return err
//	})
//	report := p.Results().Results()
//
// Every successful call made while a session is active prepends a
// CallRecord to the session chain. Stop wraps the chain under a synthetic
// root record holding the wall-clock session time; the root's Results
// aggregates the chain into a Report.
//
// A Profiler is not safe for concurrent use and hooks are process-wide:
// only one Profiler may instrument a given class at a time.
package profiler
