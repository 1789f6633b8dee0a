package profiler

import (
	"sync"
	"time"

	"augkit/transform"
)

// CallRecord is one completed tracked call. Records are immutable and
// linked to the record that headed the chain when they completed, so a
// chain read from its head lists calls newest first.
type CallRecord struct {
	class  *transform.Class
	method transform.Method
	dur    time.Duration
	act    *activation
	prev   *CallRecord

	once   sync.Once
	report *Report
}

// Class returns the owning class, or nil for a session root.
func (r *CallRecord) Class() *transform.Class { return r.class }

func (r *CallRecord) Method() transform.Method { return r.method }

// Duration is the call latency; for a session root, the session wall time.
func (r *CallRecord) Duration() time.Duration { return r.dur }

// Depth is the number of tracked calls that were still running when this
// call started.
func (r *CallRecord) Depth() int {
	if r.act == nil {
		return 0
	}
	return r.act.depth
}

// Predecessor returns the previously completed record, or nil at the end
// of the chain.
func (r *CallRecord) Predecessor() *CallRecord { return r.prev }

// IsRoot reports whether r is a synthetic session root.
func (r *CallRecord) IsRoot() bool { return r.class == nil }

// Results aggregates the chain behind r. It is computed on first use and
// cached.
func (r *CallRecord) Results() *Report {
	r.once.Do(func() { r.report = aggregate(r) })
	return r.report
}

// Len returns the number of records behind r.
func (r *CallRecord) Len() int {
	n := 0
	for c := r.prev; c != nil; c = c.prev {
		n++
	}
	return n
}
