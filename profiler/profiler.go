package profiler

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"augkit/internal/discovery"
	"augkit/internal/logging"
	"augkit/transform"
)

var (
	ErrAlreadyStarted = errors.New("profiler: profiling already started")
	ErrLeftoverChain  = errors.New("profiler: current run data is not empty, call Stop first")
	ErrNotStarted     = errors.New("profiler: not started, call Start first")
	ErrClosed         = errors.New("profiler: closed")
)

// SessionMethod is the method name of the synthetic session root record.
const SessionMethod transform.Method = "Profiling"

type options struct {
	methods []transform.Method
	now     func() time.Time
}

// Option configures New.
type Option func(*options)

// WithMethods overrides the tracked method names.
func WithMethods(ms ...transform.Method) Option {
	return func(o *options) { o.methods = ms }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

type hook struct {
	class   *transform.Class
	method  transform.Method
	restore func()
}

// activation is one tracked call while it runs. Records keep theirs so a
// report can tell which call a record was made beneath.
type activation struct {
	parent *activation
	depth  int
}

type session struct {
	id      string
	started bool
	start   time.Time
	head    *CallRecord
	last    *CallRecord
	open    *activation // innermost running tracked call
}

// Profiler owns the hook table and the profiling session state.
type Profiler struct {
	now    func() time.Time
	hooks  []hook
	sess   session
	closed bool
}

// New hooks every tracked method of every class discovered in reg. If any
// hook cannot be installed, those already installed are removed again.
func New(reg *transform.Registry, opts ...Option) (*Profiler, error) {
	o := options{methods: transform.TrackedMethods(), now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	p := &Profiler{now: o.now}
	for _, target := range discovery.Discover(reg, o.methods) {
		for _, m := range target.Methods {
			restore, err := target.Class.Hook(m, p.wrapper(target.Class, m))
			if err != nil {
				p.unhook()
				return nil, err
			}
			p.hooks = append(p.hooks, hook{class: target.Class, method: m, restore: restore})
		}
	}
	logging.L().Debug("profiler: instrumented", "methods", len(p.hooks))
	return p, nil
}

// Close restores every hooked method. It is safe to call more than once.
func (p *Profiler) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.unhook()
	return nil
}

func (p *Profiler) unhook() {
	for i := len(p.hooks) - 1; i >= 0; i-- {
		p.hooks[i].restore()
	}
	p.hooks = nil
}

// Instrumented reports how many (class, method) pairs are hooked.
func (p *Profiler) Instrumented() int { return len(p.hooks) }

// Start begins a session.
func (p *Profiler) Start() error {
	switch {
	case p.closed:
		return ErrClosed
	case p.sess.started:
		return ErrAlreadyStarted
	case p.sess.head != nil:
		return ErrLeftoverChain
	}
	p.sess.id = uuid.NewString()
	p.sess.started = true
	p.sess.open = nil
	p.sess.start = p.now()
	logging.L().Debug("profiler: session started", "session", p.sess.id)
	return nil
}

// Stop ends the session and stores its chain under a new root record.
func (p *Profiler) Stop() error {
	if !p.sess.started {
		return ErrNotStarted
	}
	root := &CallRecord{
		method: SessionMethod,
		dur:    p.now().Sub(p.sess.start),
		prev:   p.sess.head,
	}
	p.sess.last = root
	p.sess.head = nil
	p.sess.started = false
	logging.L().Debug("profiler: session stopped", "session", p.sess.id, "elapsed", root.dur)
	return nil
}

// Run wraps fn in Start and Stop. Stop runs on every exit path, including
// a panic in fn.
func (p *Profiler) Run(fn func() error) (err error) {
	if err := p.Start(); err != nil {
		return err
	}
	defer func() {
		if serr := p.Stop(); serr != nil && err == nil {
			err = serr
		}
	}()
	return fn()
}

// Reset drops records left behind by calls that completed after Stop.
func (p *Profiler) Reset() error {
	if p.sess.started {
		return ErrAlreadyStarted
	}
	p.sess.head = nil
	return nil
}

// Started reports whether a session is active.
func (p *Profiler) Started() bool { return p.sess.started }

// SessionID identifies the active or most recent session.
func (p *Profiler) SessionID() string { return p.sess.id }

// Results returns the root record of the last completed session, or nil.
func (p *Profiler) Results() *CallRecord { return p.sess.last }

func (p *Profiler) wrapper(c *transform.Class, m transform.Method) func(transform.Func) transform.Func {
	return func(orig transform.Func) transform.Func {
		return func(t transform.Transform, in any) (any, error) {
			if !p.sess.started {
				return orig(t, in)
			}
			return p.timed(c, m, orig, t, in)
		}
	}
}

// timed runs orig and, when it succeeds, prepends a record. A call that
// entered during a session is recorded even if Stop ran in the meantime;
// Start reports such leftovers.
func (p *Profiler) timed(c *transform.Class, m transform.Method, orig transform.Func, t transform.Transform, in any) (any, error) {
	act := &activation{parent: p.sess.open}
	if act.parent != nil {
		act.depth = act.parent.depth + 1
	}
	p.sess.open = act
	defer func() { p.sess.open = act.parent }()

	start := p.now()
	out, err := orig(t, in)
	dur := p.now().Sub(start)
	if err != nil {
		return out, err
	}
	p.sess.head = &CallRecord{class: c, method: m, dur: dur, act: act, prev: p.sess.head}
	return out, nil
}
