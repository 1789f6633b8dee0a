package profiler

import (
	"slices"
	"strings"
	"time"

	"augkit/transform"
)

// Group collects the records of one (class, method) pair.
type Group struct {
	Class   *transform.Class
	Method  transform.Method
	Records []*CallRecord // newest first
	Count   int
	Total   time.Duration
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
}

func (g *Group) add(r *CallRecord) {
	g.Records = append(g.Records, r)
	g.Count++
	g.Total += r.dur
	if g.Count == 1 || r.dur < g.Min {
		g.Min = r.dur
	}
	if r.dur > g.Max {
		g.Max = r.dur
	}
	g.Avg = g.Total / time.Duration(g.Count)
}

// Groups maps class → method → group.
type Groups map[*transform.Class]map[transform.Method]*Group

func (gs Groups) add(r *CallRecord) {
	byMethod, ok := gs[r.class]
	if !ok {
		byMethod = map[transform.Method]*Group{}
		gs[r.class] = byMethod
	}
	g, ok := byMethod[r.method]
	if !ok {
		g = &Group{Class: r.class, Method: r.method}
		byMethod[r.method] = g
	}
	g.add(r)
}

// Get returns the group for c and m, or nil.
func (gs Groups) Get(c *transform.Class, m transform.Method) *Group {
	return gs[c][m]
}

// Sorted returns all groups ordered by class name, then tracked method order.
func (gs Groups) Sorted() []*Group {
	var out []*Group
	for _, byMethod := range gs {
		for _, g := range byMethod {
			out = append(out, g)
		}
	}
	order := map[transform.Method]int{}
	for i, m := range transform.TrackedMethods() {
		order[m] = i
	}
	slices.SortFunc(out, func(a, b *Group) int {
		if c := strings.Compare(a.Class.Name(), b.Class.Name()); c != 0 {
			return c
		}
		if oa, ob := order[a.Method], order[b.Method]; oa != ob {
			return oa - ob
		}
		return strings.Compare(string(a.Method), string(b.Method))
	})
	return out
}

// Frame groups the calls of one reporting scope. The session frame holds
// top-level calls; every composite call opens a child frame holding the
// calls made beneath it.
type Frame struct {
	Owner    *CallRecord // nil for the session frame
	Groups   Groups
	Children []*Frame // newest first
}

// Report is the aggregated view of one chain.
type Report struct {
	Total  time.Duration // duration of the record the report was built from
	Calls  int
	Groups Groups
	Root   *Frame
}

// Group looks up a group by fully qualified or short class name. A short
// name shared by several classes resolves to the first by full name.
func (rep *Report) Group(class string, m transform.Method) *Group {
	var short *transform.Class
	for _, c := range rep.Classes() {
		if c.Name() == class {
			return rep.Groups[c][m]
		}
		if short == nil && c.ShortName() == class {
			short = c
		}
	}
	if short == nil {
		return nil
	}
	return rep.Groups[short][m]
}

// Classes returns the classes seen in the chain sorted by name.
func (rep *Report) Classes() []*transform.Class {
	out := make([]*transform.Class, 0, len(rep.Groups))
	for c := range rep.Groups {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *transform.Class) int { return strings.Compare(a.Name(), b.Name()) })
	return out
}

// aggregate walks the chain behind head. Records are walked newest first,
// so a composite call is always seen before the calls it made. A record goes
// to the frame of its nearest recorded enclosing call; calls made beneath a
// failed composite therefore land in that composite's own parent frame.
func aggregate(head *CallRecord) *Report {
	rep := &Report{Total: head.dur, Groups: Groups{}, Root: &Frame{Groups: Groups{}}}
	frames := map[*activation]*Frame{}
	for r := head.prev; r != nil; r = r.prev {
		if r.class == nil {
			continue
		}
		top := rep.Root
		for a := r.act.parent; a != nil; a = a.parent {
			if f, ok := frames[a]; ok {
				top = f
				break
			}
		}
		rep.Groups.add(r)
		top.Groups.add(r)
		rep.Calls++
		if r.class.IsComposite() {
			f := &Frame{Owner: r, Groups: Groups{}}
			top.Children = append(top.Children, f)
			frames[r.act] = f
		}
	}
	return rep
}
