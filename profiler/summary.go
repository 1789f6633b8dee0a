package profiler

import "time"

// GroupSummary is the serializable form of a Group.
type GroupSummary struct {
	Class  string        `json:"class"`
	Method string        `json:"method"`
	Count  int           `json:"count"`
	Total  time.Duration `json:"total_ns"`
	Min    time.Duration `json:"min_ns"`
	Max    time.Duration `json:"max_ns"`
	Avg    time.Duration `json:"avg_ns"`
}

// FrameSummary is the serializable form of a Frame.
type FrameSummary struct {
	Owner    string         `json:"owner,omitempty"`
	Groups   []GroupSummary `json:"groups,omitempty"`
	Children []FrameSummary `json:"children,omitempty"`
}

// Summary is a name-keyed snapshot of a Report, suitable for encoding.
type Summary struct {
	Total  time.Duration  `json:"total_ns"`
	Calls  int            `json:"calls"`
	Groups []GroupSummary `json:"groups"`
	Frames FrameSummary   `json:"frames"`
}

func summarizeGroups(gs Groups) []GroupSummary {
	sorted := gs.Sorted()
	out := make([]GroupSummary, 0, len(sorted))
	for _, g := range sorted {
		out = append(out, GroupSummary{
			Class:  g.Class.Name(),
			Method: string(g.Method),
			Count:  g.Count,
			Total:  g.Total,
			Min:    g.Min,
			Max:    g.Max,
			Avg:    g.Avg,
		})
	}
	return out
}

func summarizeFrame(f *Frame) FrameSummary {
	fs := FrameSummary{Groups: summarizeGroups(f.Groups)}
	if f.Owner != nil {
		fs.Owner = f.Owner.class.Name() + "." + string(f.Owner.method)
	}
	for _, ch := range f.Children {
		fs.Children = append(fs.Children, summarizeFrame(ch))
	}
	return fs
}

// Summary flattens rep into names and durations.
func (rep *Report) Summary() Summary {
	return Summary{
		Total:  rep.Total,
		Calls:  rep.Calls,
		Groups: summarizeGroups(rep.Groups),
		Frames: summarizeFrame(rep.Root),
	}
}
