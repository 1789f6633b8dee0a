// Package render formats profiling reports and discovery results for the
// terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"augkit/internal/discovery"
	"augkit/profiler"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numStyle    = cellStyle.Align(lipgloss.Right)
	ownerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// Duration rounds d for display.
func Duration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}

func newTable(headers []string, numeric map[int]bool) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col]:
				return numStyle
			default:
				return cellStyle
			}
		})
}

// Summary writes the per-class table of s and, when frames is set, the
// frame tree below it.
func Summary(w io.Writer, title string, s profiler.Summary, frames bool) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d calls in %s", title, s.Calls, Duration(s.Total))))
	b.WriteByte('\n')

	t := newTable([]string{"Class", "Method", "Calls", "Total", "Avg", "Min", "Max"}, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true})
	for _, g := range s.Groups {
		t.Row(g.Class, g.Method, strconv.Itoa(g.Count),
			Duration(g.Total), Duration(g.Avg), Duration(g.Min), Duration(g.Max))
	}
	b.WriteString(t.String())
	b.WriteByte('\n')

	if frames {
		b.WriteString(titleStyle.Render("Frames"))
		b.WriteByte('\n')
		writeFrame(&b, s.Frames, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeFrame(b *strings.Builder, f profiler.FrameSummary, depth int) {
	indent := strings.Repeat("  ", depth)
	owner := f.Owner
	if owner == "" {
		owner = "session"
	}
	b.WriteString(indent + ownerStyle.Render(owner) + "\n")
	for _, g := range f.Groups {
		b.WriteString(fmt.Sprintf("%s  %s.%s ×%d %s\n", indent, g.Class, g.Method, g.Count,
			dimStyle.Render("avg "+Duration(g.Avg))))
	}
	for _, ch := range f.Children {
		writeFrame(b, ch, depth+1)
	}
}

// Classes writes one row per discovered class.
func Classes(w io.Writer, targets []discovery.Target) error {
	t := newTable([]string{"Class", "Kind", "Targets", "Methods"}, nil)
	for _, tg := range targets {
		kinds := make([]string, 0, 4)
		for _, x := range tg.Class.Targets() {
			kinds = append(kinds, string(x))
		}
		methods := make([]string, 0, len(tg.Methods))
		for _, m := range tg.Methods {
			methods = append(methods, string(m))
		}
		t.Row(tg.Class.Name(), tg.Class.Kind().String(), strings.Join(kinds, ", "), strings.Join(methods, ", "))
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
