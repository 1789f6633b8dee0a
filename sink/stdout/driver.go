package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"augkit/internal/render"
	"augkit/sink"
)

/* ────────── public config ────────── */
type Config struct {
	Format string `mapstructure:"format"` // table|json (default table)
	Frames bool   `mapstructure:"frames"` // print the frame tree under the table
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config

	mu sync.Mutex // serializes writes to w
	w  io.Writer
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw map[string]any) error {
	var c Config
	if err := sink.Decode(raw, &c); err != nil {
		return fmt.Errorf("stdout-sink: %w", err)
	}
	switch c.Format {
	case "":
		c.Format = "table"
	case "table", "json":
	default:
		return fmt.Errorf("stdout-sink: unknown format %q", c.Format)
	}
	d.cfg = c
	return nil
}

func (d *driver) Publish(_ context.Context, r sink.Report) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cfg.Format == "json" {
		enc := json.NewEncoder(d.w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	title := r.Pipeline
	if title == "" {
		title = "session " + r.Session
	}
	return render.Summary(d.w, fmt.Sprintf("%s (%d samples)", title, r.Samples), r.Summary, d.cfg.Frames)
}

func (d *driver) Close() error { return nil }

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{w: os.Stdout} })
}
