// Package batch exports every queued photograph with the same frame style.
//
// A [Runner] processes entries strictly one after another: each entry is
// rendered into its own surface, encoded, handed to the exporter, and
// followed by a pacing delay before the next entry so the destination is
// not flooded. Only one run may be active at a time.
package batch

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/frame"
	"github.com/matzehuels/filmframe/pkg/observability"
)

// DefaultDelay is the pause between two exports.
const DefaultDelay = 800 * time.Millisecond

// ErrInProgress is returned by Run when another run is active.
var ErrInProgress = errors.New(errors.ErrCodeBatchInProgress, "a batch export is already in progress")

// Item describes one finished export, passed to the progress callback.
type Item struct {
	Index int // 1-based
	Total int
	Entry *frame.Entry
	Name  string
	Size  int
}

// Runner drives the compositor over a list of entries.
type Runner struct {
	Compositor *frame.Compositor
	Exporter   export.Exporter
	Logger     *log.Logger

	// Product prefixes export file names.
	Product string
	Format  export.Format
	Quality float64

	// Delay is the pause after every item except the last.
	Delay time.Duration

	// Progress, if set, is called after each export.
	Progress func(Item)

	// Sleep waits for d or until ctx is done. Tests replace it to collapse
	// the delay.
	Sleep func(ctx context.Context, d time.Duration) error

	running atomic.Bool
}

// NewRunner returns a runner with the default product name, JPEG export
// quality and 800ms pacing.
func NewRunner(c *frame.Compositor, e export.Exporter, logger *log.Logger) *Runner {
	if c == nil {
		c = frame.NewCompositor(logger)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Compositor: c,
		Exporter:   e,
		Logger:     logger,
		Product:    export.DefaultProduct,
		Format:     export.JPEG,
		Quality:    export.ExportQuality,
		Delay:      DefaultDelay,
		Sleep:      sleepContext,
	}
}

// Result summarizes a completed run.
type Result struct {
	Exported []string
	Duration time.Duration
}

// InProgress reports whether a run is active.
func (r *Runner) InProgress() bool {
	return r.running.Load()
}

// Run exports entries in order. It returns ErrInProgress without doing any
// work if another run is active. An empty list yields no exports and no
// error. The run stops at the first failure or when ctx is canceled; the
// result lists what had been exported up to that point.
func (r *Runner) Run(ctx context.Context, entries []*frame.Entry, cfg frame.RenderConfig) (*Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrInProgress
	}
	defer r.running.Store(false)

	if r.Exporter == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no exporter configured")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{}
	hooks := observability.Batch()
	hooks.OnBatchStart(ctx, len(entries))

	err := r.run(ctx, entries, cfg, res)
	res.Duration = time.Since(start)
	hooks.OnBatchComplete(ctx, len(res.Exported), res.Duration, err)
	if err != nil {
		return res, err
	}

	r.logger().Info("batch complete", "exported", len(res.Exported), "duration", res.Duration)
	return res, nil
}

func (r *Runner) run(ctx context.Context, entries []*frame.Entry, cfg frame.RenderConfig, res *Result) error {
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		index := i + 1
		name, size, err := r.exportOne(ctx, index, entry, cfg)
		if err != nil {
			r.logger().Error("export failed", "index", index, "error", err)
			return err
		}
		res.Exported = append(res.Exported, name)
		observability.Batch().OnItemExported(ctx, index, name, size)
		r.logger().Debug("exported", "index", index, "entry", entry.ID, "name", name, "bytes", size)
		if r.Progress != nil {
			r.Progress(Item{Index: index, Total: len(entries), Entry: entry, Name: name, Size: size})
		}

		if index < len(entries) && r.Delay > 0 {
			if err := r.sleep(ctx, r.Delay); err != nil {
				return err
			}
		}
	}
	return nil
}

// exportOne renders entry into a fresh surface so the preview buffer is
// never touched.
func (r *Runner) exportOne(ctx context.Context, index int, entry *frame.Entry, cfg frame.RenderConfig) (string, int, error) {
	c := r.Compositor
	if c == nil {
		c = frame.NewCompositor(r.Logger)
	}
	surface := frame.NewSurface()
	if err := c.Render(ctx, surface, entry, cfg); err != nil {
		return "", 0, err
	}
	data, err := export.EncodeBytes(surface.Image(), r.Format, r.Quality)
	if err != nil {
		return "", 0, err
	}
	name := export.BatchName(r.Product, index, r.Format)
	if err := r.Exporter.Export(ctx, name, data); err != nil {
		return "", 0, err
	}
	return name, len(data), nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard)
	}
	return r.Logger
}

func (r *Runner) sleep(ctx context.Context, d time.Duration) error {
	if r.Sleep == nil {
		return sleepContext(ctx, d)
	}
	return r.Sleep(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
