package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/filmframe/pkg/batch"
	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/frame"
	"github.com/matzehuels/filmframe/pkg/pipeline"
	"github.com/matzehuels/filmframe/pkg/queue"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	style     styleFlags
	outputDir string
	format    string
	quality   float64
	delay     time.Duration
	noCache   bool
}

// batchCommand creates the batch command that exports many photographs with
// one style.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch [images...]",
		Short: "Frame many photographs with the same style",
		Long: `Frame every given photograph with the same style and save them as
<product>_BATCH_1.jpg, <product>_BATCH_2.jpg, ...

Photographs are decoded in parallel and exported strictly one after another,
with a pause between exports (--delay).`,
		Example: `  filmframe batch roll/*.jpg --variant film-negative --grain -d out/`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("delay") {
				opts.delay = c.settings().Batch.Delay
			}
			return c.runBatch(cmd.Context(), args, &opts)
		},
	}

	opts.style.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "output directory (default from settings)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: jpeg (default), png")
	cmd.Flags().Float64Var(&opts.quality, "quality", 0, "JPEG quality in (0, 1] (default from settings)")
	cmd.Flags().DurationVar(&opts.delay, "delay", batch.DefaultDelay, "pause between exports")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable palette caching")

	registerCompletions(cmd)
	return cmd
}

func (c *CLI) runBatch(ctx context.Context, inputs []string, opts *batchOpts) error {
	s := c.settings()
	cfg, err := opts.style.resolve(s)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	quality := opts.quality
	if quality == 0 {
		quality = s.Quality.Export
	}
	dir := opts.outputDir
	if dir == "" {
		dir = s.OutputDir
	}
	exporter, err := export.NewDirExporter(dir)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	if err := c.useFonts(runner, &opts.style); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	q, err := c.decodeAll(ctx, runner, inputs)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Decoded %d photographs", q.Len()))

	spinner := newSpinner(ctx, "Exporting", q.Len())
	br := batch.NewRunner(runner.Compositor, exporter, c.Logger)
	br.Product = product(s.Product)
	br.Format = format
	br.Quality = quality
	br.Delay = opts.delay
	br.Progress = func(it batch.Item) {
		spinner.SetProgress(it.Index)
	}

	spinner.Start()
	res, err := br.Run(ctx, q.Entries(), cfg)
	if err != nil {
		spinner.StopWithError("Batch export failed")
		if res != nil && len(res.Exported) > 0 {
			printDetail("%d of %d exported before the failure", len(res.Exported), q.Len())
		}
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Exported %d photographs (%s)", len(res.Exported), res.Duration.Round(time.Millisecond)))
	for _, name := range res.Exported {
		printFile(exporter.Path(name))
	}
	return nil
}

// decodeAll decodes inputs concurrently into a queue. Entries keep the
// order of inputs.
func (c *CLI) decodeAll(ctx context.Context, runner *pipeline.Runner, inputs []string) (*queue.Queue, error) {
	q := queue.New()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	decoded := make([]*frame.Entry, len(inputs))
	for i, path := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := pipeline.ReadFile(path)
			if err != nil {
				return err
			}
			entry, _, err := runner.LoadEntry(ctx, data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			decoded[i] = entry
			c.Logger.Debug("decoded", "path", path, "entry", entry.ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, e := range decoded {
		q.Append(e)
	}
	return q, nil
}
