package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	style   styleFlags
	output  string  // output file; default is <output dir>/<product>_EXPORT_<ts>.<ext>
	format  string  // jpeg or png
	quality float64 // JPEG quality (0-1]; 0 uses the export quality setting
	noCache bool
	refresh bool
}

// renderCommand creates the render command for framing a single photograph.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [image]",
		Short: "Frame a photograph and save it",
		Long: `Frame a photograph and save it as JPEG (default) or PNG.

The style comes from --style (a TOML file), the style named in the settings,
or the builtin gallery-light default. Individual flags override the style.`,
		Example: `  filmframe render photo.jpg --variant instant-film --grain
  filmframe render photo.jpg --style cinema.toml -o framed.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.style.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: jpeg (default), png")
	cmd.Flags().Float64Var(&opts.quality, "quality", 0, "JPEG quality in (0, 1] (default from settings)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached frame exists")

	registerCompletions(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	s := c.settings()
	cfg, err := opts.style.resolve(s)
	if err != nil {
		return err
	}
	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if opts.output != "" && opts.format == "" {
		// Infer from the output extension
		if f, err := export.ParseFormat(trimDot(filepath.Ext(opts.output))); err == nil {
			format = f
		}
	}
	quality := opts.quality
	if quality == 0 {
		quality = s.Quality.Export
	}

	data, err := pipeline.ReadFile(input)
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
	result, err := runner.Execute(ctx, data, pipeline.Options{
		Config:  cfg,
		Format:  format,
		Quality: quality,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}
	prog.done("Rendered " + filepath.Base(input))

	dir, name := filepath.Split(opts.output)
	if opts.output == "" {
		dir = s.OutputDir
		name = export.ExportName(product(s.Product), time.Now(), result.Format)
	}
	if dir == "" {
		dir = "."
	}
	exporter, err := export.NewDirExporter(dir)
	if err != nil {
		return err
	}
	if err := exporter.Export(ctx, name, result.Artifact); err != nil {
		return err
	}

	printSuccess("Framed %s (%s)", filepath.Base(input), StyleHighlight.Render(string(cfg.Variant)))
	printFile(exporter.Path(name))
	printFrameStats(result.Geometry.CanvasWidth, result.Geometry.CanvasHeight, len(result.Artifact), result.CacheInfo.ArtifactHit)
	return nil
}

// product returns name, or the default product when name is empty.
func product(name string) string {
	if name == "" {
		return export.DefaultProduct
	}
	return name
}

func trimDot(ext string) string {
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}

// formatBytes renders n as a short human-readable size.
func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
