package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/filmframe/pkg/cache"
	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/frame"
	"github.com/matzehuels/filmframe/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, compositor and logger. It
// doesn't store pipeline results, so multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache      cache.Cache
	Keyer      cache.Keyer
	Logger     *log.Logger
	Compositor *frame.Compositor
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:      c,
		Keyer:      keyer,
		Logger:     logger,
		Compositor: frame.NewCompositor(logger),
	}
}

// Execute runs the complete decode → render → encode pipeline with caching.
func (r *Runner) Execute(ctx context.Context, data []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		SourceHash: cache.Hash(data),
		Format:     opts.Format,
	}
	result.Stats.SourceBytes = len(data)

	// Stage 1: Decode
	decodeStart := time.Now()
	entry, paletteHit, err := r.LoadEntry(ctx, data)
	if err != nil {
		return nil, err
	}
	result.Entry = entry
	result.Geometry = frame.ComputeCanvas(entry.Width, entry.Height, opts.Config)
	result.Stats.DecodeTime = time.Since(decodeStart)
	result.CacheInfo.PaletteHit = paletteHit

	r.Logger.Debug("decoded image",
		"width", entry.Width,
		"height", entry.Height,
		"palette_hit", paletteHit,
		"duration", result.Stats.DecodeTime)

	// Stage 2+3: Render and encode
	renderStart := time.Now()
	artifact, artifactHit, err := r.renderWithCacheInfo(ctx, result.SourceHash, entry, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = artifact
	result.Stats.ArtifactBytes = len(artifact)
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.ArtifactHit = artifactHit

	r.Logger.Info("rendered frame",
		"variant", opts.Config.Variant,
		"canvas", fmt.Sprintf("%dx%d", result.Geometry.CanvasWidth, result.Geometry.CanvasHeight),
		"bytes", len(artifact),
		"cached", artifactHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadEntry decodes data into an entry, reusing a cached palette when the
// same bytes were seen before.
func (r *Runner) LoadEntry(ctx context.Context, data []byte) (*frame.Entry, bool, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	palette, hit := r.Palette(ctx, cache.Hash(data), img)
	entry, err := frame.NewEntryWithPalette(img, palette)
	if err != nil {
		return nil, false, err
	}
	return entry, hit, nil
}

// Palette returns the palette of img, served from cache under sourceHash
// when possible.
func (r *Runner) Palette(ctx context.Context, sourceHash string, img image.Image) ([]frame.Color, bool) {
	key := r.Keyer.PaletteKey(sourceHash)
	hooks := observability.Cache()

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		if palette, err := unmarshalPalette(data); err == nil {
			hooks.OnCacheHit(ctx, cache.KeyTypePalette)
			return palette, true
		}
		// If deserialization fails, fall through to resample
	} else if err != nil {
		r.Logger.Warn("palette cache lookup failed", "error", err)
	}
	hooks.OnCacheMiss(ctx, cache.KeyTypePalette)

	palette := frame.SamplePalette(img)
	if data, err := marshalPalette(palette); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLPalette); err == nil {
			hooks.OnCacheSet(ctx, cache.KeyTypePalette, len(data))
		}
	}
	return palette, false
}

// renderWithCacheInfo renders and encodes entry, returning cached bytes
// unless opts.Refresh is set.
func (r *Runner) renderWithCacheInfo(ctx context.Context, sourceHash string, entry *frame.Entry, opts Options) ([]byte, bool, error) {
	cfgHash, err := cache.ConfigHash(opts.Config)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(sourceHash, cache.ArtifactKeyOpts{
		ConfigHash: cfgHash,
		Format:     string(opts.Format),
		Quality:    opts.Quality,
		Fonts:      r.fontsFingerprint(),
	})
	hooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			hooks.OnCacheHit(ctx, cache.KeyTypeArtifact)
			return data, true, nil
		}
	}
	hooks.OnCacheMiss(ctx, cache.KeyTypeArtifact)

	img, err := r.compositor().RenderImage(ctx, entry, opts.Config)
	if err != nil {
		return nil, false, err
	}
	data, err := export.EncodeBytes(img, opts.Format, opts.Quality)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		hooks.OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) compositor() *frame.Compositor {
	if r.Compositor == nil {
		r.Compositor = frame.NewCompositor(r.Logger)
	}
	return r.Compositor
}

// fontsFingerprint identifies the compositor's font overrides, if its font
// source can describe them.
func (r *Runner) fontsFingerprint() string {
	if fp, ok := r.compositor().Fonts.(interface{ Fingerprint() string }); ok {
		return fp.Fingerprint()
	}
	return ""
}

func marshalPalette(palette []frame.Color) ([]byte, error) {
	hex := make([]string, len(palette))
	for i, c := range palette {
		hex[i] = c.Hex()
	}
	return json.Marshal(hex)
}

func unmarshalPalette(data []byte) ([]frame.Color, error) {
	var hex []string
	if err := json.Unmarshal(data, &hex); err != nil {
		return nil, err
	}
	palette := make([]frame.Color, 0, len(hex))
	for _, h := range hex {
		c, err := frame.ParseHex(h)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}
