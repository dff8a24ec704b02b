// Package pipeline provides the decode → frame → encode pipeline for FilmFrame.
//
// This package implements the complete single-photograph path used by the
// CLI render command and the HTTP preview server. By centralizing it, both
// entry points share the same defaults and the same caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Decode: Turn uploaded bytes into an image and sample its palette
//  2. Render: Composite the frame with [frame.Compositor]
//  3. Encode: Produce JPEG or PNG bytes
//
// Palettes are cached per source image and encoded artifacts per source
// image and render configuration, so re-rendering an unchanged photograph
// with an unchanged style is a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, data, pipeline.Options{
//	    Config: frame.DefaultConfig().WithVariant(frame.InstantFilm),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("framed.jpg", result.Artifact, 0644)
package pipeline

import (
	"time"

	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/frame"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	Config  frame.RenderConfig `json:"config"`
	Format  export.Format      `json:"format,omitempty"`
	Quality float64            `json:"quality,omitempty"`

	// Refresh bypasses cached artifacts. Fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Entry is the decoded photograph with its palette.
	Entry *frame.Entry

	// SourceHash is the content hash of the input bytes.
	SourceHash string

	// Geometry is the canvas layout the frame was rendered with.
	Geometry frame.Geometry

	// Artifact is the encoded frame.
	Artifact []byte

	// Format is the encoding of Artifact.
	Format export.Format

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SourceBytes   int
	ArtifactBytes int
	DecodeTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PaletteHit  bool // Whether the palette came from cache
	ArtifactHit bool // Whether the encoded frame came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults validates the render configuration and fills in
// the default format and quality. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	f, err := export.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if o.Quality <= 0 {
		o.Quality = export.ExportQuality
	}
	o.Quality = min(o.Quality, 1)
	if o.Config.Filter == "" {
		o.Config.Filter = frame.FilterNone
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}
