// Package pkg provides the core libraries for FilmFrame photo framing.
//
// # Overview
//
// FilmFrame composites a photograph into a styled canvas: a gallery mat, an
// instant-film border, a film negative with sprocket holes or a cinema
// letterbox, optionally with a printed caption, color palette swatches,
// a signature and film effects (grain, light leak, date stamp, diffusion).
// The pkg directory is organized as:
//
//  1. [frame] - Domain logic (variants, geometry, palette, compositing)
//  2. [fonts] - Embedded typefaces for captions and stamps
//  3. [pipeline] - Orchestration (decode, palette, render, encode)
//  4. [export], [batch], [queue] - Output naming, sequential batch export
//     and the photo queue
//  5. [cache], [config], [errors], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through FilmFrame:
//
//	JPEG/PNG/WebP/TIFF/BMP bytes
//	         ↓
//	    [pipeline] package (decode, source hash)
//	         ↓
//	    [frame] package (entry + palette, geometry, compositor)
//	         ↓
//	    [export] package (JPEG/PNG encoding, file names)
//	         ↓
//	    file, batch directory or HTTP response
//
// # Quick Start
//
// Frame a photograph as instant film:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/matzehuels/filmframe/pkg/cache"
//	    "github.com/matzehuels/filmframe/pkg/frame"
//	    "github.com/matzehuels/filmframe/pkg/pipeline"
//	)
//
//	data, _ := os.ReadFile("photo.jpg")
//	cfg := frame.DefaultConfig()
//	cfg.Variant = frame.InstantFilm
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(context.Background(), data, pipeline.Options{Config: cfg})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("framed.jpg", result.Artifact, 0644)
//
// # Caching
//
// The [cache] package stores extracted palettes and rendered frames keyed
// by source hash and style, in a directory or in Redis.
//
// [frame]: github.com/matzehuels/filmframe/pkg/frame
// [fonts]: github.com/matzehuels/filmframe/pkg/fonts
// [pipeline]: github.com/matzehuels/filmframe/pkg/pipeline
// [export]: github.com/matzehuels/filmframe/pkg/export
// [batch]: github.com/matzehuels/filmframe/pkg/batch
// [queue]: github.com/matzehuels/filmframe/pkg/queue
// [cache]: github.com/matzehuels/filmframe/pkg/cache
// [config]: github.com/matzehuels/filmframe/pkg/config
// [errors]: github.com/matzehuels/filmframe/pkg/errors
// [observability]: github.com/matzehuels/filmframe/pkg/observability
package pkg
