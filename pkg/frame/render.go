package frame

import (
	"context"
	"image"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"

	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/fonts"
	"github.com/matzehuels/filmframe/pkg/observability"
)

// Compositor paints framed photographs. It holds no per-render state, so
// one Compositor may be shared by the preview path and the batch runner as
// long as each uses its own Surface.
type Compositor struct {
	Fonts  FaceSource
	Logger *log.Logger
}

// NewCompositor returns a compositor using the builtin fonts. A nil logger
// discards output.
func NewCompositor(logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Compositor{Fonts: fonts.NewSet(), Logger: logger}
}

// stage is one step of the drawing pipeline. Stages whose guard is false
// are skipped.
type stage struct {
	name  string
	guard bool
	paint func() error
}

// Render composites entry onto dst using cfg. The work happens in a scratch
// buffer which replaces dst's contents only after every stage succeeded; on
// error or cancellation dst is left unchanged.
func (c *Compositor) Render(ctx context.Context, dst *Surface, entry *Entry, cfg RenderConfig) (err error) {
	if dst == nil {
		return errors.New(errors.ErrCodeUnusableSurface, "no target surface")
	}
	if entry == nil || entry.Image == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no source image")
	}
	if err := cfg.validateValues(); err != nil {
		return err
	}

	start := time.Now()
	g := ComputeCanvas(entry.Width, entry.Height, cfg)
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(cfg.Variant), g.CanvasWidth, g.CanvasHeight)
	defer func() {
		hooks.OnRenderComplete(ctx, string(cfg.Variant), time.Since(start), err)
	}()

	canvas, err := newBuffer(g.CanvasWidth, g.CanvasHeight)
	if err != nil {
		return err
	}
	dc := gg.NewContextForRGBA(canvas)
	preset := PresetFor(cfg.Variant)
	filter, hasFilter := ResolveFilter(cfg.Filter, cfg.FilterStrength, cfg.FilterRadius, g.CanvasWidth, g.CanvasHeight)
	text := &textLayout{
		dc:     dc,
		g:      g,
		cfg:    cfg,
		preset: preset,
		faces:  c.faces(),
		fs:     baseFontRatio * float64(g.CanvasLongEdge()),
	}

	stages := []stage{
		{"background", true, func() error {
			dc.SetColor(preset.Background.NRGBA(1))
			dc.Clear()
			return nil
		}},
		{"grain", cfg.Effects.Grain && preset.Family != FamilyCinema, func() error {
			paintGrain(dc, cfg.Seed, preset.Dark)
			return nil
		}},
		{"sprockets", preset.Family == FamilyNegative, func() error {
			paintSprockets(dc, g)
			return nil
		}},
		{"shadow", cfg.Effects.Shadow && preset.Family != FamilyCinema && preset.Family != FamilyNegative, func() error {
			paintShadow(canvas, g)
			return nil
		}},
		{"image", true, func() error {
			dc.DrawImage(entry.Image, g.DrawX, g.DrawY)
			return nil
		}},
		{"filter", hasFilter, func() error {
			paintFilter(canvas, entry.Image, g, filter)
			return nil
		}},
		{"stamp", cfg.Effects.DateStamp && cfg.Caption.StampDate != "", func() error {
			face, err := text.faces.Face(fonts.Mono, stampFontRatio*float64(g.LongEdge()))
			if err != nil {
				return err
			}
			paintStamp(dc, canvas, g, cfg.Caption.StampDate, face)
			return nil
		}},
		{"light-leak", cfg.Effects.LightLeak, func() error {
			paintLightLeak(canvas)
			return nil
		}},
		{"caption", true, func() error {
			y := text.anchorY()
			if cfg.Effects.Palette && preset.Family != FamilyCinema && len(entry.Palette) > 0 {
				text.paintSwatches(entry.Palette, y)
				y += text.fs
			}
			if cfg.Caption.Visible {
				return text.paintCaption(y)
			}
			return nil
		}},
	}

	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.guard {
			continue
		}
		if err := s.paint(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "%s stage", s.name)
		}
	}

	dst.commit(canvas)
	c.logger().Debug("rendered frame",
		"entry", entry.ID,
		"variant", cfg.Variant,
		"canvas", image.Pt(g.CanvasWidth, g.CanvasHeight),
		"duration", time.Since(start))
	return nil
}

// RenderImage renders entry into a fresh surface and returns the buffer.
func (c *Compositor) RenderImage(ctx context.Context, entry *Entry, cfg RenderConfig) (*image.RGBA, error) {
	s := NewSurface()
	if err := c.Render(ctx, s, entry, cfg); err != nil {
		return nil, err
	}
	return s.Image(), nil
}

func (c *Compositor) faces() FaceSource {
	if c.Fonts == nil {
		return fonts.NewSet()
	}
	return c.Fonts
}

func (c *Compositor) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard)
	}
	return c.Logger
}
