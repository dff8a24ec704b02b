package frame

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/fonts"
)

// gradient returns a deterministic test photo with varied colors.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(40 + x*160/w),
				G: uint8(60 + y*120/h),
				B: uint8(90 + (x+y)%80),
				A: 255,
			})
		}
	}
	return img
}

func testEntry(t *testing.T, w, h int) *Entry {
	t.Helper()
	e, err := NewEntry(gradient(w, h))
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	return e
}

func allEffects(cfg RenderConfig) RenderConfig {
	cfg.Effects = Effects{Shadow: true, Grain: true, LightLeak: true, DateStamp: true, Signature: true, Palette: true}
	return cfg
}

func TestRenderErrors(t *testing.T) {
	ctx := context.Background()
	c := NewCompositor(nil)
	entry := testEntry(t, 40, 30)

	if err := c.Render(ctx, nil, entry, DefaultConfig()); !errors.Is(err, errors.ErrCodeUnusableSurface) {
		t.Errorf("nil surface: err = %v, want UNUSABLE_SURFACE", err)
	}
	if err := c.Render(ctx, NewSurface(), nil, DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil entry: err = %v, want INVALID_INPUT", err)
	}
	if err := c.Render(ctx, NewSurface(), &Entry{}, DefaultConfig()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("entry without image: err = %v, want INVALID_INPUT", err)
	}

	bad := DefaultConfig()
	bad.FilterStrength = 3
	if err := c.Render(ctx, NewSurface(), entry, bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad config: err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderCanvasSize(t *testing.T) {
	c := NewCompositor(nil)
	entry := testEntry(t, 60, 90)
	for _, v := range Variants() {
		t.Run(string(v), func(t *testing.T) {
			cfg := DefaultConfig().WithVariant(v)
			s := NewSurface()
			if err := c.Render(context.Background(), s, entry, cfg); err != nil {
				t.Fatalf("Render: %v", err)
			}
			g := ComputeCanvas(60, 90, cfg)
			w, h := s.Size()
			if w != g.CanvasWidth || h != g.CanvasHeight {
				t.Errorf("surface = %dx%d, want %dx%d", w, h, g.CanvasWidth, g.CanvasHeight)
			}
		})
	}
}

func TestRenderBackgroundAndImage(t *testing.T) {
	c := NewCompositor(nil)
	src := gradient(50, 40)
	entry, _ := NewEntry(src)

	cfg := DefaultConfig()
	cfg.Caption.Visible = false
	img, err := c.RenderImage(context.Background(), entry, cfg)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner = %v, want white background", got)
	}

	g := ComputeCanvas(50, 40, cfg)
	want := src.NRGBAAt(10, 10)
	got := img.RGBAAt(g.DrawX+10, g.DrawY+10)
	if got.R != want.R || got.G != want.G || got.B != want.B {
		t.Errorf("image pixel = %v, want %v", got, want)
	}
}

func TestRenderUnknownVariantFallsBack(t *testing.T) {
	c := NewCompositor(nil)
	entry := testEntry(t, 30, 30)
	cfg := DefaultConfig().WithVariant("mystery")
	cfg.Caption.Visible = false
	img, err := c.RenderImage(context.Background(), entry, cfg)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("corner = %v, want white", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	c := NewCompositor(nil)
	entry := testEntry(t, 48, 36)

	for _, v := range Variants() {
		for _, f := range Filters() {
			for _, effects := range []bool{false, true} {
				name := fmt.Sprintf("%s/%s/effects=%v", v, f, effects)
				t.Run(name, func(t *testing.T) {
					cfg := DefaultConfig().WithVariant(v)
					cfg.Filter = f
					cfg.FilterStrength = 0.5
					if effects {
						cfg = allEffects(cfg)
					}
					a, err := c.RenderImage(context.Background(), entry, cfg)
					if err != nil {
						t.Fatalf("first render: %v", err)
					}
					b, err := c.RenderImage(context.Background(), entry, cfg)
					if err != nil {
						t.Fatalf("second render: %v", err)
					}
					if !bytes.Equal(a.Pix, b.Pix) {
						t.Error("renders differ")
					}
				})
			}
		}
	}
}

func TestRenderSeedChangesGrain(t *testing.T) {
	c := NewCompositor(nil)
	entry := testEntry(t, 40, 40)
	cfg := DefaultConfig()
	cfg.Effects.Grain = true

	a, _ := c.RenderImage(context.Background(), entry, cfg)
	cfg.Seed = 7
	b, _ := c.RenderImage(context.Background(), entry, cfg)
	if a == nil || b == nil {
		t.Fatal("render failed")
	}
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("different seeds produced identical grain")
	}
}

func TestRenderDoesNotMutateInputs(t *testing.T) {
	c := NewCompositor(nil)
	entry := testEntry(t, 32, 24)
	src := entry.Image.(*image.NRGBA)
	pixels := append([]uint8(nil), src.Pix...)
	palette := append([]Color(nil), entry.Palette...)
	cfg := allEffects(DefaultConfig())
	cfg.Filter = FilterDreamy
	before := cfg

	if err := c.Render(context.Background(), NewSurface(), entry, cfg); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(src.Pix, pixels) {
		t.Error("source pixels changed")
	}
	if len(entry.Palette) != len(palette) {
		t.Error("palette changed")
	}
	if cfg != before {
		t.Error("config changed")
	}
}

func TestRenderCanceledLeavesSurface(t *testing.T) {
	c := NewCompositor(nil)
	entry := testEntry(t, 20, 20)
	s := NewSurface()
	if err := c.Render(context.Background(), s, entry, DefaultConfig()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	prev := s.Image()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Render(ctx, s, entry, DefaultConfig().WithVariant(CinemaScope)); err == nil {
		t.Fatal("expected error from canceled context")
	}
	if s.Image() != prev {
		t.Error("canceled render replaced the surface buffer")
	}
}

func TestSurfaceResize(t *testing.T) {
	tests := []struct {
		w, h int
		ok   bool
	}{
		{10, 10, true},
		{MaxSurfaceSide, 1, true},
		{0, 10, false},
		{10, -1, false},
		{MaxSurfaceSide + 1, 10, false},
	}
	for _, tt := range tests {
		s := NewSurface()
		err := s.Resize(tt.w, tt.h)
		if tt.ok != (err == nil) {
			t.Errorf("Resize(%d, %d) = %v, want ok=%v", tt.w, tt.h, err, tt.ok)
		}
		if !tt.ok && !errors.Is(err, errors.ErrCodeUnusableSurface) {
			t.Errorf("Resize(%d, %d) code = %s", tt.w, tt.h, errors.GetCode(err))
		}
	}
}

func TestNewEntry(t *testing.T) {
	if _, err := NewEntry(nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewEntry(nil) = %v", err)
	}
	a := testEntry(t, 10, 20)
	b := testEntry(t, 10, 20)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q %q", a.ID, b.ID)
	}
	if a.Width != 10 || a.Height != 20 {
		t.Errorf("size = %dx%d", a.Width, a.Height)
	}
	if len(a.Palette) == 0 || len(a.Palette) > PaletteSize {
		t.Errorf("palette len = %d", len(a.Palette))
	}
}

func TestRenderOffsetOriginImage(t *testing.T) {
	full := gradient(200, 200)
	sub := full.SubImage(image.Rect(50, 50, 150, 150))

	entry, err := NewEntry(sub)
	if err != nil {
		t.Fatalf("NewEntry: %v", err)
	}
	if got := entry.Image.Bounds(); got != image.Rect(0, 0, 100, 100) {
		t.Fatalf("entry bounds = %v, want origin-based 100x100", got)
	}

	cfg := DefaultConfig()
	cfg.Caption.Visible = false
	img, err := NewCompositor(nil).RenderImage(context.Background(), entry, cfg)
	if err != nil {
		t.Fatalf("RenderImage: %v", err)
	}

	g := ComputeCanvas(100, 100, cfg)
	tests := []struct{ dx, dy int }{{0, 0}, {5, 5}, {99, 99}, {40, 70}}
	for _, tt := range tests {
		want := full.NRGBAAt(50+tt.dx, 50+tt.dy)
		got := img.RGBAAt(g.DrawX+tt.dx, g.DrawY+tt.dy)
		if got.R != want.R || got.G != want.G || got.B != want.B {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.dx, tt.dy, got, want)
		}
	}
}

func TestRenderFontOverride(t *testing.T) {
	entry := testEntry(t, 600, 400)
	for _, v := range []Variant{GalleryLight, InstantFilm, CinemaScope} {
		t.Run(string(v), func(t *testing.T) {
			cfg := DefaultConfig().WithVariant(v)
			cfg.Effects.Signature = true

			base, err := NewCompositor(nil).RenderImage(context.Background(), entry, cfg)
			if err != nil {
				t.Fatalf("builtin render: %v", err)
			}

			set := fonts.NewSet()
			for _, role := range []fonts.Role{fonts.Display, fonts.Italic, fonts.Sans, fonts.Script, fonts.Wide} {
				if err := set.Override(role, gomonobold.TTF); err != nil {
					t.Fatalf("Override(%s): %v", role, err)
				}
			}
			c := NewCompositor(nil)
			c.Fonts = set
			got, err := c.RenderImage(context.Background(), entry, cfg)
			if err != nil {
				t.Fatalf("override render: %v", err)
			}
			if bytes.Equal(base.Pix, got.Pix) {
				t.Error("font override did not change the caption")
			}
		})
	}
}
