package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/matzehuels/filmframe/pkg/cache"
	"github.com/matzehuels/filmframe/pkg/errors"
	"github.com/matzehuels/filmframe/pkg/export"
	"github.com/matzehuels/filmframe/pkg/frame"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{uint8(x * 255 / w), uint8(y * 255 / h), 120, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(fc, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		wantErr  errors.Code
		wantFmt  export.Format
		wantQual float64
	}{
		{"defaults", Options{Config: frame.DefaultConfig()}, "", export.JPEG, export.ExportQuality},
		{"png", Options{Config: frame.DefaultConfig(), Format: "png", Quality: 0.5}, "", export.PNG, 0.5},
		{"quality clamps", Options{Config: frame.DefaultConfig(), Quality: 3}, "", export.JPEG, 1},
		{"bad format", Options{Config: frame.DefaultConfig(), Format: "gif"}, errors.ErrCodeInvalidFormat, "", 0},
		{"bad variant", Options{Config: frame.DefaultConfig().WithVariant("sepia")}, errors.ErrCodeInvalidVariant, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateAndSetDefaults()
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if opts.Format != tt.wantFmt || opts.Quality != tt.wantQual {
				t.Errorf("got %s/%g, want %s/%g", opts.Format, opts.Quality, tt.wantFmt, tt.wantQual)
			}
			// Idempotent
			if err := opts.ValidateAndSetDefaults(); err != nil {
				t.Errorf("second call: %v", err)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	img, format, err := Decode(pngBytes(t, 8, 6))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("Decode = %s %v", format, img.Bounds())
	}

	for _, bad := range [][]byte{nil, []byte("not an image")} {
		if _, _, err := Decode(bad); !errors.Is(err, errors.ErrCodeDecode) {
			t.Errorf("Decode(%q) = %v, want DECODE_FAILED", bad, err)
		}
	}
}

// jpegWithOrientation encodes a w x h JPEG and inserts a minimal EXIF APP1
// segment carrying the given orientation tag value.
func jpegWithOrientation(t *testing.T, w, h int, orientation byte) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{uint8(x * 255 / w), 80, 160, 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	app1 := []byte{
		0xff, 0xe1, 0x00, 0x22,
		'E', 'x', 'i', 'f', 0, 0,
		'M', 'M', 0x00, 0x2a, 0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, orientation, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	data := buf.Bytes()
	out := append([]byte{}, data[:2]...)
	out = append(out, app1...)
	return append(out, data[2:]...)
}

func TestDecodeOrientation(t *testing.T) {
	tests := []struct {
		name        string
		orientation byte
		wantW       int
		wantH       int
	}{
		{"upright", 1, 16, 8},
		{"mirrored", 2, 16, 8},
		{"rotated 90", 6, 8, 16},
		{"rotated 270", 8, 8, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := Decode(jpegWithOrientation(t, 16, 8, tt.orientation))
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if format != "jpeg" {
				t.Errorf("format = %q, want jpeg", format)
			}
			if b := img.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t)
	data := pngBytes(t, 60, 40)
	opts := Options{Config: frame.DefaultConfig().WithVariant(frame.InstantFilm)}

	res, err := r.Execute(ctx, data, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.PaletteHit || res.CacheInfo.ArtifactHit {
		t.Errorf("first run should miss: %+v", res.CacheInfo)
	}
	out, err := jpeg.Decode(bytes.NewReader(res.Artifact))
	if err != nil {
		t.Fatalf("artifact is not a JPEG: %v", err)
	}
	g := res.Geometry
	if out.Bounds().Dx() != g.CanvasWidth || out.Bounds().Dy() != g.CanvasHeight {
		t.Errorf("artifact %v, geometry %dx%d", out.Bounds(), g.CanvasWidth, g.CanvasHeight)
	}
	if res.Entry.Width != 60 || res.Entry.Height != 40 {
		t.Errorf("entry = %dx%d", res.Entry.Width, res.Entry.Height)
	}

	// Same bytes and style: both stages come from cache
	again, err := r.Execute(ctx, data, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !again.CacheInfo.PaletteHit || !again.CacheInfo.ArtifactHit {
		t.Errorf("second run should hit: %+v", again.CacheInfo)
	}
	if !bytes.Equal(again.Artifact, res.Artifact) {
		t.Error("cached artifact differs")
	}
	if len(again.Entry.Palette) != len(res.Entry.Palette) {
		t.Errorf("cached palette has %d colors, want %d", len(again.Entry.Palette), len(res.Entry.Palette))
	}

	// A different style misses the artifact but reuses the palette
	other := opts
	other.Config = opts.Config.WithVariant(frame.CinemaScope)
	diff, err := r.Execute(ctx, data, other)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !diff.CacheInfo.PaletteHit || diff.CacheInfo.ArtifactHit {
		t.Errorf("style change: %+v", diff.CacheInfo)
	}

	// Refresh re-renders
	opts.Refresh = true
	fresh, err := r.Execute(ctx, data, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if fresh.CacheInfo.ArtifactHit {
		t.Error("refresh should not hit the artifact cache")
	}
}

func TestExecuteErrors(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	if _, err := r.Execute(ctx, []byte("junk"), Options{Config: frame.DefaultConfig()}); !errors.Is(err, errors.ErrCodeDecode) {
		t.Errorf("junk input: %v", err)
	}

	cfg := frame.DefaultConfig()
	cfg.FilterStrength = 2
	if _, err := r.Execute(ctx, pngBytes(t, 4, 4), Options{Config: cfg}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad strength: %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := r.Execute(canceled, pngBytes(t, 4, 4), Options{Config: frame.DefaultConfig()}); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestPaletteRoundTrip(t *testing.T) {
	in := []frame.Color{frame.RGB(1, 2, 3), frame.RGB(250, 128, 0)}
	data, err := marshalPalette(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := unmarshalPalette(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != len(in) || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestReadFile(t *testing.T) {
	if _, err := ReadFile(t.TempDir() + "/missing.jpg"); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("err = %v, want INVALID_PATH", err)
	}
}
