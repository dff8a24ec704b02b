package frame

import (
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/filmframe/pkg/fonts"
)

// Text layout constants.
const (
	baseFontRatio      = 0.016 // of canvas long edge
	cinemaAnchorRatio  = 1.5   // of base font size, above the canvas bottom
	swatchDiameterRate = 1.2   // of base font size
	swatchStepRate     = 1.5   // of swatch diameter
	fadedAlpha         = 0.6
	signatureInsetRate = 0.01 // of image long edge

	cinemaTracking = 0.3 // letter spacing, of base font size
)

// FaceSource resolves font faces by role and pixel size.
type FaceSource interface {
	Face(role fonts.Role, size float64) (font.Face, error)
}

// textLayout carries the shared state of the caption stage.
type textLayout struct {
	dc     *gg.Context
	g      Geometry
	cfg    RenderConfig
	preset Preset
	faces  FaceSource
	fs     float64 // base font size
}

func (t *textLayout) face(role fonts.Role, scale float64) (font.Face, error) {
	return t.faces.Face(role, t.fs*scale)
}

// anchorY returns the vertical center of the text block.
func (t *textLayout) anchorY() float64 {
	switch t.preset.Family {
	case FamilyCinema:
		return float64(t.g.CanvasHeight) - cinemaAnchorRatio*t.fs
	default:
		// Instant film centers in its reserved band, every other layout in
		// whatever margin remains below the image.
		return float64(t.g.DrawY+t.g.ImageHeight) + t.g.Margins.Bottom/2
	}
}

// paintSwatches draws the palette circles just above y.
func (t *textLayout) paintSwatches(palette []Color, y float64) {
	n := min(len(palette), PaletteSize)
	d := swatchDiameterRate * t.fs
	step := swatchStepRate * d
	cy := y - d

	var cx float64
	if t.preset.Family == FamilyInstant {
		cx = float64(t.g.DrawX) + d/2
	} else {
		cx = float64(t.g.DrawX) + float64(t.g.ImageWidth)/2 - float64(n-1)*step/2
	}
	for i := range n {
		t.dc.DrawCircle(cx+float64(i)*step, cy, d/2)
		t.dc.SetColor(palette[i].NRGBA(1))
		t.dc.Fill()
	}
}

func (t *textLayout) paintCaption(y float64) error {
	switch t.preset.Family {
	case FamilyInstant:
		return t.paintInstantCaption(y)
	case FamilyCinema:
		return t.paintCinemaCaption(y)
	default:
		return t.paintGalleryCaption(y)
	}
}

func (t *textLayout) paintInstantCaption(y float64) error {
	c := t.cfg.Caption
	left := float64(t.g.DrawX)
	right := float64(t.g.DrawX + t.g.ImageWidth)

	if c.Camera != "" {
		face, err := t.face(fonts.Italic, 1.2)
		if err != nil {
			return err
		}
		t.dc.SetFontFace(face)
		t.dc.SetColor(t.preset.Text.NRGBA(1))
		t.dc.DrawStringAnchored(c.Camera, left, y, 0, 0.5)
	}

	if t.cfg.Effects.Signature && c.Signature != "" {
		face, err := t.face(fonts.Script, 1.6)
		if err != nil {
			return err
		}
		t.dc.SetFontFace(face)
		t.dc.SetColor(t.preset.Text.NRGBA(1))
		t.dc.DrawStringAnchored(c.Signature, right, y, 1, 0.5)
		return nil
	}
	if c.Date != "" {
		face, err := t.face(fonts.Sans, 0.8)
		if err != nil {
			return err
		}
		t.dc.SetFontFace(face)
		t.dc.SetColor(t.preset.Text.NRGBA(fadedAlpha))
		t.dc.DrawStringAnchored(c.Date, right, y, 1, 0.5)
	}
	return nil
}

func (t *textLayout) paintCinemaCaption(y float64) error {
	c := t.cfg.Caption
	line := strings.ToUpper(joinNonEmpty(" | ", c.Camera, c.Settings))
	if line == "" {
		return nil
	}
	face, err := t.face(fonts.Wide, 1)
	if err != nil {
		return err
	}
	t.dc.SetFontFace(face)
	t.dc.SetColor(t.preset.Text.NRGBA(1))
	drawTracked(t.dc, line, float64(t.g.CanvasWidth)/2, y, cinemaTracking*t.fs)
	return nil
}

func (t *textLayout) paintGalleryCaption(y float64) error {
	c := t.cfg.Caption
	cx := float64(t.g.DrawX) + float64(t.g.ImageWidth)/2

	if c.Camera != "" {
		face, err := t.face(fonts.Display, 1)
		if err != nil {
			return err
		}
		t.dc.SetFontFace(face)
		t.dc.SetColor(t.preset.Text.NRGBA(1))
		t.dc.DrawStringAnchored(strings.ToUpper(c.Camera), cx, y-0.6*t.fs, 0.5, 0.5)
	}

	if sub := joinNonEmpty(" | ", c.Lens, c.Settings, c.Date); sub != "" {
		face, err := t.face(fonts.Sans, 0.75)
		if err != nil {
			return err
		}
		t.dc.SetFontFace(face)
		t.dc.SetColor(t.preset.Text.NRGBA(fadedAlpha))
		t.dc.DrawStringAnchored(sub, cx, y+0.7*t.fs, 0.5, 0.5)
	}

	if t.cfg.Effects.Signature && c.Signature != "" {
		face, err := t.face(fonts.Script, 1.5)
		if err != nil {
			return err
		}
		m := t.g.Margins
		inset := min(m.Right, m.Bottom)/2 + signatureInsetRate*float64(t.g.LongEdge())
		t.dc.SetFontFace(face)
		t.dc.SetColor(t.preset.Text.NRGBA(1))
		t.dc.DrawStringAnchored(c.Signature,
			float64(t.g.CanvasWidth)-inset, float64(t.g.CanvasHeight)-inset, 1, 0)
	}
	return nil
}

// drawTracked draws s centered on (cx, y) with extra spacing between runes.
func drawTracked(dc *gg.Context, s string, cx, y, spacing float64) {
	runes := []rune(s)
	widths := make([]float64, len(runes))
	total := spacing * float64(len(runes)-1)
	for i, r := range runes {
		w, _ := dc.MeasureString(string(r))
		widths[i] = w
		total += w
	}
	x := cx - total/2
	for i, r := range runes {
		dc.DrawStringAnchored(string(r), x, y, 0, 0.5)
		x += widths[i] + spacing
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
