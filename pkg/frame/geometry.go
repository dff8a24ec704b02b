package frame

import "math"

// Per-variant geometry ratios.
const (
	instantSideRatio   = 0.08 // of the long edge
	instantBandRatio   = 0.25 // of the long edge
	negativeSideRatio  = 0.05 // of the image height
	negativeExtraRatio = 0.35 // of the image height
	cinemaExtraRatio   = 0.25 // of the image height
	galleryBandRatio   = 0.06 // of the long edge
)

// Margins are border sizes in pixels.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// ComputeMargins converts spec into pixels. Every percentage is applied to
// max(width, height) so portrait and landscape images of the same long edge
// get the same border.
func ComputeMargins(width, height int, spec MarginSpec) Margins {
	m := float64(max(width, height))
	if spec.Simple() {
		v := spec.Scale / 100 * m
		return Margins{Top: v, Bottom: v, Left: v, Right: v}
	}
	return Margins{
		Top:    spec.Top / 100 * m,
		Bottom: spec.Bottom / 100 * m,
		Left:   spec.Left / 100 * m,
		Right:  spec.Right / 100 * m,
	}
}

// Geometry is the resolved canvas layout of one render.
type Geometry struct {
	ImageWidth   int
	ImageHeight  int
	CanvasWidth  int
	CanvasHeight int
	DrawX        int
	DrawY        int

	// Margins are the effective pixel borders around the drawn image,
	// Bottom including any reserved text band.
	Margins Margins

	// Band is the height of the reserved text band below the image, zero
	// when none is reserved.
	Band int
}

// LongEdge returns max(ImageWidth, ImageHeight).
func (g Geometry) LongEdge() int { return max(g.ImageWidth, g.ImageHeight) }

// CanvasLongEdge returns max(CanvasWidth, CanvasHeight).
func (g Geometry) CanvasLongEdge() int { return max(g.CanvasWidth, g.CanvasHeight) }

// ImageRect returns the drawn image bounds on the canvas.
func (g Geometry) ImageRect() (x0, y0, x1, y1 float64) {
	x0, y0 = float64(g.DrawX), float64(g.DrawY)
	return x0, y0, x0 + float64(g.ImageWidth), y0 + float64(g.ImageHeight)
}

// ComputeCanvas derives the canvas size and image position for a source of
// w×h pixels under cfg. Sizes are rounded to the nearest pixel.
func ComputeCanvas(w, h int, cfg RenderConfig) Geometry {
	fw, fh := float64(w), float64(h)
	long := math.Max(fw, fh)

	g := Geometry{ImageWidth: w, ImageHeight: h}

	switch PresetFor(cfg.Variant).Family {
	case FamilyInstant:
		side := instantSideRatio * long
		band := instantBandRatio * long
		g.CanvasWidth = round(fw + 2*side)
		g.CanvasHeight = round(fh + side + band)
		g.DrawX = round(side)
		g.DrawY = round(side)
		g.Band = round(band)

	case FamilyNegative:
		side := negativeSideRatio * fh
		g.CanvasWidth = round(fw + 2*side)
		g.CanvasHeight = round(fh + negativeExtraRatio*fh)
		g.DrawX = round(side)
		g.DrawY = round(float64(g.CanvasHeight-h) / 2)

	case FamilyCinema:
		g.CanvasWidth = w
		g.CanvasHeight = round(fh + cinemaExtraRatio*fh)
		g.DrawY = round(float64(g.CanvasHeight-h) / 2)

	default:
		m := ComputeMargins(w, h, cfg.Margins)
		var band float64
		if cfg.Margins.Simple() && cfg.HasTextBand() {
			band = galleryBandRatio * long
		}
		g.CanvasWidth = round(fw + m.Left + m.Right)
		g.CanvasHeight = round(fh + m.Top + m.Bottom + band)
		g.DrawX = round(m.Left)
		g.DrawY = round(m.Top)
		g.Band = round(band)
	}

	g.Margins = Margins{
		Top:    float64(g.DrawY),
		Bottom: float64(g.CanvasHeight - h - g.DrawY),
		Left:   float64(g.DrawX),
		Right:  float64(g.CanvasWidth - w - g.DrawX),
	}
	return g
}

func round(v float64) int {
	return int(math.Round(v))
}
