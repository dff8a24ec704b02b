package frame

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Effect constants, as fractions of the dimension named in each comment.
const (
	sprocketWidthRatio  = 0.04 // of canvas height
	sprocketHeightRatio = 0.7  // of hole width
	sprocketStepRatio   = 1.5  // of hole width
	sprocketCornerRatio = 0.2  // of hole width

	shadowBlurRatio   = 0.02  // of canvas width
	shadowOffsetRatio = 0.005 // of canvas width
	shadowOpacity     = 0.25

	stampFontRatio  = 0.04 // of image long edge
	stampInsetRatio = 0.05 // of image long edge
	stampGlowRatio  = 0.25 // of stamp font size

	leakExtentRatio = 0.4 // of canvas width and height
)

var (
	sprocketColor = RGB(220, 220, 220)
	stampGlow     = color.NRGBA{R: 255, G: 110, B: 20, A: 230}
	stampColor    = color.NRGBA{R: 255, G: 170, B: 80, A: 255}
	leakColor     = RGB(255, 150, 50)
)

// blurPad returns how many pixels a Gaussian of the given sigma bleeds past
// an edge.
func blurPad(sigma float64) int {
	return int(math.Ceil(3 * sigma))
}

// paintSprockets draws two rows of rounded holes, centered in the top and
// bottom margins.
func paintSprockets(dc *gg.Context, g Geometry) {
	w := sprocketWidthRatio * float64(g.CanvasHeight)
	if w <= 0 {
		return
	}
	h := sprocketHeightRatio * w
	step := sprocketStepRatio * w
	r := sprocketCornerRatio * w

	topY := g.Margins.Top/2 - h/2
	bottomY := float64(g.DrawY+g.ImageHeight) + g.Margins.Bottom/2 - h/2

	dc.SetColor(sprocketColor.NRGBA(1))
	for x := (step - w) / 2; x+w <= float64(g.CanvasWidth); x += step {
		dc.DrawRoundedRectangle(x, topY, w, h, r)
		dc.DrawRoundedRectangle(x, bottomY, w, h, r)
	}
	dc.Fill()
}

// paintShadow composites a blurred translucent black rectangle behind the
// image position.
func paintShadow(canvas *image.RGBA, g Geometry) {
	sigma := shadowBlurRatio * float64(g.CanvasWidth) / 2
	offset := round(shadowOffsetRatio * float64(g.CanvasWidth))
	pad := blurPad(sigma)

	layer := image.NewNRGBA(image.Rect(0, 0, g.ImageWidth+2*pad, g.ImageHeight+2*pad))
	fill := color.NRGBA{A: toByte(shadowOpacity)}
	for y := pad; y < pad+g.ImageHeight; y++ {
		for x := pad; x < pad+g.ImageWidth; x++ {
			layer.SetNRGBA(x, y, fill)
		}
	}
	blurred := imaging.Blur(layer, sigma)
	at := image.Pt(g.DrawX+offset-pad, g.DrawY+offset-pad)
	composite(canvas, blurred, at, BlendNormal, 1)
}

// paintFilter redraws src blurred on top of the drawn image.
func paintFilter(canvas *image.RGBA, src image.Image, g Geometry, p FilterParams) {
	blurred := imaging.Blur(src, p.Radius)
	composite(canvas, blurred, image.Pt(g.DrawX, g.DrawY), p.Blend, p.Opacity)
}

// paintStamp draws the quartz date near the image's bottom-right corner:
// a blurred orange halo first, then the flat text on top.
func paintStamp(dc *gg.Context, canvas *image.RGBA, g Geometry, text string, face font.Face) {
	long := float64(g.LongEdge())
	size := stampFontRatio * long
	inset := stampInsetRatio * long
	x := float64(g.DrawX+g.ImageWidth) - inset
	y := float64(g.DrawY+g.ImageHeight) - inset

	dc.SetFontFace(face)
	tw, th := dc.MeasureString(text)

	sigma := stampGlowRatio * size
	pad := blurPad(sigma)
	lw, lh := int(math.Ceil(tw))+2*pad, int(math.Ceil(th))+2*pad
	glow := gg.NewContext(lw, lh)
	glow.SetFontFace(face)
	glow.SetColor(stampGlow)
	glow.DrawStringAnchored(text, float64(lw-pad), float64(lh-pad), 1, 0)
	halo := imaging.Blur(glow.Image(), sigma)
	composite(canvas, halo, image.Pt(round(x)-lw+pad, round(y)-lh+pad), BlendNormal, 1)

	dc.SetColor(stampColor)
	dc.DrawStringAnchored(text, x, y, 1, 0)
}

// paintLightLeak lightens the canvas with a warm diagonal gradient that
// starts opaque in the top-left corner.
func paintLightLeak(canvas *image.RGBA) {
	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()
	layer := gg.NewContext(w, h)
	grad := gg.NewLinearGradient(0, 0, leakExtentRatio*float64(w), leakExtentRatio*float64(h))
	grad.AddColorStop(0, leakColor.NRGBA(1))
	grad.AddColorStop(1, leakColor.NRGBA(0))
	layer.SetFillStyle(grad)
	layer.DrawRectangle(0, 0, float64(w), float64(h))
	layer.Fill()
	composite(canvas, imaging.Clone(layer.Image()), image.Point{}, BlendLighten, 1)
}
