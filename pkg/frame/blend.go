package frame

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"
)

// BlendMode selects the per-channel blend function used when a layer is
// composited onto the canvas.
type BlendMode string

// Supported blend modes.
const (
	BlendNormal    BlendMode = "normal"
	BlendScreen    BlendMode = "screen"
	BlendLighten   BlendMode = "lighten"
	BlendSoftLight BlendMode = "soft-light"
	BlendMultiply  BlendMode = "multiply"
	BlendOverlay   BlendMode = "overlay"
)

func (m BlendMode) String() string { return string(m) }

type blendFunc func(bg, fg image.Image) *image.RGBA

// fn returns the bild color function for m, or nil for normal (and unknown)
// modes where the layer color is used as is.
func (m BlendMode) fn() blendFunc {
	switch m {
	case BlendScreen:
		return blend.Screen
	case BlendLighten:
		return blend.Lighten
	case BlendSoftLight:
		return blend.SoftLight
	case BlendMultiply:
		return blend.Multiply
	case BlendOverlay:
		return blend.Overlay
	default:
		return nil
	}
}

// composite paints src onto dst with its top-left corner at off, weighting
// the blended color by the source alpha times opacity:
//
//	out = D*(1-a) + a*B(S, D)
//
// B is evaluated on the opaque layer color and the coverage a is applied
// afterwards with a straight-alpha overlay. dst is expected to be fully
// opaque (the background stage always runs first).
func composite(dst *image.RGBA, src *image.NRGBA, off image.Point, mode BlendMode, opacity float64) {
	opacity = clampUnit(opacity)
	if dst == nil || src == nil || opacity == 0 {
		return
	}

	sb := src.Bounds()
	area := sb.Sub(sb.Min).Add(off).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	bg := imaging.Crop(dst, area)
	layer := imaging.Crop(src, area.Sub(off).Add(sb.Min))
	if fn := mode.fn(); fn != nil {
		layer = blendedLayer(bg, layer, fn)
	}
	out := imaging.Overlay(bg, layer, image.Point{}, opacity)
	draw.Draw(dst, area, out, image.Point{}, draw.Src)
}

// blendedLayer returns a copy of layer whose colors are fn(bg, layer) and
// whose alpha is the layer's own.
func blendedLayer(bg, layer *image.NRGBA, fn blendFunc) *image.NRGBA {
	opaque := imaging.Clone(layer)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}
	mixed := imaging.Clone(fn(bg, opaque))
	for i := 3; i < len(mixed.Pix) && i < len(layer.Pix); i += 4 {
		mixed.Pix[i] = layer.Pix[i]
	}
	return mixed
}

func toByte(v float64) uint8 {
	return uint8(clampUnit(v)*255 + 0.5)
}
