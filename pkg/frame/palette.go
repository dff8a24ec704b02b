package frame

import (
	"image"

	"github.com/disintegration/imaging"
)

// Sampler constants.
const (
	PaletteSize   = 5
	sampleGrid    = 50
	sampleStride  = 40
	minChannelSum = 40
	maxChannelSum = 700
	bytesPerPixel = 4
)

// SamplePalette reduces img to at most [PaletteSize] representative colors.
//
// The image is downsampled to a 50×50 grid and every 40th pixel is
// examined; pixels that are nearly black or nearly white are dropped. Five
// evenly spaced candidates are then picked in sample order. An image with
// no qualifying pixels yields an empty palette. img is never modified.
func SamplePalette(img image.Image) []Color {
	if img == nil || img.Bounds().Empty() {
		return []Color{}
	}
	small := imaging.Resize(img, sampleGrid, sampleGrid, imaging.Linear)

	var candidates []Color
	for i := 0; i+2 < len(small.Pix); i += sampleStride * bytesPerPixel {
		c := Color{R: small.Pix[i], G: small.Pix[i+1], B: small.Pix[i+2]}
		if s := c.Sum(); s <= minChannelSum || s >= maxChannelSum {
			continue
		}
		candidates = append(candidates, c)
	}
	return pickEvenly(candidates, PaletteSize)
}

// pickEvenly returns up to n entries of list at indices i*floor(len/n).
// Indices past the end are skipped.
func pickEvenly(list []Color, n int) []Color {
	if len(list) == 0 {
		return []Color{}
	}
	step := max(1, len(list)/n)
	out := make([]Color, 0, n)
	for i := range n {
		idx := i * step
		if idx >= len(list) {
			break
		}
		out = append(out, list[idx])
	}
	return out
}
