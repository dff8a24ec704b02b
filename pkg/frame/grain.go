package frame

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/fogleman/gg"
)

const (
	grainTile    = 100
	grainDensity = 0.5
	grainAlpha   = 12 // speckle alpha on light variants
	grainAlphaDk = 14 // speckle alpha on dark variants
)

// newRNG returns the deterministic generator used by the grain stage.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// grainTileImage synthesizes a tileable speckle pattern. Light variants get
// dark speckles and dark variants light ones.
func grainTileImage(rng *rand.Rand, dark bool) *image.NRGBA {
	speck := color.NRGBA{A: grainAlpha}
	if dark {
		speck = color.NRGBA{R: 255, G: 255, B: 255, A: grainAlphaDk}
	}
	tile := image.NewNRGBA(image.Rect(0, 0, grainTile, grainTile))
	for y := range grainTile {
		for x := range grainTile {
			if rng.Float64() < grainDensity {
				tile.SetNRGBA(x, y, speck)
			}
		}
	}
	return tile
}

// paintGrain fills the whole canvas with the repeating grain tile.
func paintGrain(dc *gg.Context, seed uint64, dark bool) {
	tile := grainTileImage(newRNG(seed), dark)
	dc.Push()
	defer dc.Pop()
	dc.SetFillStyle(gg.NewSurfacePattern(tile, gg.RepeatBoth))
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	dc.Fill()
}
