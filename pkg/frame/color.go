package frame

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/matzehuels/filmframe/pkg/errors"
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGB is a shorthand constructor for Color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns the color with the given alpha in [0, 1].
func (c Color) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clampUnit(alpha)*255 + 0.5)}
}

// Sum returns the channel sum, used by the palette sampler to discard
// near-black and near-white pixels.
func (c Color) Sum() int {
	return int(c.R) + int(c.G) + int(c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, errors.New(errors.ErrCodeInvalidInput, "invalid hex color: %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid hex color: %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func clampUnit(v float64) float64 {
	return max(0, min(v, 1))
}
