package frame

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/matzehuels/filmframe/pkg/errors"
)

// Entry is a decoded photograph waiting in the queue. Its palette is
// sampled once at creation and kept for the entry's lifetime.
type Entry struct {
	ID      string
	Image   image.Image
	Width   int
	Height  int
	Palette []Color
}

// NewEntry wraps img in an entry with a fresh ID and sampled palette.
func NewEntry(img image.Image) (*Entry, error) {
	return NewEntryWithPalette(img, nil)
}

// NewEntryWithPalette is like NewEntry but reuses a previously sampled
// palette when palette is non-nil. Images whose bounds do not start at the
// origin (sub-images, cropped decodes) are copied so the stored image
// always starts at (0, 0).
func NewEntryWithPalette(img image.Image, palette []Color) (*Entry, error) {
	if img == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image is nil")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "image has no pixels")
	}
	if b.Min != (image.Point{}) {
		img = imaging.Clone(img)
	}
	if palette == nil {
		palette = SamplePalette(img)
	}
	return &Entry{
		ID:      uuid.NewString(),
		Image:   img,
		Width:   b.Dx(),
		Height:  b.Dy(),
		Palette: palette,
	}, nil
}
