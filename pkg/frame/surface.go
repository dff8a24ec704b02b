package frame

import (
	"image"
	"sync"

	"github.com/matzehuels/filmframe/pkg/errors"
)

// MaxSurfaceSide is the largest supported canvas edge in pixels.
const MaxSurfaceSide = 32767

// Surface is a render target. The zero value is an empty surface ready to
// use. A Surface may be shared between a renderer and a reader; access to
// the underlying buffer is guarded.
type Surface struct {
	mu  sync.RWMutex
	img *image.RGBA
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	return &Surface{}
}

// Resize replaces the buffer with a cleared w×h one. It fails with
// UNUSABLE_SURFACE when either side is non-positive or too large.
func (s *Surface) Resize(w, h int) error {
	buf, err := newBuffer(w, h)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.img = buf
	s.mu.Unlock()
	return nil
}

// Image returns the current buffer, or nil if nothing has been rendered.
// The returned image must not be modified.
func (s *Surface) Image() *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// Size returns the buffer dimensions, zero when empty.
func (s *Surface) Size() (w, h int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.img == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// commit swaps in a fully rendered buffer.
func (s *Surface) commit(img *image.RGBA) {
	s.mu.Lock()
	s.img = img
	s.mu.Unlock()
}

func newBuffer(w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || w > MaxSurfaceSide || h > MaxSurfaceSide {
		return nil, errors.New(errors.ErrCodeUnusableSurface,
			"cannot allocate %dx%d surface (each side must be 1..%d)", w, h, MaxSurfaceSide)
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}
