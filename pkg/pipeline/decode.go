package pipeline

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/filmframe/pkg/errors"
)

// Decode reads an image in any registered format (JPEG, PNG, GIF, BMP,
// TIFF, WebP) and returns it with the detected format name. JPEG EXIF
// orientation is applied, so phone photos come out upright.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New(errors.ErrCodeDecode, "empty image data")
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeDecode, err, "decode image")
	}
	if img.Bounds().Empty() {
		return nil, "", errors.New(errors.ErrCodeDecode, "image has no pixels")
	}
	return img, format, nil
}

// ReadFile reads the encoded image at path. Decoding is left to the runner
// so cached palettes can be looked up by content hash first.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, nil
}
