// Package export encodes rendered frames and hands them to a destination.
//
// Encoding defaults to JPEG. Two quality presets mirror the two call sites:
// [PreviewQuality] for live previews and [ExportQuality] for saved files.
//
//	var buf bytes.Buffer
//	if err := export.Encode(&buf, img, export.JPEG, export.ExportQuality); err != nil {
//	    return err
//	}
//	name := export.BatchName("FilmFrame", 1, export.JPEG) // FilmFrame_BATCH_1.jpg
package export

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/matzehuels/filmframe/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
)

// Quality presets in [0, 1].
const (
	PreviewQuality = 0.8
	ExportQuality  = 0.95
)

// ParseFormat validates s. "jpg" is accepted as an alias and "" means JPEG.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "jpeg", "jpg":
		return JPEG, nil
	case "png":
		return PNG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be jpeg or png)", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == PNG {
		return ".png"
	}
	return ".jpg"
}

// ContentType returns the MIME type.
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/jpeg"
}

// jpegQuality maps a [0, 1] quality to the 1..100 scale of image/jpeg.
func jpegQuality(q float64) int {
	return int(max(1, min(100, math.Round(q*100))))
}

// Encode writes img to w. quality is ignored for PNG.
func Encode(w io.Writer, img image.Image, f Format, quality float64) error {
	if img == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to encode")
	}
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG, "":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality(quality)})
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

// EncodeBytes is Encode into a new byte slice.
func EncodeBytes(img image.Image, f Format, quality float64) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
