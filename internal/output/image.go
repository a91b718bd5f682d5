package output

import (
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"

	"github.com/winshot/winshot/internal/capture"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 85

// PNGEncoder writes lossless PNG.
type PNGEncoder struct{}

func (PNGEncoder) Name() string { return "png" }

func (PNGEncoder) Encode(w io.Writer, buf *capture.PixelBuffer) error {
	return png.Encode(w, buf.RGBA())
}

// JPEGEncoder writes JPEG at the configured quality.
type JPEGEncoder struct {
	Quality int
}

func (JPEGEncoder) Name() string { return "jpeg" }

func (e JPEGEncoder) Encode(w io.Writer, buf *capture.PixelBuffer) error {
	q := e.Quality
	if q <= 0 {
		q = DefaultJPEGQuality
	}
	return jpeg.Encode(w, buf.RGBA(), &jpeg.Options{Quality: q})
}

// BMPEncoder writes an uncompressed Windows bitmap.
type BMPEncoder struct{}

func (BMPEncoder) Name() string { return "bmp" }

func (BMPEncoder) Encode(w io.Writer, buf *capture.PixelBuffer) error {
	return bmp.Encode(w, buf.RGBA())
}
