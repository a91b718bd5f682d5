// Package output encodes captured pixel buffers into image file formats.
// The capture core hands over only raw bytes plus dimensions; everything
// beyond that point, including format choice, lives here.
package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/winshot/winshot/internal/capture"
)

// Encoder writes one captured frame in a specific file format.
type Encoder interface {
	// Encode writes the buffer to w.
	Encode(w io.Writer, buf *capture.PixelBuffer) error

	// Name returns the canonical format name.
	Name() string
}

// ForFormat returns the encoder for a format name (png, jpeg, bmp, pdf).
func ForFormat(name string) (Encoder, error) {
	switch strings.ToLower(name) {
	case "png", "":
		return PNGEncoder{}, nil
	case "jpg", "jpeg":
		return JPEGEncoder{Quality: DefaultJPEGQuality}, nil
	case "bmp":
		return BMPEncoder{}, nil
	case "pdf":
		return PDFEncoder{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

// ForPath returns the encoder matching a file path's extension, falling back
// to PNG for unknown or missing extensions.
func ForPath(path string) Encoder {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	enc, err := ForFormat(ext)
	if err != nil {
		return PNGEncoder{}
	}
	return enc
}

// ContentType returns the MIME type served for a format name.
func ContentType(name string) string {
	switch strings.ToLower(name) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "bmp":
		return "image/bmp"
	case "pdf":
		return "application/pdf"
	default:
		return "image/png"
	}
}
