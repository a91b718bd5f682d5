package capture

import "fmt"

// extract reads the rendered bitmap back into a tightly packed RGB buffer.
//
// The readback requests a top-down DIB (negative height in the underlying
// descriptor) so rows arrive first-row-topmost and no flip pass is needed.
// GDI delivers BGR, so the first and third byte of every pixel group are
// swapped afterwards; the fourth byte in 32-bit mode is left untouched.
func extract(a Adapter, t *renderTarget, width, height, bpp int) (*PixelBuffer, error) {
	stride := DIBStride(width, bpp)
	raw := make([]byte, stride*height)

	rows, err := a.ReadPixels(t.Surface(), t.Bitmap(), width, height, bpp, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadbackFailed, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: zero scanlines transferred", ErrReadbackFailed)
	}

	packed := width * bpp
	pix := raw
	if stride != packed {
		// 24-bit scanlines carry DWORD pad bytes; compact them away.
		pix = make([]byte, packed*height)
		for y := 0; y < height; y++ {
			copy(pix[y*packed:(y+1)*packed], raw[y*stride:y*stride+packed])
		}
	}

	for i := 0; i < len(pix); i += bpp {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}

	return &PixelBuffer{
		Pix:           pix,
		Width:         uint(width),
		Height:        uint(height),
		BytesPerPixel: bpp,
	}, nil
}
