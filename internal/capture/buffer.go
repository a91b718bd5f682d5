package capture

import "image"

// PixelBuffer is the raw result of a capture: tightly packed row-major
// pixels, top row first, channel order RGB. In 4-byte mode the fourth byte
// is whatever the platform delivered, passed through untouched.
//
// len(Pix) == Width*Height*BytesPerPixel always holds; partial buffers are
// never returned.
type PixelBuffer struct {
	Pix           []byte
	Width         uint
	Height        uint
	BytesPerPixel int
}

// RGBA converts the buffer to a standard image for the encoding layer. In
// 3-byte mode alpha is saturated; in 4-byte mode the pad byte is carried
// into the alpha channel as delivered.
func (p *PixelBuffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(p.Width), int(p.Height)))
	bpp := p.BytesPerPixel
	n := int(p.Width) * int(p.Height)
	for i := 0; i < n; i++ {
		src := i * bpp
		dst := i * 4
		img.Pix[dst+0] = p.Pix[src+0]
		img.Pix[dst+1] = p.Pix[src+1]
		img.Pix[dst+2] = p.Pix[src+2]
		if bpp == 4 {
			img.Pix[dst+3] = p.Pix[src+3]
		} else {
			img.Pix[dst+3] = 0xff
		}
	}
	return img
}
