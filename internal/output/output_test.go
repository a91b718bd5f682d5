package output

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/winshot/winshot/internal/capture"
)

func testBuffer() *capture.PixelBuffer {
	// 4x2, RGB with pad byte; pixel (x,y) = (x*40, y*40, 200).
	buf := &capture.PixelBuffer{Width: 4, Height: 2, BytesPerPixel: 4}
	buf.Pix = make([]byte, 4*2*4)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			i := (y*4 + x) * 4
			buf.Pix[i+0] = byte(x * 40)
			buf.Pix[i+1] = byte(y * 40)
			buf.Pix[i+2] = 200
			buf.Pix[i+3] = 0xff
		}
	}
	return buf
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"png", "png", false},
		{"", "png", false},
		{"jpg", "jpeg", false},
		{"JPEG", "jpeg", false},
		{"bmp", "bmp", false},
		{"pdf", "pdf", false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		enc, err := ForFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ForFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ForFormat(%q): %v", tt.in, err)
			continue
		}
		if enc.Name() != tt.want {
			t.Errorf("ForFormat(%q) = %s, want %s", tt.in, enc.Name(), tt.want)
		}
	}
}

func TestForPath(t *testing.T) {
	if enc := ForPath("shot.jpeg"); enc.Name() != "jpeg" {
		t.Errorf("ForPath(shot.jpeg) = %s", enc.Name())
	}
	if enc := ForPath("shot"); enc.Name() != "png" {
		t.Errorf("ForPath without extension = %s, want png fallback", enc.Name())
	}
}

func TestPNGRoundTrip(t *testing.T) {
	var out bytes.Buffer
	if err := (PNGEncoder{}).Encode(&out, testBuffer()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("decoded %dx%d, want 4x2", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(2, 1).RGBA()
	if r>>8 != 80 || g>>8 != 40 || b>>8 != 200 {
		t.Errorf("pixel (2,1) = %d,%d,%d, want 80,40,200", r>>8, g>>8, b>>8)
	}
}

func TestEncodersProduceOutput(t *testing.T) {
	encoders := []Encoder{
		JPEGEncoder{},
		BMPEncoder{},
		PDFEncoder{},
	}
	for _, enc := range encoders {
		t.Run(enc.Name(), func(t *testing.T) {
			var out bytes.Buffer
			if err := enc.Encode(&out, testBuffer()); err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if out.Len() == 0 {
				t.Error("empty output")
			}
		})
	}
}
