//go:build windows

package capture

import "testing"

// End-to-end readback through the real adapter, GlobalAlloc'd DIB transfer
// included. Needs an interactive session with a display.
func TestDisplayCaptureReadback(t *testing.T) {
	a, err := NewPlatformAdapter()
	if err != nil {
		t.Fatalf("NewPlatformAdapter: %v", err)
	}
	c := New(a)

	buf, err := c.CaptureDisplay()
	if err != nil {
		t.Skipf("no capturable display: %v", err)
	}

	if buf.Width == 0 || buf.Height == 0 {
		t.Fatalf("zero-size capture %dx%d", buf.Width, buf.Height)
	}
	if want := int(buf.Width) * int(buf.Height) * buf.BytesPerPixel; len(buf.Pix) != want {
		t.Errorf("len(Pix) = %d, want %d", len(buf.Pix), want)
	}
}
