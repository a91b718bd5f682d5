//go:build windows

package capture

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

var (
	user32 = syscall.NewLazyDLL("user32.dll")
	shcore = syscall.NewLazyDLL("shcore.dll")

	// Not wrapped by lxn/win.
	procPrintWindow            = user32.NewProc("PrintWindow")
	procSetProcessDPIAware     = user32.NewProc("SetProcessDPIAware")
	procSetProcessDpiAwareness = shcore.NewProc("SetProcessDpiAwareness")
)

const (
	processPerMonitorDPIAware = 2

	// GetDIBits reports this instead of a scanline count when the
	// descriptor is rejected.
	errorInvalidParameter = 87
)

// dpiOnce guards the process-wide awareness flag across all adapter
// instances. Setting it twice is harmless but pointless.
var dpiOnce sync.Once

// gdiAdapter implements Adapter on top of Win32 GDI.
type gdiAdapter struct{}

// NewPlatformAdapter returns the GDI adapter.
func NewPlatformAdapter() (Adapter, error) {
	return gdiAdapter{}, nil
}

func (gdiAdapter) InitDPIAwareness() error {
	var err error
	dpiOnce.Do(func() {
		// Per-monitor awareness via shcore where available (Win 8.1+),
		// otherwise the legacy system-wide flag.
		if procSetProcessDpiAwareness.Find() == nil {
			r, _, _ := procSetProcessDpiAwareness.Call(uintptr(processPerMonitorDPIAware))
			if r == 0 { // S_OK
				return
			}
		}
		r, _, _ := procSetProcessDPIAware.Call()
		if r == 0 {
			err = errors.New("SetProcessDPIAware failed")
		}
	})
	return err
}

func (gdiAdapter) WindowRect(hwnd WindowHandle) (Rect, error) {
	var r win.RECT
	if !win.GetWindowRect(win.HWND(hwnd), &r) {
		return Rect{}, errors.New("GetWindowRect failed")
	}
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, nil
}

func (gdiAdapter) ClientRect(hwnd WindowHandle) (Rect, error) {
	var r win.RECT
	if !win.GetClientRect(win.HWND(hwnd), &r) {
		return Rect{}, errors.New("GetClientRect failed")
	}
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, nil
}

func (gdiAdapter) VirtualDisplayRect() (Rect, error) {
	x := win.GetSystemMetrics(win.SM_XVIRTUALSCREEN)
	y := win.GetSystemMetrics(win.SM_YVIRTUALSCREEN)
	w := win.GetSystemMetrics(win.SM_CXVIRTUALSCREEN)
	h := win.GetSystemMetrics(win.SM_CYVIRTUALSCREEN)
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}, nil
}

func (gdiAdapter) AcquireSurface(hwnd WindowHandle) (Surface, error) {
	hdc := win.GetDC(win.HWND(hwnd))
	if hdc == 0 {
		return 0, errors.New("GetDC returned null")
	}
	return Surface(hdc), nil
}

func (gdiAdapter) ReleaseSurface(hwnd WindowHandle, s Surface) {
	win.ReleaseDC(win.HWND(hwnd), win.HDC(s))
}

func (gdiAdapter) CreateCompatibleSurface(src Surface) (Surface, error) {
	hdc := win.CreateCompatibleDC(win.HDC(src))
	if hdc == 0 {
		return 0, errors.New("CreateCompatibleDC returned null")
	}
	return Surface(hdc), nil
}

func (gdiAdapter) DeleteSurface(s Surface) {
	win.DeleteDC(win.HDC(s))
}

func (gdiAdapter) CreateCompatibleBitmap(src Surface, width, height int) (Bitmap, error) {
	hbmp := win.CreateCompatibleBitmap(win.HDC(src), int32(width), int32(height))
	if hbmp == 0 {
		return 0, errors.New("CreateCompatibleBitmap returned null")
	}
	return Bitmap(hbmp), nil
}

func (gdiAdapter) DeleteBitmap(b Bitmap) {
	win.DeleteObject(win.HGDIOBJ(b))
}

func (gdiAdapter) SelectBitmap(s Surface, b Bitmap) (Bitmap, error) {
	prev := win.SelectObject(win.HDC(s), win.HGDIOBJ(b))
	if prev == 0 {
		return 0, errors.New("SelectObject failed")
	}
	return Bitmap(prev), nil
}

func (gdiAdapter) BlockCopy(dst Surface, dx, dy, w, h int, src Surface, sx, sy int) error {
	if !win.BitBlt(win.HDC(dst), int32(dx), int32(dy), int32(w), int32(h),
		win.HDC(src), int32(sx), int32(sy), win.SRCCOPY) {
		return errors.New("BitBlt returned zero")
	}
	return nil
}

func (gdiAdapter) StretchCopy(dst Surface, dx, dy, dw, dh int, src Surface, sx, sy, sw, sh int) error {
	if !win.StretchBlt(win.HDC(dst), int32(dx), int32(dy), int32(dw), int32(dh),
		win.HDC(src), int32(sx), int32(sy), int32(sw), int32(sh), win.SRCCOPY) {
		return errors.New("StretchBlt returned zero")
	}
	return nil
}

func (gdiAdapter) RenderWindow(hwnd WindowHandle, dst Surface, flags RenderFlags) error {
	r, _, _ := procPrintWindow.Call(uintptr(hwnd), uintptr(dst), uintptr(flags))
	if r == 0 {
		return errors.New("PrintWindow returned zero")
	}
	return nil
}

func (gdiAdapter) ReadPixels(s Surface, b Bitmap, width, height, bpp int, out []byte) (int, error) {
	bmi := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(width),
			BiHeight:      -int32(height), // negative: top-down rows, no flip pass
			BiPlanes:      1,
			BiBitCount:    uint16(bpp * 8),
			BiCompression: win.BI_RGB,
		},
	}
	// GetDIBits balks at writing into Go-managed memory on some systems;
	// read into a GlobalAlloc buffer and copy out.
	hMem := win.GlobalAlloc(win.GMEM_MOVEABLE, uintptr(len(out)))
	if hMem == 0 {
		return 0, errors.New("GlobalAlloc failed")
	}
	defer win.GlobalFree(hMem)
	p := win.GlobalLock(hMem)
	if p == nil {
		return 0, errors.New("GlobalLock failed")
	}
	defer win.GlobalUnlock(hMem)

	ret := win.GetDIBits(win.HDC(s), win.HBITMAP(b), 0, uint32(height), (*byte)(p), &bmi, win.DIB_RGB_COLORS)
	if ret == errorInvalidParameter {
		return 0, fmt.Errorf("GetDIBits rejected parameters (%d)", ret)
	}
	copy(out, unsafe.Slice((*byte)(p), len(out)))
	return int(ret), nil
}
