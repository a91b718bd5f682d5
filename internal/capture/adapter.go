package capture

// WindowHandle is an opaque platform window identifier (HWND on Windows).
// The zero handle addresses the whole screen. Validity beyond non-zero is
// the OS's concern; a window closed mid-capture surfaces as a typed error.
type WindowHandle uintptr

// Surface is an opaque drawing surface handle (HDC on Windows), bound either
// to a live window/screen or to an offscreen compatible context.
type Surface uintptr

// Bitmap is an opaque offscreen bitmap handle (HBITMAP on Windows).
type Bitmap uintptr

// RenderFlags select what a window is asked to paint of itself.
type RenderFlags uint32

const (
	// RenderClientOnly asks the window to paint its client area only.
	RenderClientOnly RenderFlags = 0x1
	// RenderFullContent asks for the full window content, including parts
	// composited offscreen (DWM). Works for occluded windows.
	RenderFullContent RenderFlags = 0x2
)

// Adapter abstracts the platform graphics subsystem behind the capture
// pipeline. The Windows implementation drives GDI; tests substitute an
// in-memory fake so the pipeline runs without a display attached.
//
// Resource ownership is the caller's: every non-error AcquireSurface,
// CreateCompatibleSurface, CreateCompatibleBitmap and SelectBitmap must be
// paired with exactly one matching release call.
type Adapter interface {
	// InitDPIAwareness opts the process into DPI awareness so geometry
	// queries report physical pixels on scaled displays. Idempotent;
	// callers treat failure as non-fatal.
	InitDPIAwareness() error

	// WindowRect returns the window's outer frame, including non-client
	// chrome, in virtual-screen coordinates.
	WindowRect(hwnd WindowHandle) (Rect, error)

	// ClientRect returns the window's content-only region. Its origin is
	// always (0,0); only the extent is meaningful.
	ClientRect(hwnd WindowHandle) (Rect, error)

	// VirtualDisplayRect returns the bounding box of all attached
	// displays, origin included.
	VirtualDisplayRect() (Rect, error)

	// AcquireSurface obtains the drawing surface of a window, or of the
	// whole screen for the zero handle. Release with ReleaseSurface.
	AcquireSurface(hwnd WindowHandle) (Surface, error)
	ReleaseSurface(hwnd WindowHandle, s Surface)

	// CreateCompatibleSurface creates an offscreen surface compatible
	// with src. Release with DeleteSurface.
	CreateCompatibleSurface(src Surface) (Surface, error)
	DeleteSurface(s Surface)

	// CreateCompatibleBitmap creates a renderable offscreen bitmap
	// compatible with src. Release with DeleteBitmap.
	CreateCompatibleBitmap(src Surface, width, height int) (Bitmap, error)
	DeleteBitmap(b Bitmap)

	// SelectBitmap binds b as the render target of s and returns the
	// previously selected bitmap, which must be restored before s is
	// destroyed.
	SelectBitmap(s Surface, b Bitmap) (Bitmap, error)

	// BlockCopy copies a w×h block of pixels from src at (sx,sy) to dst
	// at (dx,dy) in a single pass.
	BlockCopy(dst Surface, dx, dy, w, h int, src Surface, sx, sy int) error

	// StretchCopy copies a sw×sh source block into a dw×dh destination
	// block, scaling if the extents differ.
	StretchCopy(dst Surface, dx, dy, dw, dh int, src Surface, sx, sy, sw, sh int) error

	// RenderWindow asks the window to paint itself into dst. Unlike
	// BlockCopy this works for occluded windows, but may block for as
	// long as the target's message loop takes to respond.
	RenderWindow(hwnd WindowHandle, dst Surface, flags RenderFlags) error

	// ReadPixels copies the bitmap selected into s out as an uncompressed
	// top-down DIB at the given depth (bytes per pixel, 3 or 4). Rows in
	// out are padded to the platform's 4-byte scanline alignment; len(out)
	// must be DIBStride(width, bpp)*height. Returns the number of
	// scanlines transferred.
	ReadPixels(s Surface, b Bitmap, width, height, bpp int, out []byte) (int, error)
}

// DIBStride returns the padded byte width of one DIB scanline. GDI aligns
// scanlines to 4-byte boundaries, so 24-bit rows usually carry pad bytes.
func DIBStride(width, bpp int) int {
	return (width*bpp + 3) &^ 3
}
