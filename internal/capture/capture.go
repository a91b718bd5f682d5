// Package capture produces raw pixel buffers from windows or the whole
// virtual display by driving the platform graphics subsystem through a
// scoped-ownership pipeline: resolve geometry, acquire surfaces and an
// offscreen bitmap, render with the selected strategy, read the pixels back,
// release everything in reverse order.
//
// Calls are synchronous and self-contained; no timeouts are imposed. A
// render request against a window with an unresponsive message loop can
// block until that window responds, so callers needing bounded latency must
// impose their own cancellation.
package capture

import (
	"fmt"
	"sync"

	"github.com/winshot/winshot/internal/logger"
)

// Capturer orchestrates the capture pipeline over a platform adapter.
// Safe for concurrent use: each call owns its resources exclusively and the
// only shared state is the idempotent DPI-awareness initialization.
type Capturer struct {
	a       Adapter
	dpiOnce sync.Once
}

// New creates a Capturer over the given adapter.
func New(a Adapter) *Capturer {
	return &Capturer{a: a}
}

// initDPI opts the process into DPI awareness so geometry comes back in
// physical pixels on scaled displays. Best effort: failure only costs
// accuracy, never the capture.
func (c *Capturer) initDPI() {
	c.dpiOnce.Do(func() {
		if err := c.a.InitDPIAwareness(); err != nil {
			logger.WithComponent("capture").Debug().Err(err).Msg("DPI awareness unavailable")
		}
	})
}

// CaptureDisplay captures the entire virtual display, the bounding box of
// all attached monitors, at 32 bits per pixel.
func (c *Capturer) CaptureDisplay() (*PixelBuffer, error) {
	c.initDPI()

	rect, err := resolveDisplayRect(c.a)
	if err != nil {
		return nil, err
	}
	w, h := rect.Width(), rect.Height()
	logger.WithComponent("capture").Debug().Stringer("rect", rect).Msg("capturing virtual display")

	src, err := acquireWindowSurface(c.a, 0)
	if err != nil {
		return nil, err
	}
	defer src.Release()

	target, err := newRenderTarget(c.a, src.Surface(), w, h)
	if err != nil {
		return nil, err
	}
	defer target.Release()

	if err := c.a.StretchCopy(target.Surface(), 0, 0, w, h, src.Surface(), int(rect.Left), int(rect.Top), w, h); err != nil {
		return nil, fmt.Errorf("%w: stretch copy of virtual display: %v", ErrRenderFailed, err)
	}

	return extract(c.a, target, w, h, DefaultDepth)
}

// CaptureWindow captures one window. The method/area combination is
// validated up front: a block copy can only address the client area.
// On any failure every resource acquired so far is released before the
// error is returned; a partial buffer is never handed out.
func (c *Capturer) CaptureWindow(hwnd WindowHandle, opts Options) (*PixelBuffer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	c.initDPI()

	rect, err := resolveWindowRect(c.a, hwnd, opts.Area)
	if err != nil {
		return nil, err
	}
	if opts.Crop != nil && !opts.Crop.within(rect) {
		return nil, fmt.Errorf("%w: crop %dx%d@(%d,%d) exceeds %s source",
			ErrInvalidCaptureCombination, opts.Crop.Width, opts.Crop.Height, opts.Crop.X, opts.Crop.Y, rect)
	}

	outW, outH := rect.Width(), rect.Height()
	if opts.Crop != nil {
		outW, outH = opts.Crop.Width, opts.Crop.Height
	}
	logger.WithComponent("capture").Debug().
		Stringer("rect", rect).
		Stringer("method", opts.Method).
		Stringer("area", opts.Area).
		Int("width", outW).
		Int("height", outH).
		Msg("capturing window")

	src, err := acquireWindowSurface(c.a, hwnd)
	if err != nil {
		return nil, err
	}
	defer src.Release()

	var target *renderTarget
	switch opts.Method {
	case MethodBlockCopy:
		// Single pass: the crop origin, if any, is the copy offset.
		target, err = newRenderTarget(c.a, src.Surface(), outW, outH)
		if err != nil {
			return nil, err
		}
		defer target.Release()
		if err := blockCopyRender(c.a, target.Surface(), src.Surface(), opts.Crop, outW, outH); err != nil {
			return nil, err
		}

	default: // MethodRenderRequest
		// The window can only paint all of itself, so render the full
		// rectangle first and carve the crop out in a second pass.
		full, err := newRenderTarget(c.a, src.Surface(), rect.Width(), rect.Height())
		if err != nil {
			return nil, err
		}
		defer full.Release()
		if err := renderRequest(c.a, hwnd, full.Surface(), opts.Area); err != nil {
			return nil, err
		}
		target = full
		if opts.Crop != nil {
			cropped, err := newRenderTarget(c.a, src.Surface(), outW, outH)
			if err != nil {
				return nil, err
			}
			defer cropped.Release()
			if err := cropPass(c.a, cropped.Surface(), full.Surface(), opts.Crop); err != nil {
				return nil, err
			}
			target = cropped
		}
	}

	return extract(c.a, target, outW, outH, opts.depth())
}
