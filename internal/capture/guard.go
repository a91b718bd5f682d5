package capture

import "fmt"

// Scoped owners for GDI resources. Each guard owns exactly one handle,
// releases it exactly once, and is not meant to be copied. Guards are
// released with defer so every exit path of a capture call, error paths
// included, gives the handle back in reverse acquisition order.

// windowSurface owns a surface acquired from a live window or the screen.
type windowSurface struct {
	a        Adapter
	hwnd     WindowHandle
	s        Surface
	released bool
}

func acquireWindowSurface(a Adapter, hwnd WindowHandle) (*windowSurface, error) {
	s, err := a.AcquireSurface(hwnd)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire surface for window %#x: %v", ErrResourceAcquisitionFailed, uintptr(hwnd), err)
	}
	return &windowSurface{a: a, hwnd: hwnd, s: s}, nil
}

func (g *windowSurface) Surface() Surface { return g.s }

func (g *windowSurface) Release() {
	if g.released {
		return
	}
	g.released = true
	g.a.ReleaseSurface(g.hwnd, g.s)
}

// memorySurface owns an offscreen compatible surface.
type memorySurface struct {
	a        Adapter
	s        Surface
	released bool
}

func createMemorySurface(a Adapter, src Surface) (*memorySurface, error) {
	s, err := a.CreateCompatibleSurface(src)
	if err != nil {
		return nil, fmt.Errorf("%w: create compatible surface: %v", ErrResourceAcquisitionFailed, err)
	}
	return &memorySurface{a: a, s: s}, nil
}

func (g *memorySurface) Surface() Surface { return g.s }

func (g *memorySurface) Release() {
	if g.released {
		return
	}
	g.released = true
	g.a.DeleteSurface(g.s)
}

// bitmapGuard owns an offscreen bitmap. The bitmap must be deselected from
// any surface before Release.
type bitmapGuard struct {
	a        Adapter
	b        Bitmap
	released bool
}

func createBitmap(a Adapter, src Surface, width, height int) (*bitmapGuard, error) {
	b, err := a.CreateCompatibleBitmap(src, width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: create %dx%d bitmap: %v", ErrResourceAcquisitionFailed, width, height, err)
	}
	return &bitmapGuard{a: a, b: b}, nil
}

func (g *bitmapGuard) Bitmap() Bitmap { return g.b }

func (g *bitmapGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.a.DeleteBitmap(g.b)
}

// selection owns the binding of a bitmap to a memory surface; Release
// restores the surface's previous bitmap.
type selection struct {
	a        Adapter
	s        Surface
	prev     Bitmap
	released bool
}

func selectBitmap(a Adapter, s Surface, b Bitmap) (*selection, error) {
	prev, err := a.SelectBitmap(s, b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSelectionFailed, err)
	}
	return &selection{a: a, s: s, prev: prev}, nil
}

func (g *selection) Release() {
	if g.released {
		return
	}
	g.released = true
	g.a.SelectBitmap(g.s, g.prev) // restore previous selection on teardown
}

// renderTarget bundles the offscreen surface, bitmap and selection a capture
// renders into. Release order is the inverse of acquisition: the selection is
// undone first, then the bitmap and surface are destroyed.
type renderTarget struct {
	mem *memorySurface
	bmp *bitmapGuard
	sel *selection
}

func newRenderTarget(a Adapter, src Surface, width, height int) (*renderTarget, error) {
	mem, err := createMemorySurface(a, src)
	if err != nil {
		return nil, err
	}
	bmp, err := createBitmap(a, src, width, height)
	if err != nil {
		mem.Release()
		return nil, err
	}
	sel, err := selectBitmap(a, mem.Surface(), bmp.Bitmap())
	if err != nil {
		bmp.Release()
		mem.Release()
		return nil, err
	}
	return &renderTarget{mem: mem, bmp: bmp, sel: sel}, nil
}

func (t *renderTarget) Surface() Surface { return t.mem.Surface() }
func (t *renderTarget) Bitmap() Bitmap   { return t.bmp.Bitmap() }

func (t *renderTarget) Release() {
	t.sel.Release()
	t.bmp.Release()
	t.mem.Release()
}
