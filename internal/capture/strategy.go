package capture

import "fmt"

// The two rendering strategies. Both draw into an already-selected render
// target; the facade decides target sizing and the crop mechanics, which
// differ between them: a block copy folds the crop into its single pass,
// while a render request cannot ask the window for a sub-rectangle and so
// needs a second copy pass afterwards.

// blockCopyRender copies w×h client-area pixels straight off the live
// surface. With a crop, the crop origin becomes the source offset.
func blockCopyRender(a Adapter, dst, src Surface, crop *Crop, w, h int) error {
	sx, sy := 0, 0
	if crop != nil {
		sx, sy = crop.X, crop.Y
	}
	if err := a.BlockCopy(dst, 0, 0, w, h, src, sx, sy); err != nil {
		return fmt.Errorf("%w: bitblt %dx%d from (%d,%d): %v", ErrRenderFailed, w, h, sx, sy, err)
	}
	return nil
}

// renderRequest asks the window to paint itself into dst. Protected and
// access-restricted windows refuse and surface as ErrRenderFailed.
func renderRequest(a Adapter, hwnd WindowHandle, dst Surface, area Area) error {
	flags := RenderFullContent
	if area == AreaClient {
		flags |= RenderClientOnly
	}
	if err := a.RenderWindow(hwnd, dst, flags); err != nil {
		return fmt.Errorf("%w: print window %#x (%s): %v", ErrRenderFailed, uintptr(hwnd), area, err)
	}
	return nil
}

// cropPass extracts the crop region out of a full render into a second,
// crop-sized target.
func cropPass(a Adapter, dst Surface, src Surface, crop *Crop) error {
	if err := a.BlockCopy(dst, 0, 0, crop.Width, crop.Height, src, crop.X, crop.Y); err != nil {
		return fmt.Errorf("%w: crop pass %dx%d from (%d,%d): %v",
			ErrRenderFailed, crop.Width, crop.Height, crop.X, crop.Y, err)
	}
	return nil
}
