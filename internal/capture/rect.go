package capture

import "fmt"

// Rect is a rectangle in virtual-screen coordinates, edges inclusive-exclusive
// in the GDI convention.
type Rect struct {
	Left   int32 `json:"left"`
	Top    int32 `json:"top"`
	Right  int32 `json:"right"`
	Bottom int32 `json:"bottom"`
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() int { return int(r.Right - r.Left) }

// Height returns the rectangle's vertical extent.
func (r Rect) Height() int { return int(r.Bottom - r.Top) }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.Width(), r.Height(), r.Left, r.Top)
}

// Crop selects a sub-region of the resolved source rectangle, origin relative
// to that rectangle's top-left corner. A nil crop captures the full rectangle.
type Crop struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// within reports whether the crop lies entirely inside an r-sized source.
func (c Crop) within(r Rect) bool {
	return c.X >= 0 && c.Y >= 0 && c.Width > 0 && c.Height > 0 &&
		c.X+c.Width <= r.Width() && c.Y+c.Height <= r.Height()
}

// resolveWindowRect queries the window geometry for the requested area. A
// failing or zero-size result is a resolution failure, never a valid rect.
func resolveWindowRect(a Adapter, hwnd WindowHandle, area Area) (Rect, error) {
	var (
		r   Rect
		err error
	)
	switch area {
	case AreaClient:
		r, err = a.ClientRect(hwnd)
	default:
		r, err = a.WindowRect(hwnd)
	}
	if err != nil {
		return Rect{}, fmt.Errorf("%w: %v", ErrRectUnavailable, err)
	}
	if r.Empty() {
		return Rect{}, fmt.Errorf("%w: zero-size %s rect for window %#x", ErrRectUnavailable, area, uintptr(hwnd))
	}
	return r, nil
}

// resolveDisplayRect queries the virtual-display bounding box.
func resolveDisplayRect(a Adapter) (Rect, error) {
	r, err := a.VirtualDisplayRect()
	if err != nil {
		return Rect{}, fmt.Errorf("%w: %v", ErrRectUnavailable, err)
	}
	if r.Empty() {
		return Rect{}, fmt.Errorf("%w: zero-size virtual display", ErrRectUnavailable)
	}
	return r, nil
}
