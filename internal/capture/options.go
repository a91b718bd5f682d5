package capture

import "fmt"

// Area selects which part of a window is captured.
type Area int

const (
	// AreaFull captures the outer frame, title bar and borders included.
	AreaFull Area = iota
	// AreaClient captures the content region only.
	AreaClient
)

func (a Area) String() string {
	if a == AreaClient {
		return "client"
	}
	return "full"
}

// ParseArea parses a CLI/config area name.
func ParseArea(s string) (Area, error) {
	switch s {
	case "full", "":
		return AreaFull, nil
	case "client":
		return AreaClient, nil
	}
	return 0, fmt.Errorf("unknown capture area %q", s)
}

// Method selects the rendering strategy for window capture.
type Method int

const (
	// MethodRenderRequest asks the window to paint itself into the target
	// (PrintWindow). Works for occluded windows; fails for protected ones.
	MethodRenderRequest Method = iota
	// MethodBlockCopy copies pixels directly off the live surface
	// (BitBlt). Only valid for the client area, and only captures what is
	// currently visible on screen.
	MethodBlockCopy
)

func (m Method) String() string {
	if m == MethodBlockCopy {
		return "bitblt"
	}
	return "printwindow"
}

// ParseMethod parses a CLI/config method name.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "printwindow", "":
		return MethodRenderRequest, nil
	case "bitblt":
		return MethodBlockCopy, nil
	}
	return 0, fmt.Errorf("unknown capture method %q", s)
}

// DefaultDepth is the bytes-per-pixel used when Options.Depth is zero.
const DefaultDepth = 4

// Options configures a single window capture. The zero value requests a
// full-frame PrintWindow capture at 32 bits per pixel.
type Options struct {
	Method Method
	Area   Area
	// Crop restricts the result to a sub-region of the resolved
	// rectangle. Nil captures the whole rectangle.
	Crop *Crop
	// Depth is the output bytes per pixel, 3 (packed RGB) or 4 (RGB plus
	// an untouched pad byte). Zero means DefaultDepth.
	Depth int
}

func (o Options) depth() int {
	if o.Depth == 0 {
		return DefaultDepth
	}
	return o.Depth
}

func (o Options) validate() error {
	if o.Method == MethodBlockCopy && o.Area == AreaFull {
		return fmt.Errorf("%w: bitblt cannot address non-client chrome, use area=client or method=printwindow",
			ErrInvalidCaptureCombination)
	}
	if d := o.depth(); d != 3 && d != 4 {
		return fmt.Errorf("%w: depth must be 3 or 4 bytes per pixel, got %d", ErrInvalidCaptureCombination, d)
	}
	return nil
}
