package capture

import "errors"

// Capture failures are reported as one of these sentinel kinds, wrapped with
// call-site detail. Check with errors.Is.
var (
	// ErrResourceAcquisitionFailed indicates a device context or bitmap
	// could not be created.
	ErrResourceAcquisitionFailed = errors.New("resource acquisition failed")

	// ErrRectUnavailable indicates a geometry query failed or returned a
	// zero-size rectangle.
	ErrRectUnavailable = errors.New("window rect unavailable")

	// ErrSelectionFailed indicates a bitmap could not be selected into a
	// memory device context.
	ErrSelectionFailed = errors.New("bitmap selection failed")

	// ErrRenderFailed indicates BitBlt, StretchBlt or PrintWindow reported
	// failure. Protected and access-restricted windows surface here.
	ErrRenderFailed = errors.New("render failed")

	// ErrReadbackFailed indicates GetDIBits transferred zero scanlines or
	// rejected its parameters.
	ErrReadbackFailed = errors.New("pixel readback failed")

	// ErrInvalidCaptureCombination indicates the requested method, area,
	// crop and depth do not form a valid capture. BitBlt cannot address
	// non-client chrome, so MethodBlockCopy with AreaFull is rejected
	// rather than silently reinterpreted.
	ErrInvalidCaptureCombination = errors.New("invalid capture combination")

	// ErrPlatformUnsupported is returned by NewPlatformAdapter on systems
	// without a GDI graphics subsystem.
	ErrPlatformUnsupported = errors.New("capture not supported on this platform")
)
