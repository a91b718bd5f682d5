//go:build !windows

package capture

// NewPlatformAdapter reports that GDI capture is unavailable. The pipeline
// itself is platform-neutral and remains testable through a fake adapter.
func NewPlatformAdapter() (Adapter, error) {
	return nil, ErrPlatformUnsupported
}
