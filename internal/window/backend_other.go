//go:build !windows

package window

// NewBackend reports that native window discovery is unavailable.
func NewBackend() (Backend, error) {
	return nil, ErrUnsupported
}
