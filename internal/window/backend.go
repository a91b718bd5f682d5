package window

import "errors"

// Handle is an opaque platform window identifier (HWND on Windows).
type Handle uintptr

// Info describes one visible top-level window.
type Info struct {
	Handle Handle `json:"handle"`
	Title  string `json:"title"`
}

var (
	// ErrWindowNotFound is returned when no window matches a title or
	// pattern lookup.
	ErrWindowNotFound = errors.New("window not found")

	// ErrUnsupported is returned by NewBackend on platforms without a
	// native window system binding.
	ErrUnsupported = errors.New("window enumeration not supported on this platform")
)

// Backend defines the interface for window discovery backends.
type Backend interface {
	// ListWindows returns all visible top-level windows that carry a
	// non-empty title.
	ListWindows() ([]Info, error)

	// FindWindow returns the handle of the window with exactly the given
	// title, or ErrWindowNotFound.
	FindWindow(title string) (Handle, error)
}
