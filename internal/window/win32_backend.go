//go:build windows

package window

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procEnumWindows          = user32.NewProc("EnumWindows")
	procFindWindowW          = user32.NewProc("FindWindowW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
)

// win32Backend discovers windows through user32.
type win32Backend struct{}

// NewBackend returns the Win32 window discovery backend.
func NewBackend() (Backend, error) {
	return win32Backend{}, nil
}

// enumCallback is created exactly once. Callbacks made with
// syscall.NewCallback are never released and the runtime caps them
// process-wide, so a per-call callback would exhaust the cap under
// repeated enumeration. The result slice travels through lparam.
var enumCallback = syscall.NewCallback(func(hwnd, lparam uintptr) uintptr {
	infos := (*[]Info)(unsafe.Pointer(lparam))
	if visible, _, _ := procIsWindowVisible.Call(hwnd); visible == 0 {
		return 1 // continue enumeration
	}
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return 1
	}
	buf := make([]uint16, length+1)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return 1
	}
	*infos = append(*infos, Info{Handle: Handle(hwnd), Title: windows.UTF16ToString(buf)})
	return 1
})

func (win32Backend) ListWindows() ([]Info, error) {
	var infos []Info
	if r, _, err := procEnumWindows.Call(enumCallback, uintptr(unsafe.Pointer(&infos))); r == 0 {
		return nil, fmt.Errorf("EnumWindows: %v", err)
	}
	return infos, nil
}

func (win32Backend) FindWindow(title string) (Handle, error) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, fmt.Errorf("window title %q: %w", title, err)
	}
	h, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(p)))
	if h == 0 {
		return 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}
	return Handle(h), nil
}
