//go:build windows

package window

import "testing"

// Callback slots are a finite process-wide resource (the runtime caps them
// around 2000). Long-lived pollers enumerate once per tick, so repeated
// enumeration far past that cap must not allocate new callbacks.
func TestListWindowsRepeated(t *testing.T) {
	b, err := NewBackend()
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	for i := 0; i < 2100; i++ {
		if _, err := b.ListWindows(); err != nil {
			t.Fatalf("enumeration %d: %v", i, err)
		}
	}
}

func TestListWindowsSkipsUntitled(t *testing.T) {
	b, err := NewBackend()
	if err != nil {
		t.Fatalf("NewBackend: %v", err)
	}
	infos, err := b.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	for _, info := range infos {
		if info.Title == "" {
			t.Errorf("untitled window %#x in result", uintptr(info.Handle))
		}
		if info.Handle == 0 {
			t.Error("zero handle in result")
		}
	}
}
