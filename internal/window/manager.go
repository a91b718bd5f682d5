// Package window discovers visible top-level windows and resolves titles to
// capture handles. It is a collaborator of the capture pipeline, which
// accepts handles only and never resolves titles itself.
package window

import (
	"fmt"
	"regexp"
	"sort"
)

// Manager wraps a discovery backend with the lookups the CLI and API need.
type Manager struct {
	backend Backend
}

// NewManager creates a Manager over the platform backend.
func NewManager() (*Manager, error) {
	b, err := NewBackend()
	if err != nil {
		return nil, err
	}
	return &Manager{backend: b}, nil
}

// NewManagerWith creates a Manager over a specific backend.
func NewManagerWith(b Backend) *Manager {
	return &Manager{backend: b}
}

// List returns all visible titled windows, sorted by title.
func (m *Manager) List() ([]Info, error) {
	infos, err := m.backend.ListWindows()
	if err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Title < infos[j].Title })
	return infos, nil
}

// Find resolves an exact title to a handle.
func (m *Manager) Find(title string) (Handle, error) {
	return m.backend.FindWindow(title)
}

// Match returns the first window whose title matches the regular expression,
// in enumeration order.
func (m *Manager) Match(pattern string) (Info, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Info{}, fmt.Errorf("window pattern %q: %w", pattern, err)
	}
	infos, err := m.backend.ListWindows()
	if err != nil {
		return Info{}, err
	}
	for _, info := range infos {
		if re.MatchString(info.Title) {
			return info, nil
		}
	}
	return Info{}, fmt.Errorf("%w: no title matches %q", ErrWindowNotFound, pattern)
}
