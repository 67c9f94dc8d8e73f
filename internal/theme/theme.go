// Package theme persists the selected colour theme and applies it to a root
// that carries one theme-<name> class.
package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Theme is a named colour scheme.
type Theme string

const (
	Light     Theme = "light"
	Dark      Theme = "dark"
	Christmas Theme = "christmas"
	NewYear   Theme = "new-year"
)

// Default is used when nothing valid is persisted.
const Default = Light

// All lists every theme in menu order.
var All = []Theme{Light, Dark, Christmas, NewYear}

// ErrUnknownTheme is returned by Set and Parse for names outside All.
var ErrUnknownTheme = errors.New("unknown theme")

// Valid reports whether t is one of All.
func (t Theme) Valid() bool {
	for _, v := range All {
		if t == v {
			return true
		}
	}
	return false
}

// Class is the root class name for t.
func (t Theme) Class() string {
	return "theme-" + string(t)
}

// Parse converts user input to a Theme.
func Parse(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
	return t, nil
}

// Root is anything that carries theme classes.
type Root interface {
	AddClass(name string)
	RemoveClass(name string)
}

// Apply leaves root carrying exactly one theme class, t's.
func Apply(root Root, t Theme) {
	for _, other := range All {
		if other != t {
			root.RemoveClass(other.Class())
		}
	}
	root.AddClass(t.Class())
}

// Manager owns the persisted theme and re-applies it to roots on change.
// Safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	path    string
	current Theme
	roots   []Root
}

// Load reads the theme file at path. A missing file or unknown value yields Default.
func Load(path string) (*Manager, error) {
	m := &Manager{path: path, current: Default}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m, nil
		}
		return nil, fmt.Errorf("theme.Load: %w", err)
	}
	if t := Theme(strings.TrimSpace(string(data))); t.Valid() {
		m.current = t
	}
	return m, nil
}

// Current returns the active theme.
func (m *Manager) Current() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Attach registers root and applies the current theme to it.
func (m *Manager) Attach(root Root) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roots = append(m.roots, root)
	Apply(root, m.current)
}

// Set persists t and applies it to every attached root.
func (m *Manager) Set(t Theme) error {
	if !t.Valid() {
		return fmt.Errorf("theme.Set: %w: %q", ErrUnknownTheme, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("theme.Set: %w", err)
	}
	if err := os.WriteFile(m.path, []byte(string(t)+"\n"), 0o600); err != nil {
		return fmt.Errorf("theme.Set: %w", err)
	}
	m.current = t
	for _, r := range m.roots {
		Apply(r, t)
	}
	return nil
}

// Next returns the theme after t in All, wrapping around.
func Next(t Theme) Theme {
	for i, v := range All {
		if v == t {
			return All[(i+1)%len(All)]
		}
	}
	return Default
}
