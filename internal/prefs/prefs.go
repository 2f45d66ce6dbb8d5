// Package prefs stores local UI preferences. There is exactly one today:
// whether the dashboard sidebar starts open. Missing or unreadable state
// silently falls back to the defaults; nothing here is ever fatal.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type prefsFile struct {
	SidebarOpen *bool `json:"sidebar_open,omitempty"`
}

// Store reads and writes one preferences file.
type Store struct {
	path string
}

// NewStore creates a Store at the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore creates a Store at ~/.litscout/prefs.json.
func NewDefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".litscout", "prefs.json")), nil
}

// SidebarOpen reports whether the sidebar should start open. Absent or
// unreadable state defaults to true.
func (s *Store) SidebarOpen() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return true
	}
	var prefs prefsFile
	if err := json.Unmarshal(data, &prefs); err != nil || prefs.SidebarOpen == nil {
		return true
	}
	return *prefs.SidebarOpen
}

// SetSidebarOpen persists the flag. Called on every toggle.
func (s *Store) SetSidebarOpen(open bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}
	data, err := json.MarshalIndent(prefsFile{SidebarOpen: &open}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preferences: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing preferences: %w", err)
	}
	return nil
}
