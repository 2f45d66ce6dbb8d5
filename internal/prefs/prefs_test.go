package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSidebarDefaultsOpen(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "prefs.json"))
	if !s.SidebarOpen() {
		t.Error("missing preferences file should default to open")
	}
}

func TestSidebarRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	s := NewStore(path)

	if err := s.SetSidebarOpen(false); err != nil {
		t.Fatalf("SetSidebarOpen failed: %v", err)
	}
	if s.SidebarOpen() {
		t.Error("expected sidebar closed after toggle")
	}

	if err := s.SetSidebarOpen(true); err != nil {
		t.Fatalf("SetSidebarOpen failed: %v", err)
	}
	if !s.SidebarOpen() {
		t.Error("expected sidebar open after second toggle")
	}
}

func TestCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !NewStore(path).SidebarOpen() {
		t.Error("corrupt preferences should default to open")
	}
}
