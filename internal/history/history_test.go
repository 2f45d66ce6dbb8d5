package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/litscout/litscout/internal/config"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := testStore(t)

	id, err := s.Record(Search{
		Project:      "kidney",
		Source:       config.SourcePubMed,
		Terms:        []string{"dialysis", "outcomes"},
		Operators:    []string{"AND"},
		MaxPDFs:      20,
		SuccessCount: 18,
		ErrorCount:   2,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if id == "" {
		t.Fatal("Record returned an empty id")
	}

	searches, err := s.List("", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(searches) != 1 {
		t.Fatalf("expected 1 search, got %d", len(searches))
	}
	got := searches[0]
	if got.ID != id || got.Project != "kidney" || got.Source != config.SourcePubMed {
		t.Errorf("search = %+v", got)
	}
	if len(got.Terms) != 2 || got.Terms[0] != "dialysis" {
		t.Errorf("terms = %v", got.Terms)
	}
	if len(got.Operators) != 1 || got.Operators[0] != "AND" {
		t.Errorf("operators = %v", got.Operators)
	}
	if got.SuccessCount != 18 || got.ErrorCount != 2 {
		t.Errorf("counts = %d/%d", got.SuccessCount, got.ErrorCount)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	s := testStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, project := range []string{"kidney", "liver", "kidney"} {
		_, err := s.Record(Search{
			Project:   project,
			Source:    config.SourceScholar,
			Terms:     []string{"term"},
			MaxPDFs:   5,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	kidney, err := s.List("kidney", 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(kidney) != 2 {
		t.Fatalf("expected 2 kidney searches, got %d", len(kidney))
	}
	if !kidney[0].CreatedAt.After(kidney[1].CreatedAt) {
		t.Error("searches not ordered newest first")
	}

	limited, err := s.List("", 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 || limited[0].Project != "kidney" {
		t.Errorf("limited list = %v", limited)
	}
}

func TestDelete(t *testing.T) {
	s := testStore(t)

	id, err := s.Record(Search{Project: "kidney", Source: config.SourceBoth, Terms: []string{"x"}, MaxPDFs: 1})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(id); err == nil {
		t.Error("deleting a missing search should fail")
	}

	searches, _ := s.List("", 0)
	if len(searches) != 0 {
		t.Errorf("expected empty store, got %v", searches)
	}
}

func TestClearScopedToProject(t *testing.T) {
	s := testStore(t)
	for _, project := range []string{"kidney", "liver"} {
		if _, err := s.Record(Search{Project: project, Source: config.SourcePubMed, Terms: []string{"x"}, MaxPDFs: 1}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	if err := s.Clear("kidney"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	remaining, _ := s.List("", 0)
	if len(remaining) != 1 || remaining[0].Project != "liver" {
		t.Errorf("remaining = %v", remaining)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer s.Close()

	if _, err := s.Record(Search{Project: "kidney", Source: config.SourcePubMed, Terms: []string{"x"}, MaxPDFs: 1}); err != nil {
		t.Fatalf("Record on file-backed store failed: %v", err)
	}
}
