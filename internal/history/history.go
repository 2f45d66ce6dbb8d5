// Package history records article searches in a local SQLite database so
// `litscout recent` can replay what was searched, when, and how it went.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/litscout/litscout/internal/config"
)

// Search is one recorded retrieval run.
type Search struct {
	ID           string
	Project      string
	Source       config.Source
	Terms        []string
	Operators    []string
	MaxPDFs      int
	SuccessCount int
	ErrorCount   int
	CreatedAt    time.Time
}

// Store persists searches at one database path.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory history store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// DefaultPath returns ~/.litscout/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".litscout", "history.db"), nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS searches (
    id TEXT PRIMARY KEY,
    project TEXT NOT NULL,
    source TEXT NOT NULL,
    terms TEXT NOT NULL,
    operators TEXT NOT NULL DEFAULT '',
    max_pdfs INTEGER NOT NULL,
    success_count INTEGER NOT NULL DEFAULT 0,
    error_count INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_searches_project ON searches(project);
CREATE INDEX IF NOT EXISTS idx_searches_created ON searches(created_at);
`

// Record stores one finished search and returns its id.
func (s *Store) Record(search Search) (string, error) {
	id := search.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := search.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO searches (id, project, source, terms, operators, max_pdfs, success_count, error_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, search.Project, string(search.Source),
		strings.Join(search.Terms, "|"), strings.Join(search.Operators, "|"),
		search.MaxPDFs, search.SuccessCount, search.ErrorCount, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("recording search: %w", err)
	}
	return id, nil
}

// List returns searches newest first, optionally filtered by project.
// A non-positive limit returns everything.
func (s *Store) List(project string, limit int) ([]Search, error) {
	query := `SELECT id, project, source, terms, operators, max_pdfs, success_count, error_count, created_at
	          FROM searches`
	var args []any
	if project != "" {
		query += ` WHERE project = ?`
		args = append(args, project)
	}
	query += ` ORDER BY created_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing searches: %w", err)
	}
	defer rows.Close()

	var searches []Search
	for rows.Next() {
		var search Search
		var source, terms, operators string
		if err := rows.Scan(&search.ID, &search.Project, &source, &terms, &operators,
			&search.MaxPDFs, &search.SuccessCount, &search.ErrorCount, &search.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning search: %w", err)
		}
		search.Source = config.Source(source)
		search.Terms = splitList(terms)
		search.Operators = splitList(operators)
		searches = append(searches, search)
	}
	return searches, rows.Err()
}

// Delete removes one recorded search.
func (s *Store) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM searches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting search: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("no search with id %s", id)
	}
	return nil
}

// Clear removes every recorded search, optionally scoped to a project.
func (s *Store) Clear(project string) error {
	var err error
	if project == "" {
		_, err = s.db.Exec(`DELETE FROM searches`)
	} else {
		_, err = s.db.Exec(`DELETE FROM searches WHERE project = ?`, project)
	}
	if err != nil {
		return fmt.Errorf("clearing searches: %w", err)
	}
	return nil
}

func splitList(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, "|")
}
