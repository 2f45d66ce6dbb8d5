package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// sessionFile holds the persisted session state for the litscout home.
// At most one token is active per home directory; an absent or unreadable
// file means the user is logged out.
type sessionFile struct {
	AccessToken string `json:"access_token,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Store persists the session token as a JSON file with restricted
// permissions. The zero value is not usable; construct with NewStore or
// NewDefaultStore.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore creates a Store at ~/.litscout/session.json.
func NewDefaultStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}
	return NewStore(filepath.Join(home, ".litscout", "session.json")), nil
}

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Load reads the persisted session. A missing file yields an empty token
// and no error.
func (s *Store) Load() (token, email string, err error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("reading session: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", "", fmt.Errorf("parsing session: %w", err)
	}
	return f.AccessToken, f.Email, nil
}

// Save writes the session token with restricted permissions.
func (s *Store) Save(token, email string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(sessionFile{AccessToken: token, Email: email}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Clear deletes the persisted session. Clearing an already-absent session
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
