// Package session holds the durable token store and the connection/auth
// state machine consumed by the UI layer.
package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists the bearer token across process restarts under a single
// fixed path. Absence of the file means anonymous. Writers are not
// serialized; the UI prevents overlapping auth actions, and the last write
// wins.
type Store struct {
	path string
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token returns the stored token and true, or "" and false when no token is
// persisted.
func (s *Store) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Save writes the token, creating the parent directory on demand. The file
// is user-readable only.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the stored token. Clearing an absent token is a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
