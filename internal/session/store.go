// Package session holds the bearer credential for the signed-in user. The
// store is an explicit object injected into the backend client: initialized
// on sign-in, cleared on sign-out, never a package-level global.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a concurrency-safe credential holder. The zero value is usable
// and starts signed out.
type Store struct {
	mu    sync.RWMutex
	token string

	// path, when set, is where the session snapshot is persisted.
	path string
}

// New returns an in-memory store with no persistence.
func New() *Store {
	return &Store{}
}

type snapshot struct {
	Token string `json:"token"`
}

// NewFileStore returns a store that persists the credential to path as JSON,
// loading any existing snapshot. A missing file means signed out.
func NewFileStore(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	s.token = snap.Token
	return s, nil
}

// SignIn stores the credential and persists it if the store is file-backed.
func (s *Store) SignIn(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return s.persist()
}

// Token returns the stored credential and whether one is present.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SignOut clears the credential and removes any persisted snapshot.
func (s *Store) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// persist writes the snapshot; callers hold the lock.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(snapshot{Token: s.token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
