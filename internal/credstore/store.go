// Package credstore persists the client's session token. It is a single
// keyed slot: written on successful authentication, read before every
// outgoing request, cleared on logout or an unauthorized response.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenKey is the fixed name of the session token slot.
const TokenKey = "session_token"

// Store holds at most one live session token.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the current token and whether one is set.
	Get() (string, bool)

	// Set replaces the current token.
	Set(token string) error

	// Clear removes the current token. Clearing an empty store is a no-op.
	Clear() error
}

// =============================================================================
// File-Backed Store
// =============================================================================

// FileStore persists the token to a file so it survives process restarts.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewFileStore creates a store rooted at dir. The directory is created if
// missing, and any previously persisted token is loaded.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("credstore: dir is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("credstore: create dir: %w", err)
	}

	s := &FileStore{path: filepath.Join(dir, TokenKey)}

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		s.token = strings.TrimSpace(string(data))
	case os.IsNotExist(err):
		// fresh store
	default:
		return nil, fmt.Errorf("credstore: read token: %w", err)
	}

	return s, nil
}

// Get returns the cached token.
func (s *FileStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set writes the token to disk and updates the cache.
func (s *FileStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("credstore: write token: %w", err)
	}
	s.token = token
	return nil
}

// Clear removes the persisted token. Calling Clear on an already empty
// store succeeds.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credstore: remove token: %w", err)
	}
	s.token = ""
	return nil
}

// =============================================================================
// In-Memory Store
// =============================================================================

// MemStore is a volatile Store for tests and ephemeral sessions.
type MemStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Get returns the current token.
func (s *MemStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set replaces the current token.
func (s *MemStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear empties the slot.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
