// Package sponsorapi (credentials.go) holds the bearer token used by every request.
// The token lives in memory for header construction and is mirrored into a durable
// Storage so that it survives process restarts until explicitly cleared.
package sponsorapi

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// Storage is a durable key/value store. internal/session.Store is the on-disk
// implementation; MemoryStorage serves tests and throwaway clients.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// CredentialStore owns the current bearer token. It is safe for concurrent use.
type CredentialStore struct {
	mu      sync.RWMutex
	token   string
	storage Storage
	logger  Logger
}

// NewCredentialStore creates a store and restores any token persisted in storage.
func NewCredentialStore(storage Storage, l Logger) (*CredentialStore, error) {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if l == nil {
		l = DefaultLogger{}
	}

	token, _, err := storage.Get(AuthTokenKey)
	if err != nil {
		return nil, fmt.Errorf("restoring credential: %w", err)
	}

	return &CredentialStore{
		token:   token,
		storage: storage,
		logger:  l,
	}, nil
}

// Get returns the current token, or "" when no credential is held.
func (s *CredentialStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a credential is held.
func (s *CredentialStore) HasToken() bool {
	return s.Get() != ""
}

// Set stores token in memory and in durable storage. The in-memory value is
// updated even when persisting fails; the persistence error is returned.
// An empty token is the same as Clear.
func (s *CredentialStore) Set(token string) error {
	if token == "" {
		return s.Clear()
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.storage.Set(AuthTokenKey, token); err != nil {
		s.logger.Warnf("Failed to persist credential: %v", err)
		return fmt.Errorf("persisting credential: %w", err)
	}
	return nil
}

// Clear removes the token from memory and from durable storage.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Delete(AuthTokenKey); err != nil {
		s.logger.Warnf("Failed to remove persisted credential: %v", err)
		return fmt.Errorf("removing credential: %w", err)
	}
	return nil
}

// Token implements oauth2.TokenSource.
func (s *CredentialStore) Token() (*oauth2.Token, error) {
	token := s.Get()
	if token == "" {
		return nil, ErrNoCredential
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// authorize attaches "Authorization: Bearer <token>" when a credential is held.
// The token is read once, before the request is sent.
func (s *CredentialStore) authorize(req *http.Request) {
	token, err := s.Token()
	if err != nil {
		return
	}
	token.SetAuthHeader(req)
}

// MemoryStorage is a Storage that lives only as long as the process.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
