// Package session persists small pieces of client state, such as the bearer
// token, in a JSON document under the user's config directory. Access is
// serialized in-process with a mutex and across processes with a file lock.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

// storageFile is the name of the key/value document inside the config directory.
const storageFile = "storage.json"

const (
	lockTimeout    = 2 * time.Second
	lockRetryDelay = 25 * time.Millisecond
)

// ErrLocked is returned when another process holds the storage lock too long.
var ErrLocked = errors.New("could not acquire storage lock, another instance may be running")

// ErrCorrupt is returned when the storage file exists but is not a JSON object
// of strings. Reset discards such a file.
var ErrCorrupt = errors.New("storage file is corrupt")

// Store is a durable string key/value store backed by a single JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store in configDir.
func NewStore(configDir string) *Store {
	return &Store{path: filepath.Join(configDir, storageFile)}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.withLock(func() error {
		values, err := s.read()
		if err != nil {
			return err
		}
		value, ok = values[key]
		return nil
	})
	return value, ok, err
}

// Set stores value under key.
func (s *Store) Set(key, value string) error {
	return s.withLock(func() error {
		values, err := s.read()
		if err != nil {
			return err
		}
		values[key] = value
		return s.write(values)
	})
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	return s.withLock(func() error {
		values, err := s.read()
		if err != nil {
			return err
		}
		if _, ok := values[key]; !ok {
			return nil
		}
		delete(values, key)
		return s.write(values)
	})
}

// Reset removes every stored value, including an unreadable file.
func (s *Store) Reset() error {
	return s.withLock(func() error {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing storage file: %w", err)
		}
		return nil
	})
}

func (s *Store) withLock(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	fileLock := flock.New(s.path + ".lock")
	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("acquiring storage lock '%s': %w", s.path, err)
	}
	if !locked {
		return ErrLocked
	}
	defer fileLock.Unlock()

	return fn()
}

// read loads the document. A missing file is an empty store.
func (s *Store) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("reading storage file '%s': %w", s.path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", ErrCorrupt, s.path, err)
	}
	return values, nil
}

// write replaces the document through a temp file and rename.
func (s *Store) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing storage file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing storage file: %w", err)
	}
	return nil
}
