// Package fs implements core.Store on the local filesystem. Each
// collection lives in its own <key>.json file inside the store
// directory, written atomically via temp file + rename.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// Config holds the configuration for the filesystem store.
type Config struct {
	// Path is the store directory.
	Path string
	// MustExist refuses to create the directory when it is missing.
	MustExist bool
	// SystemDir is the hidden housekeeping directory name. Defaults to
	// ".taskbm". Watch events originating inside it are ignored.
	SystemDir string
	Logger    *slog.Logger
	// ErrorHandler receives errors from the watch loop, which has no
	// caller to return them to.
	ErrorHandler func(error)
}

// Store is a filesystem-backed core.Store.
type Store struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
}

// NewStore creates a filesystem store rooted at config.Path.
func NewStore(config Config) *Store {
	if config.SystemDir == "" {
		config.SystemDir = ".taskbm"
	}
	return &Store{Path: config.Path, config: config}
}

// Initialize ensures the store directory exists.
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat store path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Load returns the raw bytes of a collection, or core.ErrNoCollection
// when the key has never been saved.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.collectionPath(key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("collection %q: %w", key, core.ErrNoCollection)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %q: %w", key, err)
	}
	return data, nil
}

// Save atomically replaces a collection's contents.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	if err := writeFileAtomic(s.collectionPath(key), data, 0644); err != nil {
		return fmt.Errorf("failed to save collection %q: %w", key, err)
	}
	return nil
}

func (s *Store) collectionPath(key string) string {
	return filepath.Join(s.Path, key+".json")
}

// keyFromPath maps a store file path back to its collection key, and
// false for paths that are not collection files (system dir, temp
// files from in-flight atomic writes).
func (s *Store) keyFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, tempFilePrefix) || !strings.HasSuffix(base, ".json") {
		return "", false
	}
	dir := filepath.Dir(path)
	if filepath.Base(dir) == s.config.SystemDir {
		return "", false
	}
	return strings.TrimSuffix(base, ".json"), true
}

// validKey rejects keys that would escape the store directory.
func validKey(key string) error {
	if key == "" {
		return fmt.Errorf("collection key cannot be empty")
	}
	if strings.ContainsAny(key, "/\\") || key != filepath.Base(key) {
		return fmt.Errorf("invalid collection key: %q", key)
	}
	return nil
}

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}

func (s *Store) handleWatchError(err error) {
	if s.config.ErrorHandler != nil {
		s.config.ErrorHandler(err)
	} else if s.config.Logger != nil {
		s.config.Logger.Error("watch error", "error", err)
	}
}

var _ core.Store = (*Store)(nil)

// now is a seam for tests.
var now = time.Now
