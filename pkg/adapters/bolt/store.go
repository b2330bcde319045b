// Package bolt implements core.Store on a bbolt database. It exists
// so a real embedded backend can stand in for the filesystem store
// without the cache layer noticing; collections are raw values in a
// single bucket.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

var bucketCollections = []byte("collections")

// Store is a bbolt-backed core.Store. The underlying database file is
// locked by the process, so a second writer fails at Open rather than
// silently losing updates.
type Store struct {
	path string

	mu sync.Mutex
	db *bolt.DB
}

// Open creates the parent directory if needed and opens the database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store db: %w", err)
	}
	return &Store{path: path, db: db}, nil
}

// Initialize creates the collections bucket.
func (s *Store) Initialize(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCollections)
		return err
	})
}

// Load returns the raw bytes of a collection, or core.ErrNoCollection
// when the key has never been saved.
func (s *Store) Load(ctx context.Context, key string) ([]byte, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	var data []byte
	err = db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketCollections)
		if bucket == nil {
			return fmt.Errorf("collection %q: %w", key, core.ErrNoCollection)
		}
		value := bucket.Get([]byte(key))
		if value == nil {
			return fmt.Errorf("collection %q: %w", key, core.ErrNoCollection)
		}
		data = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Save replaces a collection's contents in a single write transaction.
func (s *Store) Save(ctx context.Context, key string, data []byte) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketCollections)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), data)
	})
}

// Close releases the database file lock. Further operations return
// core.ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}

func (s *Store) handle() (*bolt.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, core.ErrClosed
	}
	return s.db, nil
}

var _ core.Store = (*Store)(nil)
