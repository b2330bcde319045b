package core

import "context"

// Store defines the contract for persisting collections. Each
// collection is addressed by a string key and holds the raw JSON array
// of its records. Adhering to this interface keeps the layers above
// independent of the underlying storage mechanism (filesystem, bbolt,
// a real backend later).
type Store interface {
	// Load returns the raw contents of a collection. It returns
	// ErrNoCollection when the key has never been written; callers
	// decide whether that means "seed" or "empty".
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the entire collection atomically from the caller's
	// perspective. No partial-write state is ever observable.
	Save(ctx context.Context, key string, data []byte) error

	// Initialize ensures the underlying storage is ready (create
	// directories, open database, schema setup).
	Initialize(ctx context.Context) error
}

// Watchable is implemented by stores that can observe external changes
// to their collections. The pattern is a doublestar glob matched
// against collection keys ("*" for all).
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
