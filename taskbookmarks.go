package taskbookmarks

import (
	"log/slog"
	"time"

	"github.com/alx-zhu/task-bookmarks/internal/platform"
	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/query"
	"github.com/alx-zhu/task-bookmarks/pkg/seed"
)

// --- Types ---

// Task is a public alias for the task record.
type Task = core.Task

// Bookmark is a public alias for the bookmark record.
type Bookmark = core.Bookmark

// PageInfo is a public alias for the transient page snapshot.
type PageInfo = core.PageInfo

// Client is a public alias for the cached data client.
type Client = query.Client

// NewBookmark is a public alias for the bookmark creation input.
type NewBookmark = query.NewBookmark

// BookmarkUpdate is a public alias for the bookmark mutation input.
type BookmarkUpdate = query.BookmarkUpdate

// --- Configuration ---

// Option defines a functional option for configuring the client.
type Option = platform.Option

// WithStore injects a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name ("fs" or "bolt").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSeed replaces the default starter dataset.
func WithSeed(provider seed.Provider) Option {
	return platform.WithSeed(provider)
}

// WithNoSeed makes fresh collections start empty.
func WithNoSeed(noSeed bool) Option {
	return platform.WithNoSeed(noSeed)
}

// WithNow sets the clock used for timestamps and staleness.
func WithNow(now func() time.Time) Option {
	return platform.WithNow(now)
}

// WithNewID sets the bookmark id generator.
func WithNewID(newID func() string) Option {
	return platform.WithNewID(newID)
}

// WithTaskStaleness overrides the task cache staleness window.
func WithTaskStaleness(ttl time.Duration) Option {
	return platform.WithTaskStaleness(ttl)
}

// WithBookmarkStaleness overrides the bookmark cache staleness window.
func WithBookmarkStaleness(ttl time.Duration) Option {
	return platform.WithBookmarkStaleness(ttl)
}

// WithMustExist requires the store location to already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithSystemDir overrides the filesystem adapter's hidden directory.
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// WithWatchErrorHandler registers a callback for watch-loop errors.
func WithWatchErrorHandler(handler func(error)) Option {
	return platform.WithWatchErrorHandler(handler)
}

// --- Factory ---

// New opens (and if needed seeds) a store and returns the cached data
// client over it. The URI is adapter-specific: a directory for "fs",
// a database file path for "bolt".
func New(uri string, opts ...Option) (*query.Client, error) {
	return platform.New(uri, opts...)
}
