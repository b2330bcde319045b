package platform

import (
	"log/slog"
	"time"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/seed"
)

// options holds the internal configuration for the client factory.
type options struct {
	store        core.Store
	adapter      string
	logger       *slog.Logger
	seed         seed.Provider
	noSeed       bool
	now          func() time.Time
	newID        func() string
	taskTTL      time.Duration
	bookmarkTTL  time.Duration
	mustExist    bool
	systemDir    string
	errorHandler func(error)
}

// Option defines a functional option for configuring the client.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
	}
}

// WithStore injects a custom storage adapter. If provided, the default
// filesystem adapter is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "bolt").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithLogger sets the logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed replaces the default starter dataset used when a collection
// is first accessed.
func WithSeed(provider seed.Provider) Option {
	return func(o *options) {
		o.seed = provider
	}
}

// WithNoSeed makes fresh collections start empty.
func WithNoSeed(noSeed bool) Option {
	return func(o *options) {
		o.noSeed = noSeed
	}
}

// WithNow sets the clock used for timestamps and cache staleness.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithNewID sets the bookmark id generator.
func WithNewID(newID func() string) Option {
	return func(o *options) {
		o.newID = newID
	}
}

// WithTaskStaleness overrides the task cache staleness window.
func WithTaskStaleness(ttl time.Duration) Option {
	return func(o *options) {
		o.taskTTL = ttl
	}
}

// WithBookmarkStaleness overrides the bookmark cache staleness window.
func WithBookmarkStaleness(ttl time.Duration) Option {
	return func(o *options) {
		o.bookmarkTTL = ttl
	}
}

// WithMustExist requires the store location to already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithSystemDir overrides the hidden housekeeping directory name of
// the filesystem adapter (defaults to ".taskbm").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}

// WithWatchErrorHandler registers a callback for errors occurring in
// the watch loop, which has no caller to return them to.
func WithWatchErrorHandler(handler func(error)) Option {
	return func(o *options) {
		o.errorHandler = handler
	}
}
