package platform

import (
	"context"
	"fmt"

	"github.com/alx-zhu/task-bookmarks/pkg/adapters/bolt"
	"github.com/alx-zhu/task-bookmarks/pkg/adapters/fs"
	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/query"
	"github.com/alx-zhu/task-bookmarks/pkg/seed"
	"github.com/alx-zhu/task-bookmarks/pkg/typed"
)

// New builds the query client over an initialized store. The URI is
// adapter-specific: a directory for "fs", a database file path for
// "bolt".
func New(uri string, opts ...Option) (*query.Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store, err := openStore(uri, o)
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	provider := o.seed
	if provider == nil {
		provider = seed.Starter{Now: o.now}
	}
	if o.noSeed {
		provider = seed.Empty
	}

	tasks := typed.NewCollection(store, core.CollectionTasks,
		provider.Tasks, func(t core.Task) string { return t.ID })
	bookmarks := typed.NewCollection(store, core.CollectionBookmarks,
		provider.Bookmarks, func(b core.Bookmark) string { return b.ID })

	return query.NewClient(query.Config{
		Store:             store,
		Tasks:             tasks,
		Bookmarks:         bookmarks,
		TaskStaleness:     o.taskTTL,
		BookmarkStaleness: o.bookmarkTTL,
		Now:               o.now,
		NewID:             o.newID,
		Logger:            o.logger,
	}), nil
}

func openStore(uri string, o *options) (core.Store, error) {
	if o.store != nil {
		return o.store, nil
	}

	switch o.adapter {
	case "fs":
		return fs.NewStore(fs.Config{
			Path:         uri,
			MustExist:    o.mustExist,
			SystemDir:    o.systemDir,
			Logger:       o.logger,
			ErrorHandler: o.errorHandler,
		}), nil
	case "bolt":
		return bolt.Open(uri)
	default:
		return nil, fmt.Errorf("unknown adapter: %q", o.adapter)
	}
}
