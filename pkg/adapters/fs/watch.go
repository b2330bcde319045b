package fs

import (
	"context"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// Watch emits an event whenever a collection file matching the pattern
// changes on disk. The pattern is a doublestar glob over collection
// keys ("*" for all). Events are debounced per collection; an atomic
// save surfaces as a single modify. The returned channel closes when
// ctx is canceled.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if pattern == "" {
		pattern = "*"
	}
	if _, err := doublestar.Match(pattern, "probe"); err != nil {
		return nil, fmt.Errorf("invalid watch pattern %q: %w", pattern, err)
	}

	events := make(chan core.Event, watchBuffer)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

// mapEventType classifies a filesystem event. Renames land here when
// an atomic write swaps the temp file into place.
func mapEventType(ev fsnotify.Event) core.EventType {
	switch {
	case ev.Has(fsnotify.Remove):
		return core.EventDelete
	case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write), ev.Has(fsnotify.Rename):
		return core.EventModify
	}
	return ""
}

var _ core.Watchable = (*Store)(nil)
