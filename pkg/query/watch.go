package query

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// WatchInvalidate subscribes to store change events and marks the
// matching cache stale whenever a collection's backing entry is
// modified by someone else. It returns an error when the configured
// store cannot be watched. The subscription ends when ctx is canceled
// or the event stream closes.
func (c *Client) WatchInvalidate(ctx context.Context) error {
	w, ok := c.store.(core.Watchable)
	if !ok {
		return fmt.Errorf("store does not support watching")
	}

	events, err := w.Watch(ctx, "*")
	if err != nil {
		return fmt.Errorf("watch store: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, open := <-events:
				if !open {
					return nil
				}
				c.applyEvent(ev)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if c.logger != nil {
			c.logger.Error("watch invalidation panic", "error", err)
		}
	}))

	return nil
}

func (c *Client) applyEvent(ev core.Event) {
	switch ev.Collection {
	case core.CollectionTasks:
		c.taskCache.invalidate()
	case core.CollectionBookmarks:
		c.bookmarkCache.invalidate()
	default:
		return
	}
	if c.logger != nil {
		c.logger.Debug("cache invalidated by external change", "collection", ev.Collection, "type", ev.Type)
	}
}
