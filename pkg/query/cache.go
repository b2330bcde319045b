// Package query presents Task and Bookmark reads and writes as
// asynchronous operations with staleness-aware caching and
// write-triggered invalidation, so consumers never refetch by hand
// after a mutation.
package query

import (
	"context"
	"sync"
	"time"

	"github.com/alx-zhu/task-bookmarks/pkg/typed"
)

// Default staleness windows per collection.
const (
	DefaultTaskStaleness     = 10 * time.Minute
	DefaultBookmarkStaleness = 5 * time.Minute
)

// cache holds the last-fetched records for one collection together
// with a generation counter. Every invalidation bumps the generation;
// a fetch that completes against an older generation is discarded so a
// slow read can never overwrite post-mutation state ("late write
// wins").
type cache[T any] struct {
	coll      *typed.Collection[T]
	staleness time.Duration
	now       func() time.Time

	mu         sync.Mutex
	records    []T
	fetchedAt  time.Time
	generation uint64
	populated  bool
}

func newCache[T any](coll *typed.Collection[T], staleness time.Duration, now func() time.Time) *cache[T] {
	return &cache[T]{coll: coll, staleness: staleness, now: now}
}

// get returns cached records while they are younger than the staleness
// window, otherwise fetches from the store. The fetch is tagged with
// the generation observed at request time; if an invalidation lands
// while the fetch is in flight the result is thrown away and the fetch
// repeated, which guarantees no reader observes data that predates a
// mutation it was supposed to reflect.
func (c *cache[T]) get(ctx context.Context) ([]T, error) {
	for {
		c.mu.Lock()
		if c.populated && c.now().Sub(c.fetchedAt) < c.staleness {
			records := c.records
			c.mu.Unlock()
			return records, nil
		}
		gen := c.generation
		c.mu.Unlock()

		records, err := c.coll.List(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.generation != gen {
			// Invalidated mid-fetch; this read may predate the
			// mutation that bumped the generation.
			c.mu.Unlock()
			continue
		}
		c.records = records
		c.fetchedAt = c.now()
		c.populated = true
		c.mu.Unlock()
		return records, nil
	}
}

// invalidate marks the entry stale so the next read refetches
// regardless of age.
func (c *cache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.populated = false
}

// age reports how old the cached entry is, and false when nothing is
// cached.
func (c *cache[T]) age() (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.populated {
		return 0, false
	}
	return c.now().Sub(c.fetchedAt), true
}

func (c *cache[T]) gen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}
