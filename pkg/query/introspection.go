package query

import (
	"github.com/aretw0/introspection"
)

// CacheState exposes one cache entry's freshness for observability.
type CacheState struct {
	AgeMs      int64  `json:"age_ms"`
	Populated  bool   `json:"populated"`
	Generation uint64 `json:"generation"`
}

// ClientState exposes internal state for observability.
type ClientState struct {
	Tasks     CacheState `json:"tasks"`
	Bookmarks CacheState `json:"bookmarks"`
	StoreType string     `json:"store_type"`
}

// State implements introspection.Introspectable.
func (c *Client) State() any {
	storeType := "store"
	if comp, ok := c.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	return ClientState{
		Tasks:     cacheState(c.taskCache),
		Bookmarks: cacheState(c.bookmarkCache),
		StoreType: storeType,
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "query-client"
}

func cacheState[T any](c *cache[T]) CacheState {
	age, populated := c.age()
	return CacheState{
		AgeMs:      age.Milliseconds(),
		Populated:  populated,
		Generation: c.gen(),
	}
}

var _ introspection.Introspectable = (*Client)(nil)
var _ introspection.Component = (*Client)(nil)
