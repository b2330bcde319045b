// Package typed provides type-safe access to one store collection.
package typed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// Collection wraps a core.Store key with a typed record view. All
// mutations are read-modify-write over the full record set, which is
// sufficient for personal-scale data and keeps the store free of index
// structures.
type Collection[T any] struct {
	store core.Store
	key   string
	seed  func() []T
	idOf  func(T) string
}

// NewCollection binds a record type to a collection key. seed supplies
// the default dataset written on first access when the key has never
// been stored (nil means seed empty); idOf extracts a record's id.
func NewCollection[T any](store core.Store, key string, seed func() []T, idOf func(T) string) *Collection[T] {
	return &Collection[T]{store: store, key: key, seed: seed, idOf: idOf}
}

// Key returns the collection key this view is bound to.
func (c *Collection[T]) Key() string {
	return c.key
}

// List returns all records. On the first access to a key with no
// existing data it seeds the collection with the default dataset and
// returns that.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	data, err := c.store.Load(ctx, c.key)
	if errors.Is(err, core.ErrNoCollection) {
		return c.seedCollection(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	return records, nil
}

func (c *Collection[T]) seedCollection(ctx context.Context) ([]T, error) {
	var records []T
	if c.seed != nil {
		records = c.seed()
	}
	if records == nil {
		records = []T{}
	}
	if err := c.save(ctx, records); err != nil {
		return nil, fmt.Errorf("seed %s: %w", c.key, err)
	}
	return records, nil
}

// Insert appends a record and persists the full collection.
func (c *Collection[T]) Insert(ctx context.Context, record T) error {
	records, err := c.List(ctx)
	if err != nil {
		return err
	}
	return c.save(ctx, append(records, record))
}

// Update applies mutate to the record with the given id and persists
// the collection. It returns core.ErrNotFound (and leaves the stored
// bytes untouched) when no record matches.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(*T)) (T, error) {
	var zero T
	records, err := c.List(ctx)
	if err != nil {
		return zero, err
	}

	for i := range records {
		if c.idOf(records[i]) != id {
			continue
		}
		mutate(&records[i])
		if err := c.save(ctx, records); err != nil {
			return zero, err
		}
		return records[i], nil
	}
	return zero, fmt.Errorf("%s %q: %w", c.key, id, core.ErrNotFound)
}

// Delete removes the record with the given id. Deleting a missing id
// returns core.ErrNotFound.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	records, err := c.List(ctx)
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(records))
	found := false
	for _, r := range records {
		if c.idOf(r) == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("%s %q: %w", c.key, id, core.ErrNotFound)
	}
	return c.save(ctx, kept)
}

// Contains reports whether a record with the given id exists.
func (c *Collection[T]) Contains(ctx context.Context, id string) (bool, error) {
	records, err := c.List(ctx)
	if err != nil {
		return false, err
	}
	for _, r := range records {
		if c.idOf(r) == id {
			return true, nil
		}
	}
	return false, nil
}

func (c *Collection[T]) save(ctx context.Context, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Save(ctx, c.key, data); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}
