package typed

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// memStore implements core.Store in memory for tests.
type memStore struct {
	data  map[string][]byte
	loads int
	saves int
	// failSave makes every Save fail when set.
	failSave error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Load(ctx context.Context, key string) ([]byte, error) {
	m.loads++
	data, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("collection %q: %w", key, core.ErrNoCollection)
	}
	return data, nil
}

func (m *memStore) Save(ctx context.Context, key string, data []byte) error {
	m.saves++
	if m.failSave != nil {
		return m.failSave
	}
	m.data[key] = data
	return nil
}

func (m *memStore) Initialize(ctx context.Context) error { return nil }

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func recordID(r record) string { return r.ID }

func seedRecords() []record {
	return []record{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}}
}

func TestCollection_SeedsOnFirstAccess(t *testing.T) {
	store := newMemStore()
	coll := NewCollection(store, "things", seedRecords, recordID)
	ctx := context.Background()

	records, err := coll.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedRecords(), records)

	// The seed was persisted; the next List reads it back without
	// re-seeding.
	saves := store.saves
	records, err = coll.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedRecords(), records)
	assert.Equal(t, saves, store.saves)
}

func TestCollection_NilSeedMeansEmpty(t *testing.T) {
	store := newMemStore()
	coll := NewCollection[record](store, "things", nil, recordID)

	records, err := coll.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.JSONEq(t, `[]`, string(store.data["things"]))
}

func TestCollection_Insert(t *testing.T) {
	store := newMemStore()
	coll := NewCollection[record](store, "things", nil, recordID)
	ctx := context.Background()

	require.NoError(t, coll.Insert(ctx, record{ID: "x", Name: "X"}))
	require.NoError(t, coll.Insert(ctx, record{ID: "y", Name: "Y"}))

	records, err := coll.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "x", Name: "X"}, {ID: "y", Name: "Y"}}, records)
}

func TestCollection_Update(t *testing.T) {
	store := newMemStore()
	coll := NewCollection(store, "things", seedRecords, recordID)
	ctx := context.Background()

	updated, err := coll.Update(ctx, "b", func(r *record) { r.Name = "Beta 2" })
	require.NoError(t, err)
	assert.Equal(t, record{ID: "b", Name: "Beta 2"}, updated)

	records, err := coll.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", records[0].Name)
	assert.Equal(t, "Beta 2", records[1].Name)
}

func TestCollection_UpdateMissingIDLeavesStoreUntouched(t *testing.T) {
	store := newMemStore()
	coll := NewCollection(store, "things", seedRecords, recordID)
	ctx := context.Background()

	_, err := coll.List(ctx) // seed
	require.NoError(t, err)
	before := string(store.data["things"])

	_, err = coll.Update(ctx, "missing-id", func(r *record) { r.Name = "nope" })
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, before, string(store.data["things"]))
}

func TestCollection_Delete(t *testing.T) {
	store := newMemStore()
	coll := NewCollection(store, "things", seedRecords, recordID)
	ctx := context.Background()

	require.NoError(t, coll.Delete(ctx, "a"))

	records, err := coll.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: "b", Name: "Beta"}}, records)

	err = coll.Delete(ctx, "a")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCollection_SaveFailureSurfaces(t *testing.T) {
	store := newMemStore()
	coll := NewCollection[record](store, "things", nil, recordID)
	ctx := context.Background()

	_, err := coll.List(ctx) // establish empty collection
	require.NoError(t, err)

	store.failSave = errors.New("disk full")
	err = coll.Insert(ctx, record{ID: "x"})
	assert.ErrorContains(t, err, "disk full")
}

func TestCollection_Contains(t *testing.T) {
	store := newMemStore()
	coll := NewCollection(store, "things", seedRecords, recordID)
	ctx := context.Background()

	ok, err := coll.Contains(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = coll.Contains(ctx, "zzz")
	require.NoError(t, err)
	assert.False(t, ok)
}
