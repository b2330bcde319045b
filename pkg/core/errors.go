package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned by mutations targeting a record id that
	// does not exist in its collection.
	ErrNotFound = errors.New("record not found")

	// ErrNoCollection is returned by Store.Load when the collection key
	// has never been written. Callers use it to trigger lazy seeding.
	ErrNoCollection = errors.New("collection does not exist")

	// ErrEmptyName rejects task creation with a blank name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyURL rejects bookmark creation without a URL.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrDuplicateID rejects a create whose derived id already exists.
	ErrDuplicateID = errors.New("id already exists")

	// ErrClosed is returned by operations on a closed store.
	ErrClosed = errors.New("store is closed")
)
