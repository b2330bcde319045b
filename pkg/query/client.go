package query

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/typed"
)

// DefaultTitle is substituted when a bookmark is created without one.
const DefaultTitle = "Untitled"

// Client is the consumer-facing data layer: cached reads plus
// mutations that invalidate the touched collection. Invalidation is
// scoped per collection — a bookmark mutation never stales the task
// cache, the two are denormalized independently.
type Client struct {
	store     core.Store
	tasks     *typed.Collection[core.Task]
	bookmarks *typed.Collection[core.Bookmark]

	taskCache     *cache[core.Task]
	bookmarkCache *cache[core.Bookmark]

	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// Config wires a Client. Zero-value staleness fields fall back to the
// package defaults; Now and NewID default to time.Now and random UUIDs.
type Config struct {
	Store             core.Store
	Tasks             *typed.Collection[core.Task]
	Bookmarks         *typed.Collection[core.Bookmark]
	TaskStaleness     time.Duration
	BookmarkStaleness time.Duration
	Now               func() time.Time
	NewID             func() string
	Logger            *slog.Logger
}

// NewClient creates the cache layer over the given collections.
func NewClient(cfg Config) *Client {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.TaskStaleness <= 0 {
		cfg.TaskStaleness = DefaultTaskStaleness
	}
	if cfg.BookmarkStaleness <= 0 {
		cfg.BookmarkStaleness = DefaultBookmarkStaleness
	}

	return &Client{
		store:         cfg.Store,
		tasks:         cfg.Tasks,
		bookmarks:     cfg.Bookmarks,
		taskCache:     newCache(cfg.Tasks, cfg.TaskStaleness, cfg.Now),
		bookmarkCache: newCache(cfg.Bookmarks, cfg.BookmarkStaleness, cfg.Now),
		now:           cfg.Now,
		newID:         cfg.NewID,
		logger:        cfg.Logger,
	}
}

// Tasks returns all tasks, served from cache while fresh.
func (c *Client) Tasks(ctx context.Context) ([]core.Task, error) {
	return c.taskCache.get(ctx)
}

// Bookmarks returns all bookmarks, served from cache while fresh.
func (c *Client) Bookmarks(ctx context.Context) ([]core.Bookmark, error) {
	return c.bookmarkCache.get(ctx)
}

// CreateTask creates a task whose id is derived from the name
// (lowercase, whitespace runs to hyphens). An empty name or a name
// whose slug collides with an existing task is rejected.
func (c *Client) CreateTask(ctx context.Context, name string) (core.Task, error) {
	if strings.TrimSpace(name) == "" {
		return core.Task{}, core.ErrEmptyName
	}

	id := core.TaskID(name)
	exists, err := c.tasks.Contains(ctx, id)
	if err != nil {
		return core.Task{}, err
	}
	if exists {
		return core.Task{}, fmt.Errorf("task %q: %w", id, core.ErrDuplicateID)
	}

	task := core.Task{
		ID:        id,
		Name:      name,
		CreatedAt: c.now().UnixMilli(),
	}
	if err := c.tasks.Insert(ctx, task); err != nil {
		return core.Task{}, err
	}
	c.taskCache.invalidate()

	if c.logger != nil {
		c.logger.Debug("task created", "id", task.ID)
	}
	return task, nil
}

// DeleteTask removes a task. Bookmarks pointing at it keep their
// taskId and denormalized taskName; there is no cascade.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.tasks.Delete(ctx, id); err != nil {
		return err
	}
	c.taskCache.invalidate()
	return nil
}

// NewBookmark is the caller-supplied part of a bookmark. ID and
// timestamps are generated at creation.
type NewBookmark struct {
	URL      string
	Title    string
	Note     string
	TaskID   string
	TaskName string
}

// CreateBookmark creates a bookmark with a generated id and
// CreatedAt == LastAccessed == now. A missing title falls back to
// DefaultTitle; a missing URL is rejected.
func (c *Client) CreateBookmark(ctx context.Context, nb NewBookmark) (core.Bookmark, error) {
	if strings.TrimSpace(nb.URL) == "" {
		return core.Bookmark{}, core.ErrEmptyURL
	}
	title := nb.Title
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}

	now := c.now().UnixMilli()
	bookmark := core.Bookmark{
		ID:           c.newID(),
		URL:          nb.URL,
		Title:        title,
		Note:         nb.Note,
		TaskID:       nb.TaskID,
		TaskName:     nb.TaskName,
		CreatedAt:    now,
		LastAccessed: now,
	}
	if err := c.bookmarks.Insert(ctx, bookmark); err != nil {
		return core.Bookmark{}, err
	}
	c.bookmarkCache.invalidate()

	if c.logger != nil {
		c.logger.Debug("bookmark created", "id", bookmark.ID, "task", bookmark.TaskID)
	}
	return bookmark, nil
}

// BookmarkUpdate carries the fields a caller may change. Nil fields
// are left untouched.
type BookmarkUpdate struct {
	Title    *string
	Note     *string
	TaskID   *string
	TaskName *string
}

// UpdateBookmark applies the non-nil fields of the update to the
// bookmark with the given id. Unknown ids fail with core.ErrNotFound
// and the stored collection is unchanged.
func (c *Client) UpdateBookmark(ctx context.Context, id string, updates BookmarkUpdate) (core.Bookmark, error) {
	updated, err := c.bookmarks.Update(ctx, id, func(b *core.Bookmark) {
		if updates.Title != nil {
			b.Title = *updates.Title
		}
		if updates.Note != nil {
			b.Note = *updates.Note
		}
		if updates.TaskID != nil {
			b.TaskID = *updates.TaskID
		}
		if updates.TaskName != nil {
			b.TaskName = *updates.TaskName
		}
	})
	if err != nil {
		return core.Bookmark{}, err
	}
	c.bookmarkCache.invalidate()
	return updated, nil
}

// TouchBookmark stamps LastAccessed with the current time, leaving
// every other field alone. Issued whenever a bookmark is opened.
func (c *Client) TouchBookmark(ctx context.Context, id string) error {
	now := c.now().UnixMilli()
	_, err := c.bookmarks.Update(ctx, id, func(b *core.Bookmark) {
		b.LastAccessed = now
	})
	if err != nil {
		return err
	}
	c.bookmarkCache.invalidate()
	return nil
}

// DeleteBookmark removes a bookmark by id.
func (c *Client) DeleteBookmark(ctx context.Context, id string) error {
	if err := c.bookmarks.Delete(ctx, id); err != nil {
		return err
	}
	c.bookmarkCache.invalidate()
	return nil
}

// InvalidateTasks marks the task cache stale.
func (c *Client) InvalidateTasks() { c.taskCache.invalidate() }

// InvalidateBookmarks marks the bookmark cache stale.
func (c *Client) InvalidateBookmarks() { c.bookmarkCache.invalidate() }
