package taskbookmarks_test

import (
	"context"
	"fmt"
	"log"
	"os"

	taskbookmarks "github.com/alx-zhu/task-bookmarks"
	"github.com/alx-zhu/task-bookmarks/pkg/overlay"
	"github.com/alx-zhu/task-bookmarks/pkg/surface"
)

// Example_basic demonstrates creating a task, bookmarking a page under
// it, and reading both back through the cached client.
func Example_basic() {
	tmpDir, err := os.MkdirTemp("", "taskbm-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// WithNoSeed skips the starter dataset; ids are made deterministic
	// for the example output.
	next := 0
	client, err := taskbookmarks.New(tmpDir,
		taskbookmarks.WithNoSeed(true),
		taskbookmarks.WithNewID(func() string {
			next++
			return fmt.Sprintf("bm-%d", next)
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	task, err := client.CreateTask(ctx, "Database optimization")
	if err != nil {
		log.Fatal(err)
	}

	bookmark, err := client.CreateBookmark(ctx, taskbookmarks.NewBookmark{
		URL:      "https://use-the-index-luke.com",
		Title:    "Use The Index, Luke",
		TaskID:   task.ID,
		TaskName: task.Name,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Task: %s\n", task.ID)
	fmt.Printf("Bookmark: %s (%s)\n", bookmark.ID, bookmark.Title)
	// Output:
	// Task: database-optimization
	// Bookmark: bm-1 (Use The Index, Luke)
}

// ExampleNewSession demonstrates the wired host/surface pair: a
// keyboard shortcut on the host side surfaces as a mode change on the
// rendering side.
func ExampleNewSession() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	modes := make(chan surface.Mode, 1)
	session := taskbookmarks.NewSession(ctx, taskbookmarks.SessionConfig{
		PageInfo: func() taskbookmarks.PageInfo {
			return taskbookmarks.PageInfo{URL: "https://go.dev", Title: "The Go Programming Language"}
		},
		OnModeChange: func(mode surface.Mode, info taskbookmarks.PageInfo) {
			modes <- mode
		},
	})
	defer session.Close()

	session.Host.HandleKey(overlay.KeyEvent{Key: "k", Meta: true})

	fmt.Printf("Surface mode: %s\n", <-modes)
	// Output:
	// Surface mode: SEARCHING
}
