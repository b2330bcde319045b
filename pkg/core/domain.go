// Task and Bookmark are the central entities of the domain.
package core

// Collection keys addressing the two persisted record sets.
const (
	CollectionTasks     = "tasks"
	CollectionBookmarks = "bookmarks"
)

// Task groups bookmarks under a user-chosen name.
// Timestamps are wall-clock milliseconds, matching the persisted layout.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
}

// Bookmark is a saved page reference belonging to a task.
// TaskName is denormalized from the task at creation time and is not
// updated when the task is later renamed.
type Bookmark struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Title        string `json:"title"`
	Note         string `json:"note"`
	TaskID       string `json:"taskId"`
	TaskName     string `json:"taskName"`
	CreatedAt    int64  `json:"createdAt"`
	LastAccessed int64  `json:"lastAccessed"`
}

// PageInfo describes the host page at the moment a command was issued.
// It only ever travels inside messages; it is never persisted.
type PageInfo struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// EventType represents the type of change observed on a collection.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event signals that a collection's backing entry changed underneath the
// process (an external writer touched the store).
type Event struct {
	Type       EventType
	Collection string
	Timestamp  int64 // Unix timestamp
}
