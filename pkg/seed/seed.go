// Package seed supplies the default dataset written to a fresh store
// on first access. The store layers never hardcode content; they take
// a Provider so embedders can swap the starter data out.
package seed

import (
	"time"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// Provider supplies the records a collection is seeded with.
type Provider interface {
	Tasks() []core.Task
	Bookmarks() []core.Bookmark
}

// Empty seeds both collections with no records.
var Empty Provider = empty{}

type empty struct{}

func (empty) Tasks() []core.Task         { return []core.Task{} }
func (empty) Bookmarks() []core.Bookmark { return []core.Bookmark{} }

// Starter is the default dataset: a handful of research tasks with
// annotated bookmarks, timestamped relative to the injected clock.
type Starter struct {
	Now func() time.Time
}

func (s Starter) now() int64 {
	if s.Now != nil {
		return s.Now().UnixMilli()
	}
	return time.Now().UnixMilli()
}

func (s Starter) Tasks() []core.Task {
	now := s.now()
	return []core.Task{
		{ID: "database-optimization", Name: "Database optimization", CreatedAt: now},
		{ID: "backend-performance", Name: "Backend performance", CreatedAt: now},
		{ID: "react-best-practices", Name: "React best practices", CreatedAt: now},
		{ID: "react-performance", Name: "React performance", CreatedAt: now},
	}
}

func (s Starter) Bookmarks() []core.Bookmark {
	now := s.now()
	day := int64(24 * time.Hour / time.Millisecond)
	hour := int64(time.Hour / time.Millisecond)

	return []core.Bookmark{
		{
			ID:           "1",
			URL:          "https://use-the-index-luke.com",
			Title:        "Use The Index, Luke - Database Indexing Explained",
			Note:         "Explains B-tree vs hash indexes and when to use each",
			TaskID:       "database-optimization",
			TaskName:     "Database optimization",
			CreatedAt:    now - 7*day,
			LastAccessed: now - 2*day,
		},
		{
			ID:           "2",
			URL:          "https://postgresql.org/docs/current/indexes.html",
			Title:        "PostgreSQL Documentation - Index Types",
			Note:         "Official comparison of different index strategies",
			TaskID:       "database-optimization",
			TaskName:     "Database optimization",
			CreatedAt:    now - 5*day,
			LastAccessed: now - 1*day,
		},
		{
			ID:           "3",
			URL:          "https://www.cybertec-postgresql.com/en/high-performance-postgresql/",
			Title:        "High Performance PostgreSQL",
			Note:         "Advanced indexing patterns for complex queries",
			TaskID:       "backend-performance",
			TaskName:     "Backend performance",
			CreatedAt:    now - 10*day,
			LastAccessed: now - 5*day,
		},
		{
			ID:           "4",
			URL:          "https://react.dev/learn/thinking-in-react",
			Title:        "Thinking in React",
			Note:         "Official guide on React mental models and component design",
			TaskID:       "react-best-practices",
			TaskName:     "React best practices",
			CreatedAt:    now - 3*day,
			LastAccessed: now - 1*hour,
		},
		{
			ID:           "5",
			URL:          "https://react.dev/reference/react/memo",
			Title:        "React.memo - Performance Optimization",
			Note:         "When and how to use memo for performance gains",
			TaskID:       "react-performance",
			TaskName:     "React performance",
			CreatedAt:    now - 2*day,
			LastAccessed: now - 3*hour,
		},
		{
			ID:           "6",
			URL:          "https://react.dev/reference/react/useMemo",
			Title:        "useMemo Hook Reference",
			Note:         "Memoizing expensive calculations between renders",
			TaskID:       "react-performance",
			TaskName:     "React performance",
			CreatedAt:    now - 1*day,
			LastAccessed: now - 2*hour,
		},
	}
}
