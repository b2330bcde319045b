package core

import "strings"

// TaskID derives the stable identifier for a task name: lowercase with
// every whitespace run collapsed to a single hyphen. "Read later"
// becomes "read-later". Two tasks whose names normalize to the same
// slug collide; callers must reject the duplicate.
func TaskID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
