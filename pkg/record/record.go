// Package record defines the three remote collections and the items they hold.
package record

import (
	"fmt"
	"strings"
)

// Collection names one of the resource sets exposed by the remote store.
type Collection string

const (
	Tasks Collection = "tasks"
	Goals Collection = "goals"
	Notes Collection = "notes"
)

// All lists the collections in display order.
var All = []Collection{Tasks, Goals, Notes}

// ParseCollection resolves a user supplied collection name. Singular forms and
// single letter abbreviations are accepted.
func ParseCollection(name string) (Collection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tasks", "task", "t":
		return Tasks, nil
	case "goals", "goal", "g":
		return Goals, nil
	case "notes", "note", "n":
		return Notes, nil
	}
	return "", fmt.Errorf("unknown collection %q, expected one of tasks, goals, notes", name)
}

// Valid reports whether c is one of the known collections.
func (c Collection) Valid() bool {
	switch c {
	case Tasks, Goals, Notes:
		return true
	}
	return false
}

// Path is the resource path relative to the store base URL.
func (c Collection) Path() string {
	return "/" + string(c)
}

// ItemPath is the resource path of a single item.
func (c Collection) ItemPath(id int64) string {
	return fmt.Sprintf("/%s/%d", c, id)
}

// TextField is the JSON field carrying the item text.
func (c Collection) TextField() string {
	if c == Notes {
		return "content"
	}
	return "description"
}

// HasCompletion reports whether items of c carry a completed flag.
func (c Collection) HasCompletion() bool {
	return c == Tasks || c == Goals
}

// Kind is the singular display name, e.g. "Task".
func (c Collection) Kind() string {
	switch c {
	case Tasks:
		return "Task"
	case Goals:
		return "Goal"
	case Notes:
		return "Note"
	}
	return string(c)
}

// Title is the plural display name, e.g. "Tasks".
func (c Collection) Title() string {
	return c.Kind() + "s"
}

func (c Collection) String() string {
	return string(c)
}

// Record is a single item of a collection. Completed is nil for notes and for
// servers that do not report completion.
type Record struct {
	ID        int64
	Text      string
	Completed *bool
}

// Done reports whether the record is marked complete.
func (r Record) Done() bool {
	return r.Completed != nil && *r.Completed
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
