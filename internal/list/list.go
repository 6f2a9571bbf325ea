// Package list holds the task list engine: an ordered, newest-first
// collection of tasks mutated only through pure operations.
package list

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Filter selects which tasks a view shows. It never affects the list itself.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a config value onto a Filter; anything unknown means all.
func ParseFilter(s string) Filter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return FilterActive
	case "completed":
		return FilterCompleted
	default:
		return FilterAll
	}
}

func (f Filter) String() string { return string(f) }

// Next cycles all -> active -> completed -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Add prepends a new task with the trimmed text. Whitespace-only text
// leaves the list unchanged.
func Add(tasks []Task, text string) []Task {
	text = strings.TrimSpace(text)
	if text == "" {
		return tasks
	}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, Task{ID: NewID(), Text: text})
	return append(out, tasks...)
}

// Toggle flips the completed flag of the task matching id. A missing id is
// a no-op, not an error.
func Toggle(tasks []Task, id string) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == id {
			out[i].Completed = !out[i].Completed
			break
		}
	}
	return out
}

// Edit replaces the text of the task matching id verbatim. Callers trim
// and suppress empty or unchanged text before calling.
func Edit(tasks []Task, id, text string) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == id {
			out[i].Text = text
			break
		}
	}
	return out
}

// Delete removes the task matching id, preserving the order of the rest.
func Delete(tasks []Task, id string) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == id {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ClearCompleted removes every completed task.
func ClearCompleted(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Visible projects the subset of tasks matching the filter. It is
// recomputed on every read and never mutates its input.
func Visible(tasks []Task, f Filter) []Task {
	switch f {
	case FilterActive, FilterCompleted:
		want := f == FilterCompleted
		out := make([]Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Completed == want {
				out = append(out, t)
			}
		}
		return out
	default:
		return tasks
	}
}

// Remaining counts the tasks still to do.
func Remaining(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// NewID returns a collision-resistant task id: a random UUID, or a base-36
// nanosecond timestamp if the platform's randomness source fails.
func NewID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id.String()
}
