// Package todo holds the in-memory task list and the controller that
// mutates and renders it.
package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Filter selects which tasks are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var (
	// ErrNotFound is returned when an id does not match any held task.
	ErrNotFound = errors.New("task not found")
	// ErrUnknownFilter is returned for filter values outside all/active/completed.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrInvalidTask is the target matched by every *ValidationError.
	ErrInvalidTask = errors.New("invalid task")
)

// Filters returns the filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter converts user input into a Filter. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseFilter(s string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
	return f, nil
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

// Matches reports whether t is visible under f.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterAll:
		return true
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return false
	}
}

// Title returns the label shown on filter selectors.
func (f Filter) Title() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return string(f)
	}
}

// Task is a single entry in the list.
type Task struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Completed   bool   `json:"completed"`
}

// IsZero returns true if the task has no id.
func (t *Task) IsZero() bool {
	return t.ID == 0
}

// Field names reported by FieldErrors.Names.
const (
	FieldDescription = "description"
	FieldDueDate     = "due_date"
)

// Messages shown next to failed input fields.
const (
	MsgDescriptionRequired = "Please enter a task"
	MsgDueDateRequired     = "Please select a due date"
)

// FieldErrors marks which input fields failed validation. The zero value
// hides every indicator.
type FieldErrors struct {
	Description bool
	DueDate     bool
}

// Any reports whether at least one field failed.
func (f FieldErrors) Any() bool {
	return f.Description || f.DueDate
}

// Names returns the failed field names in form order.
func (f FieldErrors) Names() []string {
	var names []string
	if f.Description {
		names = append(names, FieldDescription)
	}
	if f.DueDate {
		names = append(names, FieldDueDate)
	}
	return names
}

// ValidationError reports the fields that stopped a task from being added.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Fields.Description {
		parts = append(parts, "description is empty")
	}
	if e.Fields.DueDate {
		parts = append(parts, "due date is missing")
	}
	if len(parts) == 0 {
		return ErrInvalidTask.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidTask, strings.Join(parts, ", "))
}

// Unwrap returns ErrInvalidTask so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidTask
}
