package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrConflict      = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrHasDependents = errors.New("has dependent tasks")
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Kind string // "task" or "project"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q %s", e.Kind, e.Key, ErrNotFound.Error())
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError is returned when a project name is already taken.
type ConflictError struct {
	Project string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("project %q %s", e.Project, ErrConflict.Error())
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ValidationError collects every rejected field of a task input.
type ValidationError struct {
	// TaskID is set when the rejected fields belong to an existing or restored task.
	TaskID int
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	if e.TaskID > 0 {
		return fmt.Sprintf("%s: task %d: %s", ErrValidation.Error(), e.TaskID, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) add(field, problem string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = problem
}

// HasDependentsError blocks a non-cascading project delete.
type HasDependentsError struct {
	Project string
	TaskIDs []int
}

func (e *HasDependentsError) Error() string {
	ids := make([]string, 0, len(e.TaskIDs))
	for _, id := range e.TaskIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	return fmt.Sprintf("project %q %s: %s", e.Project, ErrHasDependents.Error(), strings.Join(ids, ", "))
}

func (e *HasDependentsError) Unwrap() error { return ErrHasDependents }

func taskNotFound(id int) error {
	return &NotFoundError{Kind: "task", Key: fmt.Sprint(id)}
}

func projectNotFound(name string) error {
	return &NotFoundError{Kind: "project", Key: name}
}
