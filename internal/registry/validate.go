package registry

import (
	"fmt"
	"time"

	"task-tracker/internal/models"
)

// TaskInput carries every caller-supplied task field. The id is always assigned by the Registry.
type TaskInput struct {
	Priority    int
	Name        string
	Description string
	Assignees   []string
	Project     string
	Deadline    string
}

func (in TaskInput) record() models.Task {
	var assignees []string
	if in.Assignees != nil {
		assignees = make([]string, len(in.Assignees))
		copy(assignees, in.Assignees)
	}
	return models.Task{
		Priority:    in.Priority,
		Name:        in.Name,
		Description: in.Description,
		Assignees:   assignees,
		Project:     in.Project,
		Deadline:    in.Deadline,
	}
}

// validate checks the strict-mode rules. Permissive mode accepts any fields.
func (r *Registry) validate(in TaskInput) error {
	if !r.strict {
		return nil
	}
	if verr := checkTask(r.projects, in); verr != nil {
		return verr
	}
	return nil
}

// checkTask applies the strict rules against projects. It returns nil when in is valid.
func checkTask(projects *ProjectStore, in TaskInput) *ValidationError {
	verr := &ValidationError{}
	if !projects.Exists(in.Project) {
		verr.add("project", fmt.Sprintf("project %q does not exist", in.Project))
	}
	if in.Priority < models.MinPriority || in.Priority > models.MaxPriority {
		verr.add("priority", fmt.Sprintf("must be between %d and %d, got %d", models.MinPriority, models.MaxPriority, in.Priority))
	}
	if !ValidDeadline(in.Deadline) {
		verr.add("deadline", fmt.Sprintf("must be a date formatted YYYY-MM-DD, got %q", in.Deadline))
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func inputOf(task models.Task) TaskInput {
	return TaskInput{
		Priority:    task.Priority,
		Name:        task.Name,
		Description: task.Description,
		Assignees:   task.Assignees,
		Project:     task.Project,
		Deadline:    task.Deadline,
	}
}

// ValidDeadline reports whether s is a real calendar date in YYYY-MM-DD form.
func ValidDeadline(s string) bool {
	if len(s) != len(models.DeadlineLayout) {
		return false
	}
	_, err := time.Parse(models.DeadlineLayout, s)
	return err == nil
}
