package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"task-tracker/internal/registry"
)

// describe turns a registry error into the line shown to the user.
func describe(err error) string {
	var (
		nf   *registry.NotFoundError
		cerr *registry.ConflictError
		verr *registry.ValidationError
		herr *registry.HasDependentsError
	)
	switch {
	case errors.As(err, &nf) && nf.Kind == "task":
		return fmt.Sprintf("Task with ID %s does not exist.", nf.Key)
	case errors.As(err, &nf):
		return fmt.Sprintf("Project '%s' does not exist.", nf.Key)
	case errors.As(err, &cerr):
		return fmt.Sprintf("Project '%s' already exists.", cerr.Project)
	case errors.As(err, &verr):
		fields := make([]string, 0, len(verr.Fields))
		for field := range verr.Fields {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		lines := make([]string, 0, len(fields))
		for _, field := range fields {
			lines = append(lines, fmt.Sprintf("  - %s: %s", field, verr.Fields[field]))
		}
		return "Invalid task:\n" + strings.Join(lines, "\n")
	case errors.As(err, &herr):
		ids := make([]string, 0, len(herr.TaskIDs))
		for _, id := range herr.TaskIDs {
			ids = append(ids, fmt.Sprint(id))
		}
		return fmt.Sprintf("Project '%s' still has tasks: %s.", herr.Project, strings.Join(ids, ", "))
	default:
		return "Error: " + err.Error()
	}
}
