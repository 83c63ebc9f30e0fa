package cli

import (
	"fmt"

	"task-tracker/internal/registry"
)

// SeedDemo loads the sample projects and tasks through the public registry operations.
func SeedDemo(reg *registry.Registry) error {
	projects := []struct{ name, description string }{
		{"Project 1", "Around the house"},
		{"Project 2", "Repairs"},
	}
	for _, p := range projects {
		if err := reg.CreateProject(p.name, p.description); err != nil {
			return fmt.Errorf("seed project %s: %w", p.name, err)
		}
	}
	tasks := []registry.TaskInput{
		{Priority: 5, Name: "Clean the car", Description: "have to wash the car", Assignees: []string{"User1", "User2"}, Project: "Project 1", Deadline: "2023-10-31"},
		{Priority: 8, Name: "Wash the dishes", Description: "was the dishes", Assignees: []string{"User3"}, Project: "Project 1", Deadline: "2023-11-15"},
		{Priority: 3, Name: "Fix the roof", Description: "fix the leak in the roof", Assignees: []string{"User1"}, Project: "Project 2", Deadline: "2023-11-20"},
	}
	for _, in := range tasks {
		if _, err := reg.CreateTask(in); err != nil {
			return fmt.Errorf("seed task %s: %w", in.Name, err)
		}
	}
	return nil
}
