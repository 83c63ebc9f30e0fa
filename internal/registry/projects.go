package registry

import "task-tracker/internal/models"

// ProjectStore maps project names to descriptions and remembers insertion order.
// It is not safe for concurrent use; the Registry serializes access.
type ProjectStore struct {
	descriptions map[string]string
	order        []string
}

// NewProjectStore returns an empty store.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{descriptions: make(map[string]string)}
}

// Create inserts a project. A taken name is a conflict and leaves the stored description alone.
func (s *ProjectStore) Create(name, description string) error {
	if _, ok := s.descriptions[name]; ok {
		return &ConflictError{Project: name}
	}
	s.descriptions[name] = description
	s.order = append(s.order, name)
	return nil
}

// Edit replaces the description of an existing project.
func (s *ProjectStore) Edit(name, description string) error {
	if _, ok := s.descriptions[name]; !ok {
		return projectNotFound(name)
	}
	s.descriptions[name] = description
	return nil
}

// Delete removes a project. Dependent tasks are the Registry's concern.
func (s *ProjectStore) Delete(name string) error {
	if _, ok := s.descriptions[name]; !ok {
		return projectNotFound(name)
	}
	delete(s.descriptions, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Exists reports whether name is a live project.
func (s *ProjectStore) Exists(name string) bool {
	_, ok := s.descriptions[name]
	return ok
}

// Get returns a single project.
func (s *ProjectStore) Get(name string) (models.Project, bool) {
	desc, ok := s.descriptions[name]
	if !ok {
		return models.Project{}, false
	}
	for i, n := range s.order {
		if n == name {
			return models.Project{Name: name, Description: desc, Seq: i}, true
		}
	}
	return models.Project{Name: name, Description: desc}, true
}

// List returns projects in insertion order.
func (s *ProjectStore) List() []models.Project {
	out := make([]models.Project, 0, len(s.order))
	for i, name := range s.order {
		out = append(out, models.Project{Name: name, Description: s.descriptions[name], Seq: i})
	}
	return out
}

// Len returns the number of projects.
func (s *ProjectStore) Len() int {
	return len(s.order)
}
