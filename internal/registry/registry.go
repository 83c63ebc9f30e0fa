package registry

import (
	"sort"
	"sync"

	"task-tracker/internal/events"
	"task-tracker/internal/models"
)

// Options controls construction of a Registry.
type Options struct {
	// Strict enables project, priority and deadline validation on task create/edit.
	// When false the registry accepts any task fields.
	Strict bool

	// Hub, if set, receives an event after every committed mutation.
	Hub *events.Hub
}

// TaskRef is the id and name of a task as shown in a grouped listing.
type TaskRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProjectGroup is one project with the tasks that reference it, ordered by id.
type ProjectGroup struct {
	Project models.Project `json:"project"`
	Tasks   []TaskRef      `json:"tasks"`
}

// Snapshot is a full copy of registry state, used by load/save collaborators.
type Snapshot struct {
	Projects []models.Project
	Tasks    []models.Task
	// LastID is the last task id ever issued; ids resume above it.
	LastID int
}

// Registry composes the project and task stores and enforces the rules between them.
// All methods are safe for concurrent use: mutations run under one write lock
// covering the store change and the membership index update.
type Registry struct {
	mu       sync.RWMutex
	strict   bool
	hub      *events.Hub
	projects *ProjectStore
	tasks    *TaskStore
	// members maps project name to the ids of tasks whose Project field holds that name.
	members map[string][]int
}

// New builds an empty registry.
func New(opts Options) *Registry {
	return &Registry{
		strict:   opts.Strict,
		hub:      opts.Hub,
		projects: NewProjectStore(),
		tasks:    NewTaskStore(),
		members:  make(map[string][]int),
	}
}

// Strict reports whether task fields are validated.
func (r *Registry) Strict() bool {
	return r.strict
}

// CreateProject adds a project, failing with ErrConflict if the name is taken.
func (r *Registry) CreateProject(name, description string) error {
	r.mu.Lock()
	err := r.projects.Create(name, description)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.hub.Publish(events.Event{Type: events.ProjectCreated, Project: name})
	return nil
}

// EditProject replaces a project's description.
func (r *Registry) EditProject(name, description string) error {
	r.mu.Lock()
	err := r.projects.Edit(name, description)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.hub.Publish(events.Event{Type: events.ProjectUpdated, Project: name})
	return nil
}

// ProjectExists reports whether name is a live project.
func (r *Registry) ProjectExists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.projects.Exists(name)
}

// GetProject returns a project by name.
func (r *Registry) GetProject(name string) (models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects.Get(name)
	if !ok {
		return models.Project{}, projectNotFound(name)
	}
	return p, nil
}

// ListProjects returns all projects in creation order.
func (r *Registry) ListProjects() []models.Project {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.projects.List()
}

// DeleteProject removes a project. Without cascade, a project still referenced by tasks
// is kept and a *HasDependentsError lists the blocking ids. With cascade, those tasks are
// deleted first.
func (r *Registry) DeleteProject(name string, cascade bool) error {
	r.mu.Lock()
	if !r.projects.Exists(name) {
		r.mu.Unlock()
		return projectNotFound(name)
	}
	dependents := append([]int(nil), r.members[name]...)
	if len(dependents) > 0 && !cascade {
		r.mu.Unlock()
		return &HasDependentsError{Project: name, TaskIDs: dependents}
	}
	for _, id := range dependents {
		// ids in the index are always live
		_ = r.tasks.Delete(id)
	}
	delete(r.members, name)
	err := r.projects.Delete(name)
	r.mu.Unlock()
	if err != nil {
		return err
	}

	for _, id := range dependents {
		r.hub.Publish(events.Event{Type: events.TaskDeleted, TaskID: id, Project: name, Partial: true})
	}
	r.hub.Publish(events.Event{Type: events.ProjectDeleted, Project: name})
	return nil
}

// CreateTask validates the input, stores it under a fresh id and returns that id.
func (r *Registry) CreateTask(in TaskInput) (int, error) {
	r.mu.Lock()
	if err := r.validate(in); err != nil {
		r.mu.Unlock()
		return 0, err
	}
	id := r.tasks.Create(in.record())
	r.addMember(in.Project, id)
	r.mu.Unlock()

	r.hub.Publish(events.Event{Type: events.TaskCreated, TaskID: id, Project: in.Project})
	return id, nil
}

// GetTask returns a copy of the task with the given id.
func (r *Registry) GetTask(id int) (models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks.Get(id)
	if !ok {
		return models.Task{}, taskNotFound(id)
	}
	return task, nil
}

// EditTask replaces every field of task id with in. Nothing of the old record is kept
// except the id.
func (r *Registry) EditTask(id int, in TaskInput) error {
	r.mu.Lock()
	old, ok := r.tasks.Get(id)
	if !ok {
		r.mu.Unlock()
		return taskNotFound(id)
	}
	if err := r.validate(in); err != nil {
		r.mu.Unlock()
		return err
	}
	if err := r.tasks.Replace(id, in.record()); err != nil {
		r.mu.Unlock()
		return err
	}
	if old.Project != in.Project {
		r.removeMember(old.Project, id)
		r.addMember(in.Project, id)
	}
	r.mu.Unlock()

	r.hub.Publish(events.Event{Type: events.TaskUpdated, TaskID: id, Project: in.Project})
	return nil
}

// DeleteTask removes a task and its membership entry.
func (r *Registry) DeleteTask(id int) error {
	r.mu.Lock()
	task, ok := r.tasks.Get(id)
	if !ok {
		r.mu.Unlock()
		return taskNotFound(id)
	}
	if err := r.tasks.Delete(id); err != nil {
		r.mu.Unlock()
		return err
	}
	r.removeMember(task.Project, id)
	r.mu.Unlock()

	r.hub.Publish(events.Event{Type: events.TaskDeleted, TaskID: id, Project: task.Project})
	return nil
}

// AllTasks returns every task ordered by id.
func (r *Registry) AllTasks() []models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedTasks(r.tasks.All())
}

// ViewTasks groups tasks under each live project, in project creation order.
// Projects without tasks are listed with an empty group.
func (r *Registry) ViewTasks() []ProjectGroup {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := r.projects.List()
	groups := make([]ProjectGroup, 0, len(projects))
	for _, p := range projects {
		ids := r.members[p.Name]
		refs := make([]TaskRef, 0, len(ids))
		for _, id := range ids {
			task, ok := r.tasks.Get(id)
			if !ok {
				continue
			}
			refs = append(refs, TaskRef{ID: id, Name: task.Name})
		}
		groups = append(groups, ProjectGroup{Project: p, Tasks: refs})
	}
	return groups
}

// Snapshot copies the full registry state.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		Projects: r.projects.List(),
		Tasks:    sortedTasks(r.tasks.All()),
		LastID:   r.tasks.LastID(),
	}
}

// Restore replaces all registry state with snap and rebuilds the membership index.
// Projects are ordered by their Seq. In strict mode every task must pass the same
// checks as CreateTask against the restored projects; otherwise nothing is replaced.
// No events are published.
func (r *Registry) Restore(snap Snapshot) error {
	projects := NewProjectStore()
	ordered := append([]models.Project(nil), snap.Projects...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Seq < ordered[j].Seq })
	for _, p := range ordered {
		if err := projects.Create(p.Name, p.Description); err != nil {
			return err
		}
	}

	seen := make(map[int]bool, len(snap.Tasks))
	for _, task := range snap.Tasks {
		if task.ID <= 0 {
			return &ValidationError{Fields: map[string]string{"id": "snapshot task ids must be positive"}}
		}
		if seen[task.ID] {
			return &ValidationError{Fields: map[string]string{"id": "snapshot has duplicate task ids"}}
		}
		seen[task.ID] = true
		if r.strict {
			if verr := checkTask(projects, inputOf(task)); verr != nil {
				verr.TaskID = task.ID
				return verr
			}
		}
	}

	tasks := NewTaskStore()
	tasks.restore(snap.Tasks, snap.LastID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects = projects
	r.tasks = tasks
	r.members = make(map[string][]int)
	for _, task := range sortedTasks(tasks.All()) {
		r.addMember(task.Project, task.ID)
	}
	return nil
}

// addMember inserts id into the project's id list, keeping it sorted.
func (r *Registry) addMember(project string, id int) {
	ids := r.members[project]
	i := sort.SearchInts(ids, id)
	if i < len(ids) && ids[i] == id {
		return
	}
	ids = append(ids, 0)
	copy(ids[i+1:], ids[i:])
	ids[i] = id
	r.members[project] = ids
}

func (r *Registry) removeMember(project string, id int) {
	ids := r.members[project]
	i := sort.SearchInts(ids, id)
	if i >= len(ids) || ids[i] != id {
		return
	}
	ids = append(ids[:i], ids[i+1:]...)
	if len(ids) == 0 {
		delete(r.members, project)
		return
	}
	r.members[project] = ids
}

func sortedTasks(all map[int]models.Task) []models.Task {
	out := make([]models.Task, 0, len(all))
	for _, task := range all {
		out = append(out, task)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
