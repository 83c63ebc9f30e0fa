package registry

import "task-tracker/internal/models"

// TaskStore maps task ids to records. Ids come from a counter that only grows,
// so a deleted id is never handed out again.
// It is not safe for concurrent use; the Registry serializes access.
type TaskStore struct {
	tasks  map[int]models.Task
	lastID int
}

// NewTaskStore returns an empty store whose first id is 1.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[int]models.Task)}
}

// NextID issues a new id, greater than every id issued before.
func (s *TaskStore) NextID() int {
	s.lastID++
	return s.lastID
}

// LastID returns the most recently issued id, 0 if none.
func (s *TaskStore) LastID() int {
	return s.lastID
}

// Create stores an already validated record under a fresh id and returns it.
func (s *TaskStore) Create(task models.Task) int {
	id := s.NextID()
	task = task.Clone()
	task.ID = id
	s.tasks[id] = task
	return id
}

// Replace overwrites every field of an existing task; the id stays the same.
func (s *TaskStore) Replace(id int, task models.Task) error {
	if _, ok := s.tasks[id]; !ok {
		return taskNotFound(id)
	}
	task = task.Clone()
	task.ID = id
	s.tasks[id] = task
	return nil
}

// Delete removes a task.
func (s *TaskStore) Delete(id int) error {
	if _, ok := s.tasks[id]; !ok {
		return taskNotFound(id)
	}
	delete(s.tasks, id)
	return nil
}

// Get returns a copy of the task with the given id.
func (s *TaskStore) Get(id int) (models.Task, bool) {
	task, ok := s.tasks[id]
	if !ok {
		return models.Task{}, false
	}
	return task.Clone(), true
}

// All returns a copy of the whole table.
func (s *TaskStore) All() map[int]models.Task {
	out := make(map[int]models.Task, len(s.tasks))
	for id, task := range s.tasks {
		out[id] = task.Clone()
	}
	return out
}

// Len returns the number of live tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// restore replaces the table and resumes the counter at lastID.
func (s *TaskStore) restore(tasks []models.Task, lastID int) {
	s.tasks = make(map[int]models.Task, len(tasks))
	for _, task := range tasks {
		s.tasks[task.ID] = task.Clone()
		if task.ID > lastID {
			lastID = task.ID
		}
	}
	s.lastID = lastID
}
