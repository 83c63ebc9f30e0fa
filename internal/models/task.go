package models

// DeadlineLayout is the text shape of Task.Deadline (YYYY-MM-DD).
const DeadlineLayout = "2006-01-02"

// Priority bounds enforced by the registry in strict mode.
const (
	MinPriority = 1
	MaxPriority = 10
)

// Task represents a task in the tracker
type Task struct {
	ID          int      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Priority    int      `json:"priority"`
	Name        string   `json:"name" gorm:"not null"`
	Description string   `json:"description"`
	Assignees   []string `json:"assignees" gorm:"serializer:json;type:text"`
	Project     string   `json:"project" gorm:"index"`
	Deadline    string   `json:"deadline"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Clone returns a copy of the task that shares no memory with t.
func (t Task) Clone() Task {
	if t.Assignees != nil {
		assignees := make([]string, len(t.Assignees))
		copy(assignees, t.Assignees)
		t.Assignees = assignees
	}
	return t
}
